package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type salesReportResponse struct {
	TotalSales   int64            `json:"totalSales"`
	TotalRevenue float64          `json:"totalRevenue"`
	SalesByMonth map[string]int64 `json:"salesByMonth"`
}

// VendorSalesReport возвращает помесячную сводку продаж продавца.
func (h *Handler) VendorSalesReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.VendorSalesReport(r.Context(), chi.URLParam(r, "vendorId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, salesReportResponse{
		TotalSales:   report.TotalSales,
		TotalRevenue: money(report.RevenueCents),
		SalesByMonth: report.SalesByMonth,
	})
}
