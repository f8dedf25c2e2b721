package service

import (
	"context"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// SalesReport содержит итоги продаж продавца: всего единиц, выручка
// и разбивка проданных единиц по месяцам.
type SalesReport struct {
	TotalSales   int64
	RevenueCents int64
	SalesByMonth map[string]int64
}

// VendorSalesReport собирает помесячный отчёт о продажах продавца.
func (s *Service) VendorSalesReport(ctx context.Context, vendorID string) (*SalesReport, error) {
	rows, err := s.repo.VendorMonthlySales(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{SalesByMonth: make(map[string]int64)}

	for _, m := range rows {
		if m.Month < 1 || m.Month > 12 {
			continue
		}
		report.SalesByMonth[monthNames[m.Month-1]] = m.Units
		report.TotalSales += m.Units
		report.RevenueCents += m.RevenueCents
	}

	return report, nil
}
