package repository

import (
	"context"
	"fmt"
)

// MonthlySales содержит итоги продаж продавца за один календарный месяц.
type MonthlySales struct {
	Month        int
	Units        int64
	RevenueCents int64
}

// VendorMonthlySales возвращает помесячные итоги продаж продавца:
// количество проданных единиц и выручку в копейках по товарам этого продавца.
func (r *PostgresRepository) VendorMonthlySales(ctx context.Context, vendorID string) ([]MonthlySales, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT EXTRACT(MONTH FROM o.created_at)::int AS month,
		        COALESCE(SUM(oi.quantity), 0),
		        COALESCE(SUM(oi.quantity * p.price_cents), 0)
		 FROM orders o
		 JOIN order_vendors ov ON ov.order_id = o.id AND ov.vendor_id = $1
		 JOIN order_items oi ON oi.order_id = o.id
		 JOIN products p ON p.id = oi.product_id AND p.vendor_id = $1
		 GROUP BY month
		 ORDER BY month`,
		vendorID,
	)
	if err != nil {
		return nil, fmt.Errorf("select vendor sales: %w", err)
	}
	defer rows.Close()

	var res []MonthlySales
	for rows.Next() {
		var m MonthlySales
		if err := rows.Scan(&m.Month, &m.Units, &m.RevenueCents); err != nil {
			return nil, fmt.Errorf("scan vendor sales: %w", err)
		}
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}
