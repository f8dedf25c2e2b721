package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/markethub-system/internal/model"
)

const productColumns = `id, vendor_id, name, price_cents, image, description, category, stock, approved, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.VendorID, &p.Name, &p.PriceCents, &p.Image,
		&p.Description, &p.Category, &p.Stock, &p.Approved, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct создаёт товар и возвращает его идентификатор.
func (r *PostgresRepository) CreateProduct(ctx context.Context, p *model.Product) (string, error) {
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, vendor_id, name, price_cents, image, description, category, stock, approved)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, p.VendorID, p.Name, p.PriceCents, p.Image, p.Description, p.Category, p.Stock, p.Approved,
	)
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}

	return id, nil
}

// GetProductByID возвращает товар по идентификатору.
func (r *PostgresRepository) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// GetProductsByIDs возвращает товары по набору идентификаторов.
// Отсутствующие идентификаторы в результат не попадают.
func (r *PostgresRepository) GetProductsByIDs(ctx context.Context, ids []string) (map[string]model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	res := make(map[string]model.Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		res[p.ID] = *p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

func (r *PostgresRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var res []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		res = append(res, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// ListProducts возвращает все товары.
func (r *PostgresRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at`,
	)
}

// ListProductsByVendor возвращает товары указанного продавца.
func (r *PostgresRepository) ListProductsByVendor(ctx context.Context, vendorID string) ([]model.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE vendor_id = $1 ORDER BY created_at`,
		vendorID,
	)
}

// SearchProducts ищет товары по подстроке имени или категории без учёта регистра.
func (r *PostgresRepository) SearchProducts(ctx context.Context, query string, limit int) ([]model.Product, error) {
	pattern := "%" + query + "%"
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE name ILIKE $1 OR category ILIKE $1
		 ORDER BY created_at
		 LIMIT $2`,
		pattern, limit,
	)
}

// UpdateProduct обновляет поля товара.
func (r *PostgresRepository) UpdateProduct(ctx context.Context, p *model.Product) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET name = $2, price_cents = $3, image = $4, description = $5, category = $6, stock = $7
		 WHERE id = $1`,
		p.ID, p.Name, p.PriceCents, p.Image, p.Description, p.Category, p.Stock,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// DeleteProduct удаляет товар.
func (r *PostgresRepository) DeleteProduct(ctx context.Context, id string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// SetProductApproval устанавливает флаг одобрения товара.
func (r *PostgresRepository) SetProductApproval(ctx context.Context, id string, approved bool) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE products SET approved = $2 WHERE id = $1`, id, approved,
	)
	if err != nil {
		return fmt.Errorf("set product approval: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}
