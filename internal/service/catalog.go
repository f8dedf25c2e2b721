package service

import (
	"context"

	"github.com/mmeshcher/markethub-system/internal/model"
)

const searchLimit = 10

// CreateProduct создаёт товар от имени продавца. Товар создаётся неодобренным.
func (s *Service) CreateProduct(ctx context.Context, vendorID string, role model.Role, p *model.Product) (*model.Product, error) {
	if role != model.RoleVendor {
		return nil, ErrForbidden
	}
	if p.Name == "" || p.PriceCents <= 0 {
		return nil, ErrMissingFields
	}

	p.VendorID = vendorID
	p.Approved = false

	id, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}

	p.ID = id
	return p, nil
}

// ListProducts возвращает товары: продавец видит только свои, остальные — все.
// Флаг одобрения при выдаче не фильтруется.
func (s *Service) ListProducts(ctx context.Context, userID string, role model.Role) ([]model.Product, error) {
	if role == model.RoleVendor {
		return s.repo.ListProductsByVendor(ctx, userID)
	}
	return s.repo.ListProducts(ctx)
}

// SearchProducts ищет товары по подстроке имени или категории.
func (s *Service) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return s.repo.SearchProducts(ctx, query, searchLimit)
}

// GetProduct возвращает товар по идентификатору.
func (s *Service) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

// GetProductDetails возвращает товар вместе с отзывами о нём.
func (s *Service) GetProductDetails(ctx context.Context, id string) (*model.Product, []model.Review, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reviews, err := s.repo.ListReviewsByProduct(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return p, reviews, nil
}

// UpdateProduct обновляет товар. Доступно только продавцу-владельцу.
// Цена остаётся строго положительной: нулевая цена в запросе означает
// «не менять», отрицательная отклоняется.
func (s *Service) UpdateProduct(ctx context.Context, userID string, role model.Role, p *model.Product) (*model.Product, error) {
	if p.PriceCents < 0 {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.GetProductByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if role != model.RoleVendor || existing.VendorID != userID {
		return nil, ErrForbidden
	}

	if p.Name == "" {
		p.Name = existing.Name
	}
	if p.PriceCents == 0 {
		p.PriceCents = existing.PriceCents
	}
	if p.Image == "" {
		p.Image = existing.Image
	}
	if p.Description == "" {
		p.Description = existing.Description
	}
	if p.Category == "" {
		p.Category = existing.Category
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetProductByID(ctx, p.ID)
}

// DeleteProduct удаляет товар. Доступно только продавцу-владельцу.
func (s *Service) DeleteProduct(ctx context.Context, userID string, role model.Role, productID string) error {
	existing, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}

	if role != model.RoleVendor || existing.VendorID != userID {
		return ErrForbidden
	}

	return s.repo.DeleteProduct(ctx, productID)
}
