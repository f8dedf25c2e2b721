package service

import (
	"context"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// AddReview создаёт отзыв покупателя о товаре. Диапазон оценки на сервере
// не проверяется, повторные отзывы одного покупателя допускаются.
func (s *Service) AddReview(ctx context.Context, customerID, productID string, rating int, comment string) (*model.Review, error) {
	if productID == "" || rating == 0 {
		return nil, ErrMissingFields
	}

	rv := &model.Review{
		ProductID:  productID,
		CustomerID: customerID,
		Rating:     rating,
		Comment:    comment,
	}

	id, err := s.repo.CreateReview(ctx, rv)
	if err != nil {
		return nil, err
	}

	rv.ID = id
	return rv, nil
}

// ListReviews возвращает отзывы о товаре.
func (s *Service) ListReviews(ctx context.Context, productID string) ([]model.Review, error) {
	return s.repo.ListReviewsByProduct(ctx, productID)
}

// DeleteReview удаляет отзыв. Доступно только его автору.
func (s *Service) DeleteReview(ctx context.Context, userID, reviewID string) error {
	rv, err := s.repo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if rv.CustomerID != userID {
		return ErrForbidden
	}

	return s.repo.DeleteReview(ctx, reviewID)
}
