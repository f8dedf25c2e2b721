package service

import (
	"context"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// ListFAQs возвращает все записи FAQ.
func (s *Service) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	return s.repo.ListFAQs(ctx)
}

// CreateFAQ создаёт запись FAQ.
func (s *Service) CreateFAQ(ctx context.Context, question, answer, category string) (*model.FAQ, error) {
	if question == "" || answer == "" {
		return nil, ErrMissingFields
	}

	f := &model.FAQ{Question: question, Answer: answer, Category: category}

	id, err := s.repo.CreateFAQ(ctx, f)
	if err != nil {
		return nil, err
	}

	f.ID = id
	return f, nil
}

// UpdateFAQ обновляет вопрос и ответ записи FAQ.
func (s *Service) UpdateFAQ(ctx context.Context, id, question, answer string) error {
	if question == "" || answer == "" {
		return ErrMissingFields
	}
	return s.repo.UpdateFAQ(ctx, id, question, answer)
}

// DeleteFAQ удаляет запись FAQ.
func (s *Service) DeleteFAQ(ctx context.Context, id string) error {
	return s.repo.DeleteFAQ(ctx, id)
}
