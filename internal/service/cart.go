package service

import (
	"context"
	"errors"

	"github.com/mmeshcher/markethub-system/internal/model"
	"github.com/mmeshcher/markethub-system/internal/repository"
)

// AddCartItem добавляет товар в корзину покупателя, создавая корзину при
// необходимости. Если товар уже в корзине, количество увеличивается на qty.
func (s *Service) AddCartItem(ctx context.Context, userID, productID string, qty int) (*model.Cart, error) {
	if qty < 1 {
		return nil, ErrQuantityTooSmall
	}

	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.repo.GetCartByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrCartNotFound) {
			return nil, err
		}
		cart = &model.Cart{UserID: userID}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, model.CartItem{ProductID: productID, Quantity: qty})
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// GetCart возвращает корзину покупателя. Отсутствие корзины равнозначно
// пустой корзине и ошибкой не является.
func (s *Service) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.repo.GetCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
		}
		return nil, err
	}

	return cart, nil
}

// IncreaseCartItem увеличивает количество позиции на единицу.
func (s *Service) IncreaseCartItem(ctx context.Context, cartID, productID string) (*model.Cart, error) {
	cart, err := s.repo.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		return nil, repository.ErrProductNotFound
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// DecreaseCartItem уменьшает количество позиции на единицу.
// Позиция с количеством 1 удаляется целиком, нулевые количества не хранятся.
func (s *Service) DecreaseCartItem(ctx context.Context, cartID, productID string) (*model.Cart, error) {
	cart, err := s.repo.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			found = true
			if cart.Items[i].Quantity > 1 {
				cart.Items[i].Quantity--
			} else {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			}
			break
		}
	}
	if !found {
		return nil, repository.ErrProductNotFound
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// SetCartItemQuantity устанавливает количество позиции. Количество меньше
// единицы отклоняется.
func (s *Service) SetCartItemQuantity(ctx context.Context, cartID, productID string, qty int) (*model.Cart, error) {
	if qty < 1 {
		return nil, ErrQuantityTooSmall
	}

	cart, err := s.repo.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = qty
			found = true
			break
		}
	}
	if !found {
		return nil, repository.ErrProductNotFound
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveCartItem удаляет позицию из корзины покупателя.
// Удаление отсутствующей позиции не считается ошибкой.
func (s *Service) RemoveCartItem(ctx context.Context, userID, productID string) (*model.Cart, error) {
	cart, err := s.repo.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	cart.Items = items

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// ClearCart удаляет корзину покупателя целиком.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	return s.repo.DeleteCartByUser(ctx, userID)
}
