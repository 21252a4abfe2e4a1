package state

import (
	"context"

	"github.com/mmeshcher/storefront-client/internal/api"
	"github.com/mmeshcher/storefront-client/internal/model"
)

// CartSlice владеет состоянием корзины. Сервер — источник истины: каждая
// мутация обращается к серверу, и корзина заменяется ответом целиком.
// Локального пересчёта итогов нет.
type CartSlice struct {
	lifecycle

	client *api.Client
	cart   *model.Cart
}

func newCartSlice(client *api.Client, signal func()) *CartSlice {
	s := &CartSlice{client: client}
	s.signal = signal
	return s
}

// CartSnapshot — неизменяемый снимок состояния корзины.
type CartSnapshot struct {
	Status
	Cart *model.Cart
}

// Snapshot возвращает снимок состояния среза.
func (s *CartSlice) Snapshot() CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := CartSnapshot{Status: s.status}
	if s.cart != nil {
		cart := *s.cart
		cart.Items = append([]model.CartItem(nil), s.cart.Items...)
		snap.Cart = &cart
	}
	return snap
}

func (s *CartSlice) replaceWith(cart *model.Cart) {
	s.cart = cart
}

// GetCart загружает корзину пользователя.
func (s *CartSlice) GetCart(ctx context.Context) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.Cart, error) {
		return s.client.Cart(ctx)
	}, s.replaceWith)
}

// AddToCart добавляет позицию в корзину.
func (s *CartSlice) AddToCart(ctx context.Context, req api.AddToCartRequest) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.Cart, error) {
		return s.client.AddToCart(ctx, req)
	}, s.replaceWith)
}

// RemoveFromCart удаляет позицию из корзины.
func (s *CartSlice) RemoveFromCart(ctx context.Context, itemID string) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.Cart, error) {
		return s.client.RemoveFromCart(ctx, itemID)
	}, s.replaceWith)
}

// UpdateCartItem меняет количество позиции корзины.
func (s *CartSlice) UpdateCartItem(ctx context.Context, itemID string, quantity int) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.Cart, error) {
		return s.client.UpdateCartItem(ctx, itemID, quantity)
	}, s.replaceWith)
}

// ClearCart опустошает корзину.
func (s *CartSlice) ClearCart(ctx context.Context) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.Cart, error) {
		return s.client.ClearCart(ctx)
	}, s.replaceWith)
}
