package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// AddToCartRequest содержит данные добавляемой в корзину позиции.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

// Cart возвращает текущую корзину пользователя.
func (c *Client) Cart(ctx context.Context) (*model.Cart, error) {
	var cart model.Cart
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart добавляет позицию и возвращает корзину целиком.
func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) (*model.Cart, error) {
	var cart model.Cart
	if err := c.do(ctx, http.MethodPost, "/cart", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveFromCart удаляет позицию и возвращает корзину целиком.
func (c *Client) RemoveFromCart(ctx context.Context, itemID string) (*model.Cart, error) {
	var cart model.Cart
	if err := c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(itemID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem меняет количество позиции и возвращает корзину целиком.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*model.Cart, error) {
	body := map[string]int{"quantity": quantity}

	var cart model.Cart
	if err := c.do(ctx, http.MethodPut, "/cart/"+url.PathEscape(itemID), body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart опустошает корзину. Сервер возвращает пустую корзину в обёртке.
func (c *Client) ClearCart(ctx context.Context) (*model.Cart, error) {
	var resp struct {
		Cart    model.Cart `json:"cart"`
		Message string     `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, "/cart", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}
