package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// CreateOrderRequest содержит данные оформления заказа.
type CreateOrderRequest struct {
	ShippingAddress model.Address `json:"shippingAddress"`
	PaymentMethod   string        `json:"paymentMethod"`
}

// CreateOrder оформляет заказ из текущей корзины и возвращает его.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders возвращает список заказов текущего пользователя.
func (c *Client) MyOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderByID возвращает заказ по идентификатору.
func (c *Client) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder отменяет заказ и возвращает его обновлённое состояние.
func (c *Client) CancelOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/cancel", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
