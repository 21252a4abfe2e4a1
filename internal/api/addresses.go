package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// Addresses возвращает список адресов пользователя.
func (c *Client) Addresses(ctx context.Context) ([]model.Address, error) {
	var addresses []model.Address
	if err := c.do(ctx, http.MethodGet, "/users/address", nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// AddAddress добавляет адрес и возвращает полный обновлённый список.
func (c *Client) AddAddress(ctx context.Context, address model.Address) ([]model.Address, error) {
	var addresses []model.Address
	if err := c.do(ctx, http.MethodPost, "/users/address", address, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// UpdateAddress обновляет адрес и возвращает полный обновлённый список.
func (c *Client) UpdateAddress(ctx context.Context, id string, address model.Address) ([]model.Address, error) {
	var addresses []model.Address
	if err := c.do(ctx, http.MethodPut, "/users/address/"+url.PathEscape(id), address, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// DeleteAddress удаляет адрес. Сервер не возвращает обновлённый список:
// вызывающая сторона фильтрует свой локально.
func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/address/"+url.PathEscape(id), nil, nil)
}
