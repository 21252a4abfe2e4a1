package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mmeshcher/storefront-client/internal/model"
)

type favoritesResponse struct {
	Favorites []model.Product `json:"favorites"`
	Message   string          `json:"message"`
}

// Favorites возвращает набор избранных товаров пользователя.
func (c *Client) Favorites(ctx context.Context) ([]model.Product, error) {
	var favorites []model.Product
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite добавляет товар в избранное и возвращает обновлённый набор.
func (c *Client) AddFavorite(ctx context.Context, productID string) ([]model.Product, error) {
	body := map[string]string{"productId": productID}

	var resp favoritesResponse
	if err := c.do(ctx, http.MethodPost, "/favorites", body, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// RemoveFavorite удаляет товар из избранного и возвращает обновлённый набор.
func (c *Client) RemoveFavorite(ctx context.Context, productID string) ([]model.Product, error) {
	var resp favoritesResponse
	if err := c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(productID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// CheckFavorite сообщает, находится ли товар в избранном.
func (c *Client) CheckFavorite(ctx context.Context, productID string) (bool, error) {
	var resp struct {
		IsFavorite bool `json:"isFavorite"`
	}
	path := "/favorites/" + url.PathEscape(productID) + "/check"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return false, err
	}
	return resp.IsFavorite, nil
}
