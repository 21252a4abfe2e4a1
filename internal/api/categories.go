package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// Categories возвращает список категорий каталога.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/management/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// SubCategories возвращает подкатегории указанной категории.
func (c *Client) SubCategories(ctx context.Context, categoryID string) ([]model.Category, error) {
	var categories []model.Category
	path := "/management/categories/" + url.PathEscape(categoryID) + "/subcategories"
	if err := c.do(ctx, http.MethodGet, path, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
