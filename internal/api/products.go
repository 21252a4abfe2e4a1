package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// ProductQuery содержит параметры выборки каталога.
type ProductQuery struct {
	Page  int
	Limit int
	Brand string
	Sort  string
}

func (q ProductQuery) values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	values.Set("brand", q.Brand)
	values.Set("sort", q.Sort)
	return values
}

// ProductPage содержит страницу каталога вместе с метаданными пагинации.
type ProductPage struct {
	Products []model.Product `json:"products"`
	model.Pagination
}

// Products возвращает страницу основного каталога.
func (c *Client) Products(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/products"+queryString(q.values()), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FeaturedProducts возвращает список избранных витриной товаров.
func (c *Client) FeaturedProducts(ctx context.Context, limit int) ([]model.Product, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products/featured"+queryString(values), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// DiscountedProducts возвращает список товаров со скидкой.
func (c *Client) DiscountedProducts(ctx context.Context, limit int) ([]model.Product, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products/discounted"+queryString(values), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductByID возвращает карточку товара со всеми деталями.
func (c *Client) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductsByCategory возвращает страницу каталога, ограниченную категорией.
func (c *Client) ProductsByCategory(ctx context.Context, category string, q ProductQuery) (*ProductPage, error) {
	var page ProductPage
	path := "/products/category/" + url.PathEscape(category) + queryString(q.values())
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchProducts выполняет поиск товаров по строке запроса.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	values := url.Values{}
	values.Set("q", query)

	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products/search"+queryString(values), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Brands возвращает список брендов каталога.
func (c *Client) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	if err := c.do(ctx, http.MethodGet, "/products/brands", nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// ReviewRequest содержит данные нового отзыва о товаре.
type ReviewRequest struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// AddProductReview добавляет отзыв к товару. Обновлённую карточку
// вызывающая сторона запрашивает отдельно.
func (c *Client) AddProductReview(ctx context.Context, productID string, req ReviewRequest) error {
	return c.do(ctx, http.MethodPost, "/products/"+url.PathEscape(productID)+"/reviews", req, nil)
}
