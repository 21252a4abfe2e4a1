package state

import (
	"context"

	"github.com/mmeshcher/storefront-client/internal/api"
	"github.com/mmeshcher/storefront-client/internal/model"
)

// ProductsSlice владеет состоянием просмотра каталога. Каждый список
// заменяется целиком при успешной загрузке; просмотр по категории живёт
// в отдельном, независимо очищаемом контейнере.
type ProductsSlice struct {
	lifecycle

	client *api.Client

	products           []model.Product
	featured           []model.Product
	categoryProducts   []model.Product
	discountedProducts []model.Product
	selected           *model.Product
	brands             []string
	pagination         model.Pagination
}

func newProductsSlice(client *api.Client, signal func()) *ProductsSlice {
	s := &ProductsSlice{client: client}
	s.signal = signal
	return s
}

// ProductsSnapshot — неизменяемый снимок состояния каталога.
type ProductsSnapshot struct {
	Status
	Products           []model.Product
	Featured           []model.Product
	CategoryProducts   []model.Product
	DiscountedProducts []model.Product
	Selected           *model.Product
	Brands             []string
	Pagination         model.Pagination
}

// Snapshot возвращает снимок состояния среза.
func (s *ProductsSlice) Snapshot() ProductsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := ProductsSnapshot{
		Status:             s.status,
		Products:           append([]model.Product(nil), s.products...),
		Featured:           append([]model.Product(nil), s.featured...),
		CategoryProducts:   append([]model.Product(nil), s.categoryProducts...),
		DiscountedProducts: append([]model.Product(nil), s.discountedProducts...),
		Brands:             append([]string(nil), s.brands...),
		Pagination:         s.pagination,
	}
	if s.selected != nil {
		p := *s.selected
		snap.Selected = &p
	}
	return snap
}

// GetProducts загружает страницу основного каталога.
func (s *ProductsSlice) GetProducts(ctx context.Context, q api.ProductQuery) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*api.ProductPage, error) {
		return s.client.Products(ctx, q)
	}, func(page *api.ProductPage) {
		s.products = page.Products
		s.pagination = page.Pagination
	})
}

// GetFeatured загружает список избранных витриной товаров.
func (s *ProductsSlice) GetFeatured(ctx context.Context, limit int) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Product, error) {
		return s.client.FeaturedProducts(ctx, limit)
	}, func(products []model.Product) {
		s.featured = products
	})
}

// GetDiscounted загружает список товаров со скидкой.
func (s *ProductsSlice) GetDiscounted(ctx context.Context, limit int) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Product, error) {
		return s.client.DiscountedProducts(ctx, limit)
	}, func(products []model.Product) {
		s.discountedProducts = products
	})
}

// GetByCategory загружает товары категории в отдельный контейнер.
func (s *ProductsSlice) GetByCategory(ctx context.Context, category string, q api.ProductQuery) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*api.ProductPage, error) {
		return s.client.ProductsByCategory(ctx, category, q)
	}, func(page *api.ProductPage) {
		s.categoryProducts = page.Products
		s.pagination = page.Pagination
	})
}

// Search выполняет поиск по каталогу и заменяет основной список результатами.
func (s *ProductsSlice) Search(ctx context.Context, query string) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Product, error) {
		return s.client.SearchProducts(ctx, query)
	}, func(products []model.Product) {
		s.products = products
	})
}

// GetProductDetails загружает карточку выбранного товара.
func (s *ProductsSlice) GetProductDetails(ctx context.Context, id string) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.Product, error) {
		return s.client.ProductByID(ctx, id)
	}, func(product *model.Product) {
		s.selected = product
	})
}

// GetBrands загружает список брендов каталога.
func (s *ProductsSlice) GetBrands(ctx context.Context) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]string, error) {
		return s.client.Brands(ctx)
	}, func(brands []string) {
		s.brands = brands
	})
}

// AddReview добавляет отзыв о товаре. Состояние карточки не меняется:
// вызывающая сторона перезапрашивает детали.
func (s *ProductsSlice) AddReview(ctx context.Context, productID string, req api.ReviewRequest) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.AddProductReview(ctx, productID, req)
	}, nil)
}

// ClearSelected очищает карточку выбранного товара.
func (s *ProductsSlice) ClearSelected() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
	s.emit()
}

// ClearCategoryProducts очищает контейнер просмотра по категории.
func (s *ProductsSlice) ClearCategoryProducts() {
	s.mu.Lock()
	s.categoryProducts = nil
	s.mu.Unlock()
	s.emit()
}
