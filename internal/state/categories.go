package state

import (
	"context"

	"github.com/mmeshcher/storefront-client/internal/api"
	"github.com/mmeshcher/storefront-client/internal/model"
)

// CategoriesSlice владеет состоянием дерева категорий. Подкатегории
// раскладываются по идентификатору родительской категории.
type CategoriesSlice struct {
	lifecycle

	client *api.Client

	categories    []model.Category
	subCategories map[string][]model.Category
}

func newCategoriesSlice(client *api.Client, signal func()) *CategoriesSlice {
	s := &CategoriesSlice{
		client:        client,
		subCategories: make(map[string][]model.Category),
	}
	s.signal = signal
	return s
}

// CategoriesSnapshot — неизменяемый снимок состояния категорий.
type CategoriesSnapshot struct {
	Status
	Categories    []model.Category
	SubCategories map[string][]model.Category
}

// Snapshot возвращает снимок состояния среза.
func (s *CategoriesSlice) Snapshot() CategoriesSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := make(map[string][]model.Category, len(s.subCategories))
	for parent, list := range s.subCategories {
		subs[parent] = append([]model.Category(nil), list...)
	}

	return CategoriesSnapshot{
		Status:        s.status,
		Categories:    append([]model.Category(nil), s.categories...),
		SubCategories: subs,
	}
}

// FetchCategories загружает список категорий, заменяя его целиком.
func (s *CategoriesSlice) FetchCategories(ctx context.Context) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Category, error) {
		return s.client.Categories(ctx)
	}, func(categories []model.Category) {
		s.categories = categories
	})
}

// FetchSubCategories загружает подкатегории указанной категории.
func (s *CategoriesSlice) FetchSubCategories(ctx context.Context, categoryID string) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Category, error) {
		return s.client.SubCategories(ctx, categoryID)
	}, func(categories []model.Category) {
		s.subCategories[categoryID] = categories
	})
}
