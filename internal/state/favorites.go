package state

import (
	"context"

	"github.com/mmeshcher/storefront-client/internal/api"
	"github.com/mmeshcher/storefront-client/internal/model"
)

// FavoritesSlice владеет набором избранных товаров. Сервер — источник истины:
// каждая мутация заменяет локальный набор возвращённым сервером.
type FavoritesSlice struct {
	lifecycle

	client    *api.Client
	favorites []model.Product
}

func newFavoritesSlice(client *api.Client, signal func()) *FavoritesSlice {
	s := &FavoritesSlice{client: client}
	s.signal = signal
	return s
}

// FavoritesSnapshot — неизменяемый снимок набора избранного.
type FavoritesSnapshot struct {
	Status
	Favorites []model.Product
}

// Snapshot возвращает снимок состояния среза.
func (s *FavoritesSlice) Snapshot() FavoritesSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return FavoritesSnapshot{
		Status:    s.status,
		Favorites: append([]model.Product(nil), s.favorites...),
	}
}

func (s *FavoritesSlice) replaceWith(favorites []model.Product) {
	s.favorites = favorites
}

// GetFavorites загружает набор избранного.
func (s *FavoritesSlice) GetFavorites(ctx context.Context) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Product, error) {
		return s.client.Favorites(ctx)
	}, s.replaceWith)
}

// Add добавляет товар в избранное.
func (s *FavoritesSlice) Add(ctx context.Context, productID string) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Product, error) {
		return s.client.AddFavorite(ctx, productID)
	}, s.replaceWith)
}

// Remove удаляет товар из избранного.
func (s *FavoritesSlice) Remove(ctx context.Context, productID string) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Product, error) {
		return s.client.RemoveFavorite(ctx, productID)
	}, s.replaceWith)
}

// Check сообщает, находится ли товар в избранном. Набор не меняется.
func (s *FavoritesSlice) Check(ctx context.Context, productID string) (bool, error) {
	var isFavorite bool
	err := runOp(ctx, &s.lifecycle, func(ctx context.Context) (bool, error) {
		return s.client.CheckFavorite(ctx, productID)
	}, func(v bool) {
		isFavorite = v
	})
	return isFavorite, err
}
