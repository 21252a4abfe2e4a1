package state

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/api"
	"github.com/mmeshcher/storefront-client/internal/storage"
)

// Store — корневой контейнер состояния. Составляет все срезы в одно адресуемое
// дерево и оповещает подписчиков о каждом изменении. Каждый срез монопольно
// владеет своей областью состояния; срезы не трогают чужие области напрямую.
type Store struct {
	Auth          *AuthSlice
	Categories    *CategoriesSlice
	Products      *ProductsSlice
	Cart          *CartSlice
	Orders        *OrdersSlice
	Favorites     *FavoritesSlice
	Addresses     *AddressesSlice
	Notifications *Notifier

	mu   sync.Mutex
	subs []chan struct{}
}

// StoreOption настраивает создаваемый контейнер состояния.
type StoreOption func(*storeConfig)

type storeConfig struct {
	notificationTTL time.Duration
}

// WithNotificationTTL задаёт интервал автоскрытия уведомлений.
func WithNotificationTTL(d time.Duration) StoreOption {
	return func(cfg *storeConfig) {
		if d > 0 {
			cfg.notificationTTL = d
		}
	}
}

// NewStore создаёт контейнер состояния поверх клиента API и хранилища
// учётных данных.
func NewStore(client *api.Client, creds storage.Store, logger *zap.Logger, opts ...StoreOption) *Store {
	cfg := &storeConfig{notificationTTL: 3 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Store{}
	signal := s.broadcast

	s.Auth = newAuthSlice(client, creds, logger, signal)
	s.Categories = newCategoriesSlice(client, signal)
	s.Products = newProductsSlice(client, signal)
	s.Cart = newCartSlice(client, signal)
	s.Orders = newOrdersSlice(client, signal)
	s.Favorites = newFavoritesSlice(client, signal)
	s.Addresses = newAddressesSlice(client, signal)
	s.Notifications = newNotifier(cfg.notificationTTL, signal)

	return s
}

// Subscribe возвращает канал, получающий сигнал при каждом изменении состояния.
// Канал буферизован: непрочитанные сигналы схлопываются в один.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

func (s *Store) broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
