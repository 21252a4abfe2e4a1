package state

import (
	"context"

	"github.com/mmeshcher/storefront-client/internal/api"
	"github.com/mmeshcher/storefront-client/internal/model"
)

// OrdersSlice владеет состоянием заказов пользователя.
type OrdersSlice struct {
	lifecycle

	client *api.Client

	orders   []model.Order
	selected *model.Order
}

func newOrdersSlice(client *api.Client, signal func()) *OrdersSlice {
	s := &OrdersSlice{client: client}
	s.signal = signal
	return s
}

// OrdersSnapshot — неизменяемый снимок состояния заказов.
type OrdersSnapshot struct {
	Status
	Orders   []model.Order
	Selected *model.Order
}

// Snapshot возвращает снимок состояния среза.
func (s *OrdersSlice) Snapshot() OrdersSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := OrdersSnapshot{
		Status: s.status,
		Orders: append([]model.Order(nil), s.orders...),
	}
	if s.selected != nil {
		o := *s.selected
		snap.Selected = &o
	}
	return snap
}

// CreateOrder оформляет заказ и добавляет его в начало списка.
func (s *OrdersSlice) CreateOrder(ctx context.Context, req api.CreateOrderRequest) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.Order, error) {
		return s.client.CreateOrder(ctx, req)
	}, func(order *model.Order) {
		s.orders = append([]model.Order{*order}, s.orders...)
	})
}

// GetMyOrders загружает список заказов, заменяя его целиком.
func (s *OrdersSlice) GetMyOrders(ctx context.Context) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Order, error) {
		return s.client.MyOrders(ctx)
	}, func(orders []model.Order) {
		s.orders = orders
	})
}

// GetOrderByID загружает выбранный заказ.
func (s *OrdersSlice) GetOrderByID(ctx context.Context, id string) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.Order, error) {
		return s.client.OrderByID(ctx, id)
	}, func(order *model.Order) {
		s.selected = order
	})
}

// CancelOrder отменяет заказ: обновляет совпадающий по идентификатору
// элемент списка и выбранный заказ. Заказ, отсутствующий в списке,
// не меняет другие элементы.
func (s *OrdersSlice) CancelOrder(ctx context.Context, id string) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.Order, error) {
		return s.client.CancelOrder(ctx, id)
	}, func(order *model.Order) {
		s.selected = order
		for i := range s.orders {
			if s.orders[i].ID == order.ID {
				s.orders[i] = *order
				break
			}
		}
	})
}

// ClearSelected очищает выбранный заказ.
func (s *OrdersSlice) ClearSelected() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
	s.emit()
}
