package state

import (
	"context"
	"errors"

	"github.com/mmeshcher/storefront-client/internal/api"
	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

// AddressesSlice владеет списком адресов доставки пользователя.
type AddressesSlice struct {
	lifecycle

	client    *api.Client
	addresses []model.Address
}

func newAddressesSlice(client *api.Client, signal func()) *AddressesSlice {
	s := &AddressesSlice{client: client}
	s.signal = signal
	return s
}

// AddressesSnapshot — неизменяемый снимок списка адресов.
type AddressesSnapshot struct {
	Status
	Addresses []model.Address
}

// Snapshot возвращает снимок состояния среза.
func (s *AddressesSlice) Snapshot() AddressesSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return AddressesSnapshot{
		Status:    s.status,
		Addresses: append([]model.Address(nil), s.addresses...),
	}
}

func (s *AddressesSlice) replaceWith(addresses []model.Address) {
	s.addresses = addresses
}

func validateAddress(address model.Address) error {
	if address.Title == "" || address.FullName == "" || address.FullAddress == "" {
		return errors.New("address title, full name and full address are required")
	}
	if !validation.IsValidPhone(address.PhoneNumber) {
		return errors.New("invalid phone number")
	}
	return nil
}

// GetAddresses загружает список адресов, заменяя его целиком.
func (s *AddressesSlice) GetAddresses(ctx context.Context) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Address, error) {
		return s.client.Addresses(ctx)
	}, s.replaceWith)
}

// Add добавляет адрес. Сервер возвращает полный обновлённый список.
func (s *AddressesSlice) Add(ctx context.Context, address model.Address) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Address, error) {
		if err := validateAddress(address); err != nil {
			return nil, err
		}
		return s.client.AddAddress(ctx, address)
	}, s.replaceWith)
}

// Update обновляет адрес. Сервер возвращает полный обновлённый список.
func (s *AddressesSlice) Update(ctx context.Context, id string, address model.Address) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) ([]model.Address, error) {
		if err := validateAddress(address); err != nil {
			return nil, err
		}
		return s.client.UpdateAddress(ctx, id, address)
	}, s.replaceWith)
}

// Delete удаляет адрес. Сервер не возвращает список, поэтому локальный
// список фильтруется по идентификатору: удаляется ровно совпадающий адрес.
func (s *AddressesSlice) Delete(ctx context.Context, id string) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (string, error) {
		if err := s.client.DeleteAddress(ctx, id); err != nil {
			return "", err
		}
		return id, nil
	}, func(deletedID string) {
		filtered := s.addresses[:0]
		for _, address := range s.addresses {
			if address.ID != deletedID {
				filtered = append(filtered, address)
			}
		}
		s.addresses = filtered
	})
}
