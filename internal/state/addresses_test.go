package state

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/mmeshcher/storefront-client/internal/model"
)

func testAddresses() []model.Address {
	return []model.Address{
		{ID: "a1", Title: "Home", FullName: "Ada L.", PhoneNumber: "+1 555 123 4567", FullAddress: "1 Main St", IsDefault: true},
		{ID: "a2", Title: "Work", FullName: "Ada L.", PhoneNumber: "+1 555 123 4567", FullAddress: "2 Office Rd"},
		{ID: "a3", Title: "Summer", FullName: "Ada L.", PhoneNumber: "+1 555 123 4567", FullAddress: "3 Beach Ave"},
	}
}

func TestAddresses_DeleteFiltersLocally(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/address", func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(t, w, testAddresses())
	})
	mux.HandleFunc("DELETE /users/address/{id}", func(w http.ResponseWriter, r *http.Request) {
		// The server acknowledges without returning the updated list.
		writeJSONBody(t, w, map[string]string{"message": "address deleted"})
	})

	store, _ := newTestStore(t, mux)

	if err := store.Addresses.GetAddresses(context.Background()); err != nil {
		t.Fatalf("get addresses: %v", err)
	}
	if err := store.Addresses.Delete(context.Background(), "a2"); err != nil {
		t.Fatalf("delete address: %v", err)
	}

	snap := store.Addresses.Snapshot()
	if len(snap.Addresses) != 2 {
		t.Fatalf("addresses = %d, want 2", len(snap.Addresses))
	}
	for _, address := range snap.Addresses {
		if address.ID == "a2" {
			t.Fatal("deleted address still present")
		}
	}
	if snap.Addresses[0].ID != "a1" || snap.Addresses[1].ID != "a3" {
		t.Fatalf("addresses = %+v, want a1 and a3 in order", snap.Addresses)
	}
}

func TestAddresses_AddReplacesFromServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/address", func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(t, w, testAddresses())
	})

	store, _ := newTestStore(t, mux)

	address := model.Address{Title: "Home", FullName: "Ada L.", PhoneNumber: "+1 555 123 4567", FullAddress: "1 Main St"}
	if err := store.Addresses.Add(context.Background(), address); err != nil {
		t.Fatalf("add address: %v", err)
	}

	snap := store.Addresses.Snapshot()
	if len(snap.Addresses) != 3 {
		t.Fatalf("addresses = %d, want the full server list", len(snap.Addresses))
	}
}

func TestAddresses_AddValidation(t *testing.T) {
	tests := []struct {
		name    string
		address model.Address
	}{
		{
			name:    "missing title",
			address: model.Address{FullName: "Ada L.", PhoneNumber: "+1 555 123 4567", FullAddress: "1 Main St"},
		},
		{
			name:    "missing full address",
			address: model.Address{Title: "Home", FullName: "Ada L.", PhoneNumber: "+1 555 123 4567"},
		},
		{
			name:    "invalid phone",
			address: model.Address{Title: "Home", FullName: "Ada L.", PhoneNumber: "12", FullAddress: "1 Main St"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
			}))

			if err := store.Addresses.Add(context.Background(), tt.address); err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := calls.Load(); got != 0 {
				t.Fatalf("server calls = %d, want 0", got)
			}
			if status := store.Addresses.Status(); !status.IsError {
				t.Fatal("IsError = false after rejected address")
			}
		})
	}
}
