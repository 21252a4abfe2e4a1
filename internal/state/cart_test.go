package state

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/mmeshcher/storefront-client/internal/api"
	"github.com/mmeshcher/storefront-client/internal/model"
)

func testCart() model.Cart {
	return model.Cart{
		Items: []model.CartItem{
			{ID: "i1", ProductID: "p1", Name: "Sneakers", Price: 100, Quantity: 2},
		},
		TotalItems:           2,
		TotalPrice:           200,
		TotalDiscountedPrice: 200,
	}
}

func TestCart_MutationReplacesWholeCart(t *testing.T) {
	serverCart := testCart()

	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(t, w, serverCart)
	})

	store, _ := newTestStore(t, mux)

	req := api.AddToCartRequest{ProductID: "p1", Quantity: 1}
	if err := store.Cart.AddToCart(context.Background(), req); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	// Repeating the same mutation with the same server response must not
	// accumulate anything locally: the server payload is the whole truth.
	if err := store.Cart.AddToCart(context.Background(), req); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	snap := store.Cart.Snapshot()
	if snap.Cart == nil {
		t.Fatal("cart = nil after mutation")
	}
	if !reflect.DeepEqual(*snap.Cart, serverCart) {
		t.Fatalf("cart = %+v, want %+v", *snap.Cart, serverCart)
	}
}

func TestCart_ErrorKeepsPreviousCart(t *testing.T) {
	serverCart := testCart()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(t, w, serverCart)
	})
	mux.HandleFunc("POST /cart", func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusConflict, "product out of stock")
	})

	store, _ := newTestStore(t, mux)

	if err := store.Cart.GetCart(context.Background()); err != nil {
		t.Fatalf("get cart: %v", err)
	}

	req := api.AddToCartRequest{ProductID: "p2", Quantity: 1}
	if err := store.Cart.AddToCart(context.Background(), req); err == nil {
		t.Fatal("expected error, got nil")
	}

	snap := store.Cart.Snapshot()
	if !snap.IsError {
		t.Fatal("IsError = false after rejected mutation")
	}
	if snap.Message != "product out of stock" {
		t.Fatalf("message = %q, want %q", snap.Message, "product out of stock")
	}
	if snap.Cart == nil || !reflect.DeepEqual(*snap.Cart, serverCart) {
		t.Fatalf("cart changed after rejected mutation: %+v", snap.Cart)
	}
}

func TestCart_ClearCartUnwrapsResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(t, w, testCart())
	})
	mux.HandleFunc("DELETE /cart", func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(t, w, map[string]any{
			"cart":    model.Cart{Items: []model.CartItem{}},
			"message": "cart cleared",
		})
	})

	store, _ := newTestStore(t, mux)

	if err := store.Cart.GetCart(context.Background()); err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if err := store.Cart.ClearCart(context.Background()); err != nil {
		t.Fatalf("clear cart: %v", err)
	}

	snap := store.Cart.Snapshot()
	if snap.Cart == nil {
		t.Fatal("cart = nil after clear")
	}
	if len(snap.Cart.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(snap.Cart.Items))
	}
	if snap.Cart.TotalPrice != 0 {
		t.Fatalf("total price = %v, want 0", snap.Cart.TotalPrice)
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /cart/{itemID}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("itemID") != "i1" {
			writeErrorBody(w, http.StatusNotFound, "cart item not found")
			return
		}
		cart := testCart()
		cart.Items[0].Quantity = 5
		cart.TotalItems = 5
		cart.TotalPrice = 500
		cart.TotalDiscountedPrice = 500
		writeJSONBody(t, w, cart)
	})

	store, _ := newTestStore(t, mux)

	if err := store.Cart.UpdateCartItem(context.Background(), "i1", 5); err != nil {
		t.Fatalf("update cart item: %v", err)
	}

	snap := store.Cart.Snapshot()
	if snap.Cart == nil || snap.Cart.Items[0].Quantity != 5 {
		t.Fatalf("cart = %+v, want quantity 5", snap.Cart)
	}
	if snap.Cart.TotalItems != 5 {
		t.Fatalf("total items = %d, want 5", snap.Cart.TotalItems)
	}
}
