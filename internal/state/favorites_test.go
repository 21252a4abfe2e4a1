package state

import (
	"context"
	"net/http"
	"testing"

	"github.com/mmeshcher/storefront-client/internal/model"
)

func TestFavorites_MutationsReplaceSet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /favorites", func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(t, w, map[string]any{
			"favorites": []model.Product{{ID: "p1", Name: "Sneakers"}, {ID: "p2", Name: "Jacket"}},
			"message":   "added to favorites",
		})
	})
	mux.HandleFunc("DELETE /favorites/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(t, w, map[string]any{
			"favorites": []model.Product{{ID: "p2", Name: "Jacket"}},
			"message":   "removed from favorites",
		})
	})

	store, _ := newTestStore(t, mux)

	if err := store.Favorites.Add(context.Background(), "p1"); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if snap := store.Favorites.Snapshot(); len(snap.Favorites) != 2 {
		t.Fatalf("favorites = %d, want 2", len(snap.Favorites))
	}

	if err := store.Favorites.Remove(context.Background(), "p1"); err != nil {
		t.Fatalf("remove favorite: %v", err)
	}

	snap := store.Favorites.Snapshot()
	if len(snap.Favorites) != 1 {
		t.Fatalf("favorites = %d, want 1", len(snap.Favorites))
	}
	if snap.Favorites[0].ID != "p2" {
		t.Fatalf("favorite = %q, want p2", snap.Favorites[0].ID)
	}
}

func TestFavorites_CheckDoesNotChangeSet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /favorites", func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(t, w, []model.Product{{ID: "p1", Name: "Sneakers"}})
	})
	mux.HandleFunc("GET /favorites/{id}/check", func(w http.ResponseWriter, r *http.Request) {
		writeJSONBody(t, w, map[string]bool{"isFavorite": r.PathValue("id") == "p1"})
	})

	store, _ := newTestStore(t, mux)

	if err := store.Favorites.GetFavorites(context.Background()); err != nil {
		t.Fatalf("get favorites: %v", err)
	}

	isFavorite, err := store.Favorites.Check(context.Background(), "p1")
	if err != nil {
		t.Fatalf("check favorite: %v", err)
	}
	if !isFavorite {
		t.Fatal("isFavorite = false, want true")
	}

	isFavorite, err = store.Favorites.Check(context.Background(), "p9")
	if err != nil {
		t.Fatalf("check favorite: %v", err)
	}
	if isFavorite {
		t.Fatal("isFavorite = true, want false")
	}

	if snap := store.Favorites.Snapshot(); len(snap.Favorites) != 1 {
		t.Fatalf("favorites = %d after checks, want 1", len(snap.Favorites))
	}
}
