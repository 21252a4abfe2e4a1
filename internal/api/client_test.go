package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/storage"
)

func newTestClient(t *testing.T, baseURL string, creds storage.Store) *Client {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	return New(baseURL, creds, logger)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ada","email":"a@x.com"}`))
	}))
	defer srv.Close()

	creds := storage.NewMemStore()
	if err := creds.SaveTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("save tokens: %v", err)
	}

	c := newTestClient(t, srv.URL, creds)

	user, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("user ID = %q, want %q", user.ID, "u1")
	}
	if gotAuth != "Bearer access-1" {
		t.Fatalf("authorization = %q, want %q", gotAuth, "Bearer access-1")
	}
}

func TestClient_RefreshOnSessionExpired(t *testing.T) {
	var profileCalls, refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", func(w http.ResponseWriter, r *http.Request) {
		profileCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer access-new" {
			writeMessage(w, http.StatusUnauthorized, "session expired, please login again")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ada","email":"a@x.com"}`))
	})
	mux.HandleFunc("/users/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)

		if r.Header.Get("Authorization") != "" {
			t.Errorf("refresh request carries authorization header")
		}

		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken != "refresh-1" {
			writeMessage(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"access-new"}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := storage.NewMemStore()
	if err := creds.SaveTokens("access-old", "refresh-1"); err != nil {
		t.Fatalf("save tokens: %v", err)
	}

	c := newTestClient(t, srv.URL, creds)

	user, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("user ID = %q, want %q", user.ID, "u1")
	}

	if got := refreshCalls.Load(); got != 1 {
		t.Fatalf("refresh calls = %d, want 1", got)
	}
	if got := profileCalls.Load(); got != 2 {
		t.Fatalf("profile calls = %d, want 2", got)
	}

	token, err := creds.AccessToken()
	if err != nil {
		t.Fatalf("access token: %v", err)
	}
	if token != "access-new" {
		t.Fatalf("stored access token = %q, want %q", token, "access-new")
	}
}

func TestClient_RefreshAtMostOnce(t *testing.T) {
	var profileCalls, refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", func(w http.ResponseWriter, r *http.Request) {
		profileCalls.Add(1)
		writeMessage(w, http.StatusUnauthorized, "session expired, please login again")
	})
	mux.HandleFunc("/users/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"access-new"}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := storage.NewMemStore()
	if err := creds.SaveTokens("access-old", "refresh-1"); err != nil {
		t.Fatalf("save tokens: %v", err)
	}

	c := newTestClient(t, srv.URL, creds)

	_, err := c.Profile(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", apiErr.StatusCode, http.StatusUnauthorized)
	}

	if got := refreshCalls.Load(); got != 1 {
		t.Fatalf("refresh calls = %d, want 1", got)
	}
	if got := profileCalls.Load(); got != 2 {
		t.Fatalf("profile calls = %d, want 2", got)
	}
}

func TestClient_NoRefreshWithoutRefreshToken(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusUnauthorized, "session expired, please login again")
	})
	mux.HandleFunc("/users/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := storage.NewMemStore()
	if err := creds.SaveAccessToken("access-old"); err != nil {
		t.Fatalf("save access token: %v", err)
	}

	c := newTestClient(t, srv.URL, creds)

	_, err := c.Profile(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if !apiErr.IsSessionExpired() {
		t.Fatalf("error = %v, want session expired", apiErr)
	}

	if got := refreshCalls.Load(); got != 0 {
		t.Fatalf("refresh calls = %d, want 0", got)
	}

	if _, err := creds.AccessToken(); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("access token err = %v, want ErrNotFound", err)
	}
}

func TestClient_RefreshFailureClearsCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusUnauthorized, "session expired, please login again")
	})
	mux.HandleFunc("/users/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusUnauthorized, "invalid refresh token")
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := storage.NewMemStore()
	if err := creds.SaveTokens("access-old", "refresh-bad"); err != nil {
		t.Fatalf("save tokens: %v", err)
	}

	c := newTestClient(t, srv.URL, creds)

	_, err := c.Profile(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if _, err := creds.AccessToken(); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("access token err = %v, want ErrNotFound", err)
	}
	if _, err := creds.RefreshToken(); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("refresh token err = %v, want ErrNotFound", err)
	}
}

func TestClient_PlainUnauthorizedNoRefresh(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusUnauthorized, "unauthorized access")
	})
	mux.HandleFunc("/users/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := storage.NewMemStore()
	if err := creds.SaveTokens("access-old", "refresh-1"); err != nil {
		t.Fatalf("save tokens: %v", err)
	}

	c := newTestClient(t, srv.URL, creds)

	_, err := c.Profile(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Message != "unauthorized access" {
		t.Fatalf("message = %q, want %q", apiErr.Message, "unauthorized access")
	}

	if got := refreshCalls.Load(); got != 0 {
		t.Fatalf("refresh calls = %d, want 0", got)
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(t, srv.URL, storage.NewMemStore())

	_, err := c.Profile(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Kind != KindNetwork {
		t.Fatalf("kind = %d, want KindNetwork", apiErr.Kind)
	}
	if !strings.Contains(apiErr.Message, "network error") {
		t.Fatalf("message = %q, want network error prefix", apiErr.Message)
	}
}

func TestClient_ServerMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "message field",
			status:  http.StatusNotFound,
			body:    `{"message":"product not found"}`,
			message: "product not found",
		},
		{
			name:    "empty body falls back to status text",
			status:  http.StatusInternalServerError,
			body:    "",
			message: "Internal Server Error",
		},
		{
			name:    "non-json body falls back to status text",
			status:  http.StatusBadGateway,
			body:    "<html>bad gateway</html>",
			message: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, storage.NewMemStore())

			_, err := c.Profile(context.Background())
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.message {
				t.Fatalf("message = %q, want %q", apiErr.Message, tt.message)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "api error uses server message",
			err:  &Error{Kind: KindHTTP, StatusCode: http.StatusBadRequest, Message: "invalid payload"},
			want: "invalid payload",
		},
		{
			name: "plain error uses its text",
			err:  errors.New("boom"),
			want: "boom",
		},
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Fatalf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
