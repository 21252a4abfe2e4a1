package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/model"
)

type contextKey string

const userIDKey contextKey = "userID"

// Server реализует мок REST API витрины магазина.
type Server struct {
	logger *zap.Logger
	tokens *tokenIssuer
	data   *dataStore
}

// ServerOption настраивает мок-сервер.
type ServerOption func(*serverConfig)

type serverConfig struct {
	secret    string
	accessTTL time.Duration
}

// WithAccessTokenTTL задаёт срок жизни токена доступа. Короткий срок
// используется в тестах сценария обновления токена.
func WithAccessTokenTTL(d time.Duration) ServerOption {
	return func(cfg *serverConfig) {
		cfg.accessTTL = d
	}
}

// WithSecret задаёт ключ подписи токенов.
func WithSecret(secret string) ServerOption {
	return func(cfg *serverConfig) {
		cfg.secret = secret
	}
}

// NewServer создаёт мок-сервер с начальным каталогом и демо-пользователем.
func NewServer(logger *zap.Logger, opts ...ServerOption) *Server {
	cfg := &serverConfig{accessTTL: 15 * time.Minute}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Server{
		logger: logger,
		tokens: newTokenIssuer(cfg.secret, cfg.accessTTL),
		data:   newDataStore(),
	}
}

// Router собирает HTTP-маршруты мок-сервера.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(s.logRequests)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
		r.Post("/refresh", s.refresh)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/logout", s.logout)
			r.Get("/profile", s.getProfile)
			r.Put("/profile", s.updateProfile)

			r.Get("/address", s.listAddresses)
			r.Post("/address", s.addAddress)
			r.Put("/address/{id}", s.updateAddress)
			r.Delete("/address/{id}", s.deleteAddress)
		})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Get("/featured", s.featuredProducts)
		r.Get("/discounted", s.discountedProducts)
		r.Get("/search", s.searchProducts)
		r.Get("/brands", s.listBrands)
		r.Get("/category/{name}", s.productsByCategory)
		r.Get("/{id}", s.getProduct)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/{id}/reviews", s.addReview)
		})
	})

	r.Route("/management/categories", func(r chi.Router) {
		r.Get("/", s.listCategories)
		r.Get("/{id}/subcategories", s.listSubCategories)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/", s.getCart)
		r.Post("/", s.addToCart)
		r.Delete("/", s.clearCart)
		r.Put("/{itemId}", s.updateCartItem)
		r.Delete("/{itemId}", s.removeFromCart)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post("/", s.createOrder)
		r.Get("/", s.listOrders)
		r.Get("/{id}", s.getOrder)
		r.Put("/{id}/cancel", s.cancelOrder)
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/", s.listFavorites)
		r.Post("/", s.addFavorite)
		r.Get("/{productId}/check", s.checkFavorite)
		r.Delete("/{productId}", s.removeFavorite)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "resource not found")
	})

	return r
}

// logRequests журналирует каждый запрос со статусом и длительностью.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requireAuth проверяет bearer-токен. Истёкший токен отвечает 401 с
// признаком истёкшей сессии, на который клиент реагирует обновлением токена.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		userID, expired, ok := s.tokens.Parse(token, false)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}
		if expired {
			writeError(w, http.StatusUnauthorized, "session expired, please login again")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errUserExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, errNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errEmptyCart), errors.Is(err, errNotCancellable):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	if _, err := s.data.CreateUser(req.Name, req.Email, req.Password, req.PhoneNumber); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "registration successful"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.data.Authenticate(req.Email, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		model.User
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}{
		User:         *user,
		AccessToken:  s.tokens.AccessToken(user.ID),
		RefreshToken: s.tokens.RefreshToken(user.ID),
	})
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	userID, expired, ok := s.tokens.Parse(req.RefreshToken, true)
	if !ok || expired {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": s.tokens.AccessToken(userID)})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.data.UserByID(userIDFromContext(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phoneNumber"`
		Password    string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.data.UpdateUser(userIDFromContext(r.Context()), req.Name, req.Email, req.PhoneNumber, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func queryInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(key))
	return v
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, pagination := s.data.Products(
		queryInt(r, "page"), queryInt(r, "limit"),
		r.URL.Query().Get("brand"), "", "", false, false,
	)
	writeProductPage(w, products, pagination)
}

func writeProductPage(w http.ResponseWriter, products []model.Product, pagination model.Pagination) {
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, struct {
		Products []model.Product `json:"products"`
		model.Pagination
	}{Products: products, Pagination: pagination})
}

func (s *Server) featuredProducts(w http.ResponseWriter, r *http.Request) {
	products, _ := s.data.Products(1, limitOrDefault(r), "", "", "", false, true)
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) discountedProducts(w http.ResponseWriter, r *http.Request) {
	products, _ := s.data.Products(1, limitOrDefault(r), "", "", "", true, false)
	writeJSON(w, http.StatusOK, products)
}

func limitOrDefault(r *http.Request) int {
	if limit := queryInt(r, "limit"); limit > 0 {
		return limit
	}
	return 10
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "search query is required")
		return
	}

	products, _ := s.data.Products(1, 50, "", "", query, false, false)
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) listBrands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Brands())
}

func (s *Server) productsByCategory(w http.ResponseWriter, r *http.Request) {
	products, pagination := s.data.Products(
		queryInt(r, "page"), queryInt(r, "limit"),
		"", chi.URLParam(r, "name"), "", false, false,
	)
	writeProductPage(w, products, pagination)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.data.ProductByID(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) addReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	user, err := s.data.UserByID(userIDFromContext(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if err := s.data.AddReview(chi.URLParam(r, "id"), user.Name, req.Rating, req.Comment); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "review added"})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Categories())
}

func (s *Server) listSubCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.SubCategories(chi.URLParam(r, "id")))
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.data.Cart(userIDFromContext(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		Color     string `json:"color"`
		Size      string `json:"size"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	cart, err := s.data.AddToCart(userIDFromContext(r.Context()), req.ProductID, req.Quantity, req.Color, req.Size)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	cart, err := s.data.UpdateCartItem(userIDFromContext(r.Context()), chi.URLParam(r, "itemId"), req.Quantity)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.data.RemoveFromCart(userIDFromContext(r.Context()), chi.URLParam(r, "itemId"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.data.ClearCart(userIDFromContext(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Cart    model.Cart `json:"cart"`
		Message string     `json:"message"`
	}{Cart: cart, Message: "cart cleared"})
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShippingAddress model.Address `json:"shippingAddress"`
		PaymentMethod   string        `json:"paymentMethod"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := s.data.CreateOrder(userIDFromContext(r.Context()), req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.data.Orders(userIDFromContext(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.data.OrderByID(userIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.data.CancelOrder(userIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.data.Favorites(userIDFromContext(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	favorites, err := s.data.AddFavorite(userIDFromContext(r.Context()), req.ProductID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Favorites []model.Product `json:"favorites"`
		Message   string          `json:"message"`
	}{Favorites: favorites, Message: "added to favorites"})
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.data.RemoveFavorite(userIDFromContext(r.Context()), chi.URLParam(r, "productId"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Favorites []model.Product `json:"favorites"`
		Message   string          `json:"message"`
	}{Favorites: favorites, Message: "removed from favorites"})
}

func (s *Server) checkFavorite(w http.ResponseWriter, r *http.Request) {
	isFavorite, err := s.data.IsFavorite(userIDFromContext(r.Context()), chi.URLParam(r, "productId"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": isFavorite})
}

func (s *Server) listAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := s.data.Addresses(userIDFromContext(r.Context()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}

func (s *Server) addAddress(w http.ResponseWriter, r *http.Request) {
	var address model.Address
	if !decodeBody(w, r, &address) {
		return
	}

	addresses, err := s.data.AddAddress(userIDFromContext(r.Context()), address)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, addresses)
}

func (s *Server) updateAddress(w http.ResponseWriter, r *http.Request) {
	var address model.Address
	if !decodeBody(w, r, &address) {
		return
	}

	addresses, err := s.data.UpdateAddress(userIDFromContext(r.Context()), chi.URLParam(r, "id"), address)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}

func (s *Server) deleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := s.data.DeleteAddress(userIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "address deleted"})
}
