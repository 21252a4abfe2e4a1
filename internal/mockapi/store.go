package mockapi

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/mmeshcher/storefront-client/internal/model"
)

var (
	errUserExists         = errors.New("user already exists")
	errInvalidCredentials = errors.New("invalid email or password")
	errNotFound           = errors.New("not found")
	errEmptyCart          = errors.New("cart is empty")
	errNotCancellable     = errors.New("order can no longer be cancelled")
)

// account хранит данные одного пользователя мок-сервера.
type account struct {
	user      model.User
	password  string
	cart      model.Cart
	orders    []model.Order
	favorites []string
	addresses []model.Address
}

// dataStore — набор данных мок-сервера в памяти.
type dataStore struct {
	mu         sync.Mutex
	accounts   map[string]*account // ключ — идентификатор пользователя
	byEmail    map[string]string
	products   []model.Product
	categories []model.Category
	nextID     int
}

func newDataStore() *dataStore {
	s := &dataStore{
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
	}
	s.seed()
	return s
}

func (s *dataStore) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%04d", prefix, s.nextID)
}

// CreateUser регистрирует пользователя с уникальным адресом почты.
func (s *dataStore) CreateUser(name, email, password, phoneNumber string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.byEmail[email]; exists {
		return nil, errUserExists
	}

	user := model.User{
		ID:          s.newID("u"),
		Name:        name,
		Email:       email,
		PhoneNumber: phoneNumber,
	}

	s.accounts[user.ID] = &account{user: user, password: password}
	s.byEmail[email] = user.ID

	return &user, nil
}

// Authenticate проверяет пару почта/пароль.
func (s *dataStore) Authenticate(email, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, errInvalidCredentials
	}

	acc := s.accounts[id]
	if acc.password != password {
		return nil, errInvalidCredentials
	}

	user := acc.user
	return &user, nil
}

// UserByID возвращает профиль пользователя.
func (s *dataStore) UserByID(id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, errNotFound
	}
	user := acc.user
	return &user, nil
}

// UpdateUser частично обновляет профиль пользователя.
func (s *dataStore) UpdateUser(id, name, email, phoneNumber, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, errNotFound
	}

	if name != "" {
		acc.user.Name = name
	}
	if email != "" {
		email = strings.ToLower(strings.TrimSpace(email))
		delete(s.byEmail, acc.user.Email)
		acc.user.Email = email
		s.byEmail[email] = id
	}
	if phoneNumber != "" {
		acc.user.PhoneNumber = phoneNumber
	}
	if password != "" {
		acc.password = password
	}

	user := acc.user
	return &user, nil
}

// Products возвращает страницу каталога с необязательными фильтрами.
func (s *dataStore) Products(page, limit int, brand, category, query string, discountedOnly, featuredOnly bool) ([]model.Product, model.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := []model.Product{}
	for _, p := range s.products {
		if brand != "" && !strings.EqualFold(p.Brand, brand) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if discountedOnly && p.DiscountedPrice == nil {
			continue
		}
		if featuredOnly && !hasTag(p, "featured") {
			continue
		}
		if query != "" {
			q := strings.ToLower(query)
			if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Brand), q) {
				continue
			}
		}
		filtered = append(filtered, p)
	}

	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}

	total := len(filtered)
	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages == 0 {
		pages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return filtered[start:end], model.Pagination{Page: page, Pages: pages, TotalProducts: total}
}

func hasTag(p model.Product, tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ProductByID возвращает товар каталога.
func (s *dataStore) ProductByID(id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.productByIDLocked(id)
	if err != nil {
		return nil, err
	}
	product := *p
	return &product, nil
}

func (s *dataStore) productByIDLocked(id string) (*model.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, errNotFound
}

// Brands возвращает отсортированный по порядку добавления список брендов.
func (s *dataStore) Brands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var brands []string
	for _, p := range s.products {
		if p.Brand != "" && !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	return brands
}

// AddReview добавляет отзыв к товару и пересчитывает его рейтинг.
func (s *dataStore) AddReview(productID, author string, rating float64, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.productByIDLocked(productID)
	if err != nil {
		return err
	}

	p.Reviews = append(p.Reviews, model.Review{
		Author:  author,
		Rating:  rating,
		Comment: comment,
		Date:    time.Now().UTC(),
	})
	p.ReviewCount = len(p.Reviews)

	var sum float64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = math.Round(sum/float64(len(p.Reviews))*10) / 10

	return nil
}

// Categories возвращает категории верхнего уровня.
func (s *dataStore) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	var top []model.Category
	for _, c := range s.categories {
		if c.ParentID == "" {
			top = append(top, c)
		}
	}
	return top
}

// SubCategories возвращает подкатегории указанной категории.
func (s *dataStore) SubCategories(parentID string) []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subs []model.Category
	for _, c := range s.categories {
		if c.ParentID == parentID {
			subs = append(subs, c)
		}
	}
	return subs
}

func (s *dataStore) accountLocked(userID string) (*account, error) {
	acc, ok := s.accounts[userID]
	if !ok {
		return nil, errNotFound
	}
	return acc, nil
}

// recalcCart пересчитывает итоги корзины. Итоги считает только сервер.
func recalcCart(cart *model.Cart) {
	cart.TotalItems = 0
	cart.TotalPrice = 0
	cart.TotalDiscountedPrice = 0

	for _, item := range cart.Items {
		cart.TotalItems += item.Quantity
		cart.TotalPrice += item.Price * float64(item.Quantity)
		price := item.Price
		if item.DiscountedPrice != nil {
			price = *item.DiscountedPrice
		}
		cart.TotalDiscountedPrice += price * float64(item.Quantity)
	}

	cart.TotalPrice = round2(cart.TotalPrice)
	cart.TotalDiscountedPrice = round2(cart.TotalDiscountedPrice)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func copyCart(cart model.Cart) model.Cart {
	out := cart
	out.Items = append([]model.CartItem(nil), cart.Items...)
	if out.Items == nil {
		out.Items = []model.CartItem{}
	}
	return out
}

// Cart возвращает корзину пользователя.
func (s *dataStore) Cart(userID string) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return model.Cart{}, err
	}
	return copyCart(acc.cart), nil
}

// AddToCart добавляет позицию: совпадающая по товару и варианту позиция
// увеличивает количество вместо дублирования.
func (s *dataStore) AddToCart(userID, productID string, quantity int, color, size string) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return model.Cart{}, err
	}

	p, err := s.productByIDLocked(productID)
	if err != nil {
		return model.Cart{}, err
	}

	if quantity <= 0 {
		quantity = 1
	}

	for i := range acc.cart.Items {
		item := &acc.cart.Items[i]
		if item.ProductID == productID && item.Color == color && item.Size == size {
			item.Quantity += quantity
			recalcCart(&acc.cart)
			return copyCart(acc.cart), nil
		}
	}

	item := model.CartItem{
		ID:              s.newID("ci"),
		ProductID:       p.ID,
		Name:            p.Name,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		Color:           color,
		Size:            size,
		Quantity:        quantity,
	}
	if len(p.Images) > 0 {
		item.Image = p.Images[0]
	}

	acc.cart.Items = append(acc.cart.Items, item)
	recalcCart(&acc.cart)
	return copyCart(acc.cart), nil
}

// UpdateCartItem меняет количество позиции; нулевое количество удаляет её.
func (s *dataStore) UpdateCartItem(userID, itemID string, quantity int) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return model.Cart{}, err
	}

	for i := range acc.cart.Items {
		if acc.cart.Items[i].ID != itemID {
			continue
		}
		if quantity <= 0 {
			acc.cart.Items = append(acc.cart.Items[:i], acc.cart.Items[i+1:]...)
		} else {
			acc.cart.Items[i].Quantity = quantity
		}
		recalcCart(&acc.cart)
		return copyCart(acc.cart), nil
	}

	return model.Cart{}, errNotFound
}

// RemoveFromCart удаляет позицию корзины.
func (s *dataStore) RemoveFromCart(userID, itemID string) (model.Cart, error) {
	return s.UpdateCartItem(userID, itemID, 0)
}

// ClearCart опустошает корзину пользователя.
func (s *dataStore) ClearCart(userID string) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return model.Cart{}, err
	}

	acc.cart = model.Cart{}
	recalcCart(&acc.cart)
	return copyCart(acc.cart), nil
}

// CreateOrder оформляет заказ из текущей корзины и опустошает её.
func (s *dataStore) CreateOrder(userID string, shippingAddress model.Address, paymentMethod string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return nil, err
	}

	if len(acc.cart.Items) == 0 {
		return nil, errEmptyCart
	}

	var items []model.OrderItem
	var itemsPrice float64
	for _, line := range acc.cart.Items {
		price := line.Price
		if line.DiscountedPrice != nil {
			price = *line.DiscountedPrice
		}
		itemsPrice += price * float64(line.Quantity)
		items = append(items, model.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			Price:     price,
			Color:     line.Color,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}

	itemsPrice = round2(itemsPrice)

	shippingPrice := 49.90
	if itemsPrice >= 500 {
		shippingPrice = 0
	}
	taxPrice := round2(itemsPrice * 0.18)

	order := model.Order{
		ID:              s.newID("o"),
		OrderItems:      items,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Status:          model.OrderStatusPreparing,
		ItemsPrice:      itemsPrice,
		ShippingPrice:   shippingPrice,
		TaxPrice:        taxPrice,
		TotalAmount:     round2(itemsPrice + shippingPrice + taxPrice),
		CreatedAt:       time.Now().UTC(),
	}

	acc.orders = append([]model.Order{order}, acc.orders...)
	acc.cart = model.Cart{}
	recalcCart(&acc.cart)

	return &order, nil
}

// Orders возвращает заказы пользователя, новые первыми.
func (s *dataStore) Orders(userID string) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return nil, err
	}
	return append([]model.Order(nil), acc.orders...), nil
}

// OrderByID возвращает заказ пользователя.
func (s *dataStore) OrderByID(userID, orderID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return nil, err
	}

	for _, order := range acc.orders {
		if order.ID == orderID {
			o := order
			return &o, nil
		}
	}
	return nil, errNotFound
}

// CancelOrder отменяет заказ. Отменить можно только заказ в статусе Preparing.
func (s *dataStore) CancelOrder(userID, orderID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return nil, err
	}

	for i := range acc.orders {
		if acc.orders[i].ID != orderID {
			continue
		}
		if acc.orders[i].Status != model.OrderStatusPreparing {
			return nil, errNotCancellable
		}
		acc.orders[i].Status = model.OrderStatusCancelled
		o := acc.orders[i]
		return &o, nil
	}
	return nil, errNotFound
}

// Favorites возвращает избранные товары пользователя.
func (s *dataStore) Favorites(userID string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return nil, err
	}
	return s.favoritesLocked(acc), nil
}

func (s *dataStore) favoritesLocked(acc *account) []model.Product {
	products := []model.Product{}
	for _, id := range acc.favorites {
		if p, err := s.productByIDLocked(id); err == nil {
			products = append(products, *p)
		}
	}
	return products
}

// AddFavorite добавляет товар в избранное; повторное добавление — no-op.
func (s *dataStore) AddFavorite(userID, productID string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.productByIDLocked(productID); err != nil {
		return nil, err
	}

	for _, id := range acc.favorites {
		if id == productID {
			return s.favoritesLocked(acc), nil
		}
	}

	acc.favorites = append(acc.favorites, productID)
	return s.favoritesLocked(acc), nil
}

// RemoveFavorite удаляет товар из избранного.
func (s *dataStore) RemoveFavorite(userID, productID string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return nil, err
	}

	for i, id := range acc.favorites {
		if id == productID {
			acc.favorites = append(acc.favorites[:i], acc.favorites[i+1:]...)
			break
		}
	}
	return s.favoritesLocked(acc), nil
}

// IsFavorite сообщает, находится ли товар в избранном пользователя.
func (s *dataStore) IsFavorite(userID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return false, err
	}

	for _, id := range acc.favorites {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

// Addresses возвращает адреса пользователя.
func (s *dataStore) Addresses(userID string) ([]model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return nil, err
	}
	return append([]model.Address{}, acc.addresses...), nil
}

// AddAddress добавляет адрес и возвращает полный список.
func (s *dataStore) AddAddress(userID string, address model.Address) ([]model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return nil, err
	}

	address.ID = s.newID("a")
	if address.IsDefault {
		for i := range acc.addresses {
			acc.addresses[i].IsDefault = false
		}
	}
	acc.addresses = append(acc.addresses, address)
	return append([]model.Address{}, acc.addresses...), nil
}

// UpdateAddress обновляет адрес и возвращает полный список.
func (s *dataStore) UpdateAddress(userID, addressID string, address model.Address) ([]model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return nil, err
	}

	for i := range acc.addresses {
		if acc.addresses[i].ID != addressID {
			continue
		}
		address.ID = addressID
		if address.IsDefault {
			for j := range acc.addresses {
				acc.addresses[j].IsDefault = false
			}
		}
		acc.addresses[i] = address
		return append([]model.Address{}, acc.addresses...), nil
	}
	return nil, errNotFound
}

// DeleteAddress удаляет адрес пользователя.
func (s *dataStore) DeleteAddress(userID, addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.accountLocked(userID)
	if err != nil {
		return err
	}

	for i := range acc.addresses {
		if acc.addresses[i].ID == addressID {
			acc.addresses = append(acc.addresses[:i], acc.addresses[i+1:]...)
			return nil
		}
	}
	return errNotFound
}
