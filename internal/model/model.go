// Package model содержит доменные сущности клиента витрины магазина.
package model

import "time"

// User представляет профиль авторизованного пользователя.
type User struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Variant описывает вариант товара (цвет и размер) с собственным остатком.
type Variant struct {
	Color           string  `json:"color,omitempty"`
	Size            string  `json:"size,omitempty"`
	Stock           int     `json:"stock"`
	AdditionalPrice float64 `json:"additionalPrice,omitempty"`
}

// Review описывает отзыв пользователя о товаре.
type Review struct {
	Author  string    `json:"author"`
	Rating  float64   `json:"rating"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

// Product представляет товар каталога.
type Product struct {
	ID              string            `json:"_id"`
	Name            string            `json:"name"`
	Brand           string            `json:"brand,omitempty"`
	Category        string            `json:"category,omitempty"`
	Price           float64           `json:"price"`
	DiscountedPrice *float64          `json:"discountedPrice,omitempty"`
	Images          []string          `json:"images,omitempty"`
	Rating          float64           `json:"rating"`
	ReviewCount     int               `json:"reviewCount"`
	Stock           int               `json:"stock"`
	Variants        []Variant         `json:"variants,omitempty"`
	Specifications  map[string]string `json:"specifications,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Reviews         []Review          `json:"reviews,omitempty"`
}

// Pagination содержит курсор постраничного просмотра каталога.
type Pagination struct {
	Page          int `json:"page"`
	Pages         int `json:"pages"`
	TotalProducts int `json:"totalProducts"`
}

// Category представляет категорию каталога.
type Category struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
	Image    string `json:"image,omitempty"`
}

// CartItem описывает одну позицию корзины.
type CartItem struct {
	ID              string   `json:"_id"`
	ProductID       string   `json:"productId"`
	Name            string   `json:"name"`
	Image           string   `json:"image,omitempty"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
	Color           string   `json:"color,omitempty"`
	Size            string   `json:"size,omitempty"`
	Quantity        int      `json:"quantity"`
}

// Cart представляет корзину пользователя. Сервер является источником истины:
// при любой мутации сущность заменяется целиком ответом сервера.
type Cart struct {
	Items                []CartItem `json:"items"`
	TotalItems           int        `json:"totalItems"`
	TotalPrice           float64    `json:"totalPrice"`
	TotalDiscountedPrice float64    `json:"totalDiscountedPrice"`
}

// OrderStatus описывает статус обработки заказа.
type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderItem описывает одну позицию заказа.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Order представляет заказ пользователя.
type Order struct {
	ID              string      `json:"_id"`
	OrderItems      []OrderItem `json:"orderItems"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	Status          OrderStatus `json:"status"`
	ItemsPrice      float64     `json:"itemsPrice"`
	ShippingPrice   float64     `json:"shippingPrice"`
	TaxPrice        float64     `json:"taxPrice"`
	TotalAmount     float64     `json:"totalAmount"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Address представляет адрес доставки пользователя.
type Address struct {
	ID           string `json:"_id,omitempty"`
	Title        string `json:"title"`
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	Province     string `json:"province"`
	District     string `json:"district"`
	Neighborhood string `json:"neighborhood,omitempty"`
	FullAddress  string `json:"fullAddress"`
	IsDefault    bool   `json:"isDefault"`
}
