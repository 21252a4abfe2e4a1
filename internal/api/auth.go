package api

import (
	"context"
	"net/http"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// Session содержит результат успешной аутентификации.
type Session struct {
	User         model.User
	AccessToken  string
	RefreshToken string
}

// RegisterRequest содержит данные для регистрации нового пользователя.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// UpdateProfileRequest содержит изменяемые поля профиля пользователя.
type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Password    string `json:"password,omitempty"`
}

type sessionResponse struct {
	model.User
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login выполняет вход пользователя и возвращает сессию с парой токенов.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &resp); err != nil {
		return nil, err
	}

	return &Session{
		User:         resp.User,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// Register создаёт новую учётную запись. Сессия при этом не открывается.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/users/register", req, nil)
}

// Logout завершает сессию на стороне сервера.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/users/logout", nil, nil)
}

// Profile возвращает профиль текущего пользователя.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile обновляет профиль текущего пользователя и возвращает его новое состояние.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, "/users/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
