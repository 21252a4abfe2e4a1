package state

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/api"
	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/storage"
	"github.com/mmeshcher/storefront-client/internal/validation"
)

// AuthSlice владеет состоянием сессии пользователя.
type AuthSlice struct {
	lifecycle

	client *api.Client
	creds  storage.Store
	logger *zap.Logger

	user            *model.User
	isAuthenticated bool
}

func newAuthSlice(client *api.Client, creds storage.Store, logger *zap.Logger, signal func()) *AuthSlice {
	s := &AuthSlice{
		client: client,
		creds:  creds,
		logger: logger,
	}
	s.signal = signal
	return s
}

// AuthSnapshot — неизменяемый снимок состояния аутентификации.
type AuthSnapshot struct {
	Status
	User            *model.User
	IsAuthenticated bool
}

// Snapshot возвращает снимок состояния среза.
func (s *AuthSlice) Snapshot() AuthSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := AuthSnapshot{
		Status:          s.status,
		IsAuthenticated: s.isAuthenticated,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Login выполняет вход: сохраняет сессию с токенами и отмечает
// пользователя аутентифицированным.
func (s *AuthSlice) Login(ctx context.Context, email, password string) error {
	err := runOp(ctx, &s.lifecycle, func(ctx context.Context) (*api.Session, error) {
		if email == "" || password == "" {
			return nil, errors.New("email and password are required")
		}

		session, err := s.client.Login(ctx, email, password)
		if err != nil {
			return nil, err
		}

		if err := s.creds.SaveTokens(session.AccessToken, session.RefreshToken); err != nil {
			return nil, err
		}
		if err := s.creds.SaveUser(&session.User); err != nil {
			return nil, err
		}

		return session, nil
	}, func(session *api.Session) {
		s.user = &session.User
		s.isAuthenticated = true
	})

	if err != nil {
		s.mu.Lock()
		s.user = nil
		s.isAuthenticated = false
		s.mu.Unlock()
		s.emit()
	}
	return err
}

// Register создаёт новую учётную запись. Сессия при этом не открывается:
// успех отражается только флагом IsSuccess.
func (s *AuthSlice) Register(ctx context.Context, req api.RegisterRequest) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (struct{}, error) {
		if req.Name == "" || req.Password == "" {
			return struct{}{}, errors.New("name and password are required")
		}
		if !validation.IsValidEmail(req.Email) {
			return struct{}{}, errors.New("invalid email address")
		}
		if req.PhoneNumber != "" && !validation.IsValidPhone(req.PhoneNumber) {
			return struct{}{}, errors.New("invalid phone number")
		}
		return struct{}{}, s.client.Register(ctx, req)
	}, nil)
}

// Logout завершает сессию. Локальные учётные данные очищаются всегда,
// независимо от исхода серверного вызова.
func (s *AuthSlice) Logout(ctx context.Context) error {
	s.begin()

	if err := s.client.Logout(ctx); err != nil {
		s.logger.Warn("server logout failed", zap.Error(err))
	}

	if err := s.creds.Clear(); err != nil {
		s.logger.Error("clear credentials", zap.Error(err))
	}

	s.succeed(func() {
		s.user = nil
		s.isAuthenticated = false
	})
	return nil
}

// GetProfile загружает профиль пользователя с сервера.
func (s *AuthSlice) GetProfile(ctx context.Context) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.User, error) {
		return s.client.Profile(ctx)
	}, func(user *model.User) {
		s.user = user
	})
}

// UpdateProfile обновляет профиль пользователя и сохраняет его локально.
func (s *AuthSlice) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) error {
	return runOp(ctx, &s.lifecycle, func(ctx context.Context) (*model.User, error) {
		user, err := s.client.UpdateProfile(ctx, req)
		if err != nil {
			return nil, err
		}
		if err := s.creds.SaveUser(user); err != nil {
			return nil, err
		}
		return user, nil
	}, func(user *model.User) {
		s.user = user
	})
}

// CheckAuthStatus восстанавливает сессию из персистентного хранилища при
// запуске приложения. Отсутствие сохранённых данных означает
// неаутентифицированное состояние и не является ошибкой.
func (s *AuthSlice) CheckAuthStatus() error {
	user, err := s.creds.User()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	token, tokenErr := s.creds.AccessToken()
	if tokenErr != nil && !errors.Is(tokenErr, storage.ErrNotFound) {
		return tokenErr
	}

	s.mu.Lock()
	if user != nil && token != "" {
		s.user = user
		s.isAuthenticated = true
	} else {
		s.user = nil
		s.isAuthenticated = false
	}
	s.mu.Unlock()
	s.emit()
	return nil
}
