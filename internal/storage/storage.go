// Package storage реализует персистентное хранилище учётных данных клиента.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mmeshcher/storefront-client/internal/model"
)

// ErrNotFound возвращается, когда запрошенное значение отсутствует в хранилище.
var ErrNotFound = errors.New("storage: value not found")

// Store описывает контракт хранилища учётных данных. Хранилищем пользуются
// только HTTP-клиент и срез аутентификации.
type Store interface {
	AccessToken() (string, error)
	RefreshToken() (string, error)
	SaveTokens(accessToken, refreshToken string) error
	SaveAccessToken(accessToken string) error
	User() (*model.User, error)
	SaveUser(user *model.User) error
	Clear() error
}

type credentials struct {
	AccessToken  string      `json:"accessToken,omitempty"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	User         *model.User `json:"user,omitempty"`
}

// FileStore хранит учётные данные в JSON-файле на устройстве.
// Запись выполняется атомарно через временный файл и переименование.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore создаёт файловое хранилище по указанному пути.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("storage: empty file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// AccessToken возвращает сохранённый access-токен.
func (s *FileStore) AccessToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return "", err
	}
	if creds.AccessToken == "" {
		return "", ErrNotFound
	}
	return creds.AccessToken, nil
}

// RefreshToken возвращает сохранённый refresh-токен.
func (s *FileStore) RefreshToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return "", err
	}
	if creds.RefreshToken == "" {
		return "", ErrNotFound
	}
	return creds.RefreshToken, nil
}

// SaveTokens сохраняет пару токенов, полученную при входе.
func (s *FileStore) SaveTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return err
	}
	creds.AccessToken = accessToken
	creds.RefreshToken = refreshToken
	return s.save(creds)
}

// SaveAccessToken обновляет access-токен после его обмена по refresh-токену.
func (s *FileStore) SaveAccessToken(accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return err
	}
	creds.AccessToken = accessToken
	return s.save(creds)
}

// User возвращает сохранённый профиль пользователя.
func (s *FileStore) User() (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return nil, err
	}
	if creds.User == nil {
		return nil, ErrNotFound
	}
	u := *creds.User
	return &u, nil
}

// SaveUser сохраняет профиль пользователя.
func (s *FileStore) SaveUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return err
	}
	creds.User = user
	return s.save(creds)
}

// Clear удаляет все сохранённые учётные данные. Эквивалент принудительного выхода.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials file: %w", err)
	}
	return nil
}

func (s *FileStore) load() (*credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &credentials{}, nil
		}
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	creds := &credentials{}
	if err := json.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("decode credentials file: %w", err)
	}
	return creds, nil
}

func (s *FileStore) save(creds *credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename credentials file: %w", err)
	}
	return nil
}

// MemStore хранит учётные данные в памяти. Используется в тестах
// и при запуске без файла учётных данных.
type MemStore struct {
	mu    sync.Mutex
	creds credentials
}

// NewMemStore создаёт пустое хранилище в памяти.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// AccessToken возвращает сохранённый access-токен.
func (s *MemStore) AccessToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds.AccessToken == "" {
		return "", ErrNotFound
	}
	return s.creds.AccessToken, nil
}

// RefreshToken возвращает сохранённый refresh-токен.
func (s *MemStore) RefreshToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds.RefreshToken == "" {
		return "", ErrNotFound
	}
	return s.creds.RefreshToken, nil
}

// SaveTokens сохраняет пару токенов.
func (s *MemStore) SaveTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds.AccessToken = accessToken
	s.creds.RefreshToken = refreshToken
	return nil
}

// SaveAccessToken обновляет access-токен.
func (s *MemStore) SaveAccessToken(accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds.AccessToken = accessToken
	return nil
}

// User возвращает сохранённый профиль пользователя.
func (s *MemStore) User() (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds.User == nil {
		return nil, ErrNotFound
	}
	u := *s.creds.User
	return &u, nil
}

// SaveUser сохраняет профиль пользователя.
func (s *MemStore) SaveUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds.User = user
	return nil
}

// Clear удаляет все сохранённые учётные данные.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = credentials{}
	return nil
}
