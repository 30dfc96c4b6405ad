// internal/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jgpos/internal/config"
	"jgpos/internal/logger"
	"jgpos/internal/storage"
)

var (
	ErrEmailRequired      = errors.New("please enter your email")
	ErrPasswordRequired   = errors.New("please enter your password")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// sessionActive is the marker value the route guard checks for.
const sessionActive = "active"

// User is the session blob persisted at login.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Service checks the single register credential and owns the session markers.
type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Login validates the credential pair against the configured cashier account.
// Success writes the session marker, a timestamp-derived token, and the user
// blob; any earlier failure leaves storage untouched.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, ErrEmailRequired
	}
	if strings.TrimSpace(password) == "" {
		return User{}, ErrPasswordRequired
	}

	if !strings.EqualFold(email, config.CashierEmail) || password != config.CashierPassword {
		logger.LogWarn("Login failed for %s", email)
		return User{}, ErrInvalidCredentials
	}

	user := User{Email: config.CashierEmail, Name: config.CashierName}
	token := fmt.Sprintf("session_%d", time.Now().UnixMilli())

	if err := s.store.Set(ctx, storage.KeyUserSession, sessionActive); err != nil {
		return User{}, fmt.Errorf("failed to write session marker: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyUserToken, token); err != nil {
		return User{}, fmt.Errorf("failed to write session token: %w", err)
	}
	if err := storage.SetJSON(ctx, s.store, storage.KeyUserData, user); err != nil {
		return User{}, err
	}

	logger.LogInfo("Cashier %s logged in", user.Email)
	return user, nil
}

// IsLoggedIn reports whether an active session marker exists. This is the
// check the route guard runs before every screen.
func (s *Service) IsLoggedIn(ctx context.Context) (bool, error) {
	value, found, err := s.store.Get(ctx, storage.KeyUserSession)
	if err != nil {
		return false, err
	}
	return found && value == sessionActive, nil
}

// Token returns the session token written at login.
func (s *Service) Token(ctx context.Context) (string, error) {
	token, _, err := s.store.Get(ctx, storage.KeyUserToken)
	return token, err
}

// CurrentUser returns the persisted user blob, or a zero User when nobody is
// logged in.
func (s *Service) CurrentUser(ctx context.Context) (User, error) {
	var user User
	if _, err := storage.GetJSON(ctx, s.store, storage.KeyUserData, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Logout clears the session marker, token, and user blob.
func (s *Service) Logout(ctx context.Context) error {
	for _, key := range []string{storage.KeyUserSession, storage.KeyUserToken, storage.KeyUserData} {
		if err := s.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to clear %q: %w", key, err)
		}
	}
	logger.LogInfo("Cashier logged out")
	return nil
}
