package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jgpos/internal/auth"
	"jgpos/internal/config"
	"jgpos/internal/storage"
)

func TestMain(m *testing.M) {
	config.LoadEnv()
	m.Run()
}

func TestLoginValidation(t *testing.T) {
	svc := auth.NewService(storage.NewMemory())
	ctx := context.Background()

	_, err := svc.Login(ctx, "", config.CashierPassword)
	assert.ErrorIs(t, err, auth.ErrEmailRequired)

	_, err = svc.Login(ctx, config.CashierEmail, "   ")
	assert.ErrorIs(t, err, auth.ErrPasswordRequired)

	_, err = svc.Login(ctx, config.CashierEmail, "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "somebody@else.com", config.CashierPassword)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	loggedIn, err := svc.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn, "failed logins leave no session behind")
}

func TestLoginSuccess(t *testing.T) {
	store := storage.NewMemory()
	svc := auth.NewService(store)
	ctx := context.Background()

	// Email match is case-insensitive
	user, err := svc.Login(ctx, strings.ToUpper(config.CashierEmail), config.CashierPassword)
	require.NoError(t, err)
	assert.Equal(t, config.CashierEmail, user.Email)
	assert.Equal(t, config.CashierName, user.Name)

	loggedIn, err := svc.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	token, err := svc.Token(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "session_"), "token is derived from the login timestamp")

	current, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, current)
}

func TestLogoutClearsSession(t *testing.T) {
	store := storage.NewMemory()
	svc := auth.NewService(store)
	ctx := context.Background()

	_, err := svc.Login(ctx, config.CashierEmail, config.CashierPassword)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	loggedIn, err := svc.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	for _, key := range []string{storage.KeyUserSession, storage.KeyUserToken, storage.KeyUserData} {
		_, found, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, found, "%s should be removed on logout", key)
	}
}
