package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"StockKeeper/internal/model"
	"StockKeeper/internal/storage"
)

func newTestService(t *testing.T) (*Service, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	return NewService(context.Background(), kv, zap.NewNop().Sugar()), kv
}

func TestSeededDemoLogin(t *testing.T) {
	svc, _ := newTestService(t)
	u, err := svc.Login(context.Background(), "admin", "123456")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)
	assert.Empty(t, u.Password)

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "admin", current.Username)
}

func TestLoginRejectsBadCredential(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Login(context.Background(), "admin", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "nobody", "123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidationOrder(t *testing.T) {
	svc, _ := newTestService(t)

	// Duplicate wins over every other failure.
	_, err := svc.Register(context.Background(), "admin", "a", "b", "")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// Mismatch is reported before weakness.
	_, err = svc.Register(context.Background(), "newbie", "abc", "abd", "")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = svc.Register(context.Background(), "newbie", "abc", "abc", "")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterEstablishesSession(t *testing.T) {
	svc, kv := newTestService(t)
	u, err := svc.Register(context.Background(), "newbie", "secret1", "secret1", "Trần Văn B")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, u.Role)
	assert.Equal(t, "Trần Văn B", u.Name)
	assert.Empty(t, u.Password)

	// The directory and session are written through immediately.
	reloaded := NewService(context.Background(), kv, zap.NewNop().Sugar())
	current, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, "newbie", current.Username)
	_, err = reloaded.Login(context.Background(), "newbie", "secret1")
	assert.NoError(t, err)
}

func TestRegisterNameDefaultsToUsername(t *testing.T) {
	svc, _ := newTestService(t)
	u, err := svc.Register(context.Background(), "plain", "secret1", "secret1", "   ")
	require.NoError(t, err)
	assert.Equal(t, "plain", u.Name)
}

func TestLogoutDropsSessionOnly(t *testing.T) {
	svc, kv := newTestService(t)
	_, err := svc.Login(context.Background(), "staff", "123456")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background()))

	_, ok := svc.Current()
	assert.False(t, ok)

	reloaded := NewService(context.Background(), kv, zap.NewNop().Sugar())
	_, ok = reloaded.Current()
	assert.False(t, ok)
	_, err = reloaded.Login(context.Background(), "staff", "123456")
	assert.NoError(t, err)
}

func TestReplaceRepointsSession(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Login(context.Background(), "admin", "123456")
	require.NoError(t, err)

	restored := map[string]model.User{
		"admin": {Username: "admin", Name: "Restored Admin", Role: model.RoleAdmin, Password: "hash"},
	}
	require.NoError(t, svc.Replace(context.Background(), restored))

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "Restored Admin", current.Name)
	assert.Empty(t, current.Password)
}

func TestReplaceDropsUnknownSessionUserFromDirectory(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Login(context.Background(), "admin", "123456")
	require.NoError(t, err)

	require.NoError(t, svc.Replace(context.Background(), map[string]model.User{
		"other": {Username: "other", Role: model.RoleStaff},
	}))
	// The in-memory session stays; only its backing record is gone.
	dir := svc.Directory()
	_, hasAdmin := dir["admin"]
	assert.False(t, hasAdmin)
}
