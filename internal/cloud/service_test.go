package cloud

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"StockKeeper/internal/model"
	"StockKeeper/internal/storage"
)

func newTestService(t *testing.T) (*Service, *storage.Memory, *storage.Memory) {
	t.Helper()
	local := storage.NewMemory()
	remote := storage.NewMemory()
	// Zero delays keep the simulated latencies out of the test run.
	svc := NewService(local, remote, "test-secret", Delays{}, zap.NewNop().Sugar())
	return svc, local, remote
}

func TestLoginMintsSignedSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	p, err := svc.Login(context.Background())
	require.NoError(t, err)
	assert.Contains(t, p.ID, "google-uid-")
	assert.Equal(t, "quanlykho.admin@gmail.com", p.Email)

	sess, ok := svc.Session(context.Background())
	require.True(t, ok)
	assert.Equal(t, p, sess.Profile)

	tok, err := jwt.Parse(sess.Token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, p.ID, claims["sub"])
	assert.Equal(t, p.Email, claims["email"])
}

func TestLogoutClearsSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Login(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background()))
	_, ok := svc.Session(context.Background())
	assert.False(t, ok)
}

func TestUploadFetchRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	users := map[string]model.User{
		"admin": {Username: "admin", Name: "Quản Trị Viên", Role: model.RoleAdmin, Password: "hash"},
	}
	items := []model.InventoryItem{{ID: "1", Name: "Drum Ricoh", Quantity: 12}}

	synced, err := svc.Upload(context.Background(), users, items)
	require.NoError(t, err)
	assert.False(t, synced.IsZero())

	payload, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, "1.0", payload.Version)
	assert.Equal(t, users, payload.Users)
	assert.Equal(t, "Drum Ricoh", payload.Inventory[0].Name)
	assert.WithinDuration(t, synced, payload.LastSynced, time.Second)
}

func TestFetchBeforeAnyUpload(t *testing.T) {
	svc, _, _ := newTestService(t)
	payload, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestMetadataProbe(t *testing.T) {
	svc, _, _ := newTestService(t)
	has, _ := svc.Metadata(context.Background())
	assert.False(t, has)

	synced, err := svc.Upload(context.Background(), nil, nil)
	require.NoError(t, err)

	has, last := svc.Metadata(context.Background())
	assert.True(t, has)
	assert.WithinDuration(t, synced, last, time.Second)
}

func TestDelayHonorsContextCancel(t *testing.T) {
	local := storage.NewMemory()
	remote := storage.NewMemory()
	svc := NewService(local, remote, "s", Delays{Login: time.Minute}, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Login(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
