// Package cloud implements the simulated Drive backup flow: a mock
// Google login, upload/fetch of a combined backup document and last-sync
// metadata. There is no real network; delays are fixed and configurable
// so tests can shrink them.
package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"StockKeeper/internal/model"
	"StockKeeper/internal/storage"
)

const backupVersion = "1.0"

// Profile is the minted mock Google identity.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Session is the persisted cloud login: the profile plus a locally
// signed session token standing in for a real OAuth credential.
type Session struct {
	Profile Profile `json:"profile"`
	Token   string  `json:"token"`
}

// BackupPayload is the combined document stored in the remote store.
type BackupPayload struct {
	Users      map[string]model.User `json:"users"`
	Inventory  []model.InventoryItem `json:"inventory"`
	LastSynced time.Time             `json:"lastSynced"`
	Version    string                `json:"version"`
}

// Delays holds the simulated network latencies.
type Delays struct {
	Login  time.Duration
	IO     time.Duration
	Logout time.Duration
}

// DefaultDelays mirrors the simulated popup and transfer times.
func DefaultDelays() Delays {
	return Delays{
		Login:  1200 * time.Millisecond,
		IO:     2 * time.Second,
		Logout: 500 * time.Millisecond,
	}
}

// Service bridges the local state to the simulated remote store.
type Service struct {
	local  storage.KV // device-local: holds the cloud session
	remote storage.KV // simulated remote: holds the backup document
	secret []byte
	delays Delays
	log    *zap.SugaredLogger
}

// NewService wires the two stores. secret signs mock session tokens.
func NewService(local, remote storage.KV, secret string, delays Delays, log *zap.SugaredLogger) *Service {
	return &Service{local: local, remote: remote, secret: []byte(secret), delays: delays, log: log}
}

// Login simulates the popup: after a fixed delay it mints a fresh
// profile, signs a session token and persists both as the cloud session.
func (s *Service) Login(ctx context.Context) (Profile, error) {
	if err := sleep(ctx, s.delays.Login); err != nil {
		return Profile{}, err
	}
	now := time.Now()
	profile := Profile{
		ID:     "google-uid-" + strconv.FormatInt(now.UnixMilli(), 10),
		Name:   "Nguyễn Văn Quản Lý",
		Email:  "quanlykho.admin@gmail.com",
		Avatar: "https://ui-avatars.com/api/?name=Nguyen+Van+Quan+Ly&background=0D8ABC&color=fff&size=128",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   profile.ID,
		"name":  profile.Name,
		"email": profile.Email,
		"iat":   now.Unix(),
	}).SignedString(s.secret)
	if err != nil {
		return Profile{}, fmt.Errorf("signing session token: %w", err)
	}
	if err := storage.Save(ctx, s.local, storage.KeyCloudSession, Session{Profile: profile, Token: token}); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Logout clears the cloud session after a shorter delay.
func (s *Service) Logout(ctx context.Context) error {
	if err := sleep(ctx, s.delays.Logout); err != nil {
		return err
	}
	return s.local.Delete(ctx, storage.KeyCloudSession)
}

// Session returns the persisted cloud session, if any.
func (s *Service) Session(ctx context.Context) (Session, bool) {
	var zero Session
	sess := storage.Load(ctx, s.local, storage.KeyCloudSession, zero, s.log)
	return sess, sess.Profile.ID != ""
}

// Upload serializes {users, inventory, lastSynced, version} into the
// remote store. The only failure path is serialization or the store
// itself; there are no network conditions to fail on.
func (s *Service) Upload(ctx context.Context, users map[string]model.User, inventory []model.InventoryItem) (time.Time, error) {
	if err := sleep(ctx, s.delays.IO); err != nil {
		return time.Time{}, err
	}
	payload := BackupPayload{
		Users:      users,
		Inventory:  inventory,
		LastSynced: time.Now(),
		Version:    backupVersion,
	}
	if err := storage.Save(ctx, s.remote, storage.KeyCloudBackup, payload); err != nil {
		return time.Time{}, err
	}
	return payload.LastSynced, nil
}

// Fetch reads the remote backup document. A nil payload with a nil error
// means nothing was ever uploaded. The caller is responsible for the
// destructive-overwrite confirmation before restoring.
func (s *Service) Fetch(ctx context.Context) (*BackupPayload, error) {
	if err := sleep(ctx, s.delays.IO); err != nil {
		return nil, err
	}
	b, err := s.remote.Get(ctx, storage.KeyCloudBackup)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var payload BackupPayload
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, fmt.Errorf("decoding backup document: %w", err)
	}
	return &payload, nil
}

// Metadata probes the remote store without a simulated transfer delay.
func (s *Service) Metadata(ctx context.Context) (bool, time.Time) {
	payload := storage.Load(ctx, s.remote, storage.KeyCloudBackup, (*BackupPayload)(nil), s.log)
	if payload == nil {
		return false, time.Time{}
	}
	return true, payload.LastSynced
}

// sleep waits for the simulated delay unless the context ends first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
