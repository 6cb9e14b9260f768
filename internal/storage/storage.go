// Package storage provides the key-value persistence port used by every
// state-owning service, plus its file, sqlite and redis backends. Values
// are opaque byte slices; JSON encoding and decode-failure fallback live
// in Load and Save so backends stay dumb.
package storage

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Device-local document keys.
const (
	KeyUsers     = "warehouse_users_v1"
	KeyInventory = "warehouse_inventory_v1"
	KeySession   = "warehouse_session_v1"
	KeyLogs      = "warehouse_logs_v1"
)

// Simulated cloud keys, kept separate from the device-local documents.
const (
	KeyCloudSession = "warehouse_google_session"
	KeyCloudBackup  = "warehouse_cloud_backup"
)

// KV is a synchronous get/set/remove store keyed by string.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Load reads and decodes the JSON document at key. Any failure (missing
// key, backend error or corrupt payload) yields the fallback value;
// corruption is logged, never surfaced.
func Load[T any](ctx context.Context, kv KV, key string, fallback T, log *zap.SugaredLogger) T {
	b, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && log != nil {
			log.Debugw("reading stored document", "key", key, "error", err)
		}
		return fallback
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		if log != nil {
			log.Warnw("corrupt stored document, using fallback", "key", key, "error", err)
		}
		return fallback
	}
	return v
}

// Save encodes v as JSON and writes it through to the store.
func Save[T any](ctx context.Context, kv KV, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, b)
}
