package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"StockKeeper/internal/cloud"
	"StockKeeper/internal/config"
	"StockKeeper/internal/inventory"
	"StockKeeper/internal/model"
	"StockKeeper/internal/storage"
	"StockKeeper/internal/user"
)

// app is the per-command service graph: the document store plus the two
// state-owning services every command needs.
type app struct {
	cfg   *config.Config
	log   *zap.SugaredLogger
	kv    storage.KV
	inv   *inventory.Service
	users *user.Service
	done  func()
}

// openApp builds the service graph for one command run.
func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := newLogger(cfg.Debug)

	var kv storage.KV
	done := func() { _ = log.Sync() }
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		db, err := storage.OpenSQLite(filepath.Join(cfg.DataDir, "stockkeeper.sqlite"))
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		kv = db
		done = func() {
			_ = db.Close()
			_ = log.Sync()
		}
	case config.BackendFile, "":
		f, err := storage.NewFile(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening file store: %w", err)
		}
		kv = f
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return &app{
		cfg:   cfg,
		log:   log,
		kv:    kv,
		inv:   inventory.NewService(ctx, kv, log),
		users: user.NewService(ctx, kv, log),
		done:  done,
	}, nil
}

// cloudService wires the backup bridge. The remote store is redis when
// configured, otherwise a file store next to the local documents.
func (a *app) cloudService() (*cloud.Service, error) {
	var remote storage.KV
	if a.cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr})
		remote = storage.NewRedis(client, "stockkeeper")
	} else {
		f, err := storage.NewFile(filepath.Join(a.cfg.DataDir, "cloud"))
		if err != nil {
			return nil, fmt.Errorf("opening cloud store: %w", err)
		}
		remote = f
	}
	delays := cloud.Delays{
		Login:  a.cfg.CloudLoginDelay,
		IO:     a.cfg.CloudIODelay,
		Logout: a.cfg.CloudLogoutDelay,
	}
	return cloud.NewService(a.kv, remote, a.cfg.AuthSecret, delays, a.log), nil
}

// requireUser returns the active session or an instruction to log in.
func (a *app) requireUser() (model.User, error) {
	u, ok := a.users.Current()
	if !ok {
		return model.User{}, errors.New("not logged in: run login or register first")
	}
	return u, nil
}

// printCriticalStock surfaces items at or below the fixed critical
// threshold, shown right after a successful login or registration.
func (a *app) printCriticalStock() {
	critical := a.inv.CriticalStock()
	if len(critical) == 0 {
		return
	}
	fmt.Fprintf(Out, "! %d item(s) down to %d or fewer:\n", len(critical), inventory.CriticalStockThreshold)
	for _, it := range critical {
		fmt.Fprintf(Out, "  - %s: %d %s left (at %s)\n", it.Name, it.Quantity, it.Unit, it.Location)
	}
}

func newLogger(debug bool) *zap.SugaredLogger {
	if debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return l.Sugar()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}
