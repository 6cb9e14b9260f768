// Package inventory owns the authoritative stock list and its activity
// journal. Every mutation is written through to the persistence port
// before control returns to the caller.
package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"StockKeeper/internal/model"
	"StockKeeper/internal/storage"
)

// CriticalStockThreshold is the fixed cutoff for the post-login warning.
// It is intentionally independent of each item's own MinStock, which
// drives the inline low-stock badge.
const CriticalStockThreshold = 2

// ErrItemNotFound is returned for operations on an absent identifier.
var ErrItemNotFound = errors.New("inventory item not found")

// Service holds the item collection and the mutation journal.
type Service struct {
	kv      storage.KV
	log     *zap.SugaredLogger
	items   []model.InventoryItem
	journal []model.InventoryLog
}

// NewService loads the stored inventory and journal, substituting the
// seed dataset when the inventory document is missing or corrupt.
func NewService(ctx context.Context, kv storage.KV, log *zap.SugaredLogger) *Service {
	return &Service{
		kv:      kv,
		log:     log,
		items:   storage.Load(ctx, kv, storage.KeyInventory, Seed(), log),
		journal: storage.Load(ctx, kv, storage.KeyLogs, []model.InventoryLog(nil), log),
	}
}

// Items returns a copy of the collection, newest-first.
func (s *Service) Items() []model.InventoryItem {
	out := make([]model.InventoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given identifier.
func (s *Service) Get(id string) (model.InventoryItem, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.InventoryItem{}, false
}

// Add inserts an item, merging quantities into an existing line when the
// MergeKey (normalized name + condition) matches. The merged line keeps
// its original identifier. Returns the stored item and whether a merge
// happened. Add itself never fails; the error is the write-through result.
func (s *Service) Add(ctx context.Context, item model.InventoryItem, actor string) (model.InventoryItem, bool, error) {
	now := time.Now()
	key := item.Key()
	for idx := range s.items {
		if s.items[idx].Key() == key {
			s.items[idx].Quantity += item.Quantity
			s.items[idx].LastUpdated = now
			merged := s.items[idx]
			s.record(ctx, model.ActionImport, merged.Name, item.Quantity, merged.Category, merged.Location, actor)
			return merged, true, s.persist(ctx)
		}
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Condition == "" {
		item.Condition = model.ConditionNew
	}
	item.LastUpdated = now
	s.items = append([]model.InventoryItem{item}, s.items...)
	s.record(ctx, model.ActionCreate, item.Name, item.Quantity, item.Category, item.Location, actor)
	return item, false, s.persist(ctx)
}

// Delete removes the item with the given identifier. Absent identifiers
// leave the collection untouched and report ErrItemNotFound.
func (s *Service) Delete(ctx context.Context, id, actor string) error {
	for idx, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			s.record(ctx, model.ActionDelete, it.Name, -it.Quantity, it.Category, it.Location, actor)
			return s.persist(ctx)
		}
	}
	return ErrItemNotFound
}

// ClearAll replaces the collection with an empty list.
func (s *Service) ClearAll(ctx context.Context, actor string) error {
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	s.items = nil
	s.record(ctx, model.ActionDeleteAll, "-", -total, "", "", actor)
	return s.persist(ctx)
}

// AdjustQuantity applies a signed delta to an item's quantity, clamping
// the result at zero. An over-withdrawal silently caps; callers needing
// a hard stock check must pre-validate.
func (s *Service) AdjustQuantity(ctx context.Context, id string, delta int, actor string) (model.InventoryItem, error) {
	for idx := range s.items {
		if s.items[idx].ID != id {
			continue
		}
		before := s.items[idx].Quantity
		after := before + delta
		if after < 0 {
			after = 0
		}
		s.items[idx].Quantity = after
		s.items[idx].LastUpdated = time.Now()
		it := s.items[idx]
		if applied := after - before; applied != 0 {
			action := model.ActionImport
			if applied < 0 {
				action = model.ActionExport
			}
			s.record(ctx, action, it.Name, applied, it.Category, it.Location, actor)
		}
		return it, s.persist(ctx)
	}
	return model.InventoryItem{}, ErrItemNotFound
}

// ReplaceAll swaps in a whole collection, used by the backup restore path.
func (s *Service) ReplaceAll(ctx context.Context, items []model.InventoryItem) error {
	s.items = make([]model.InventoryItem, len(items))
	copy(s.items, items)
	return s.persist(ctx)
}

// LowStock returns items at or below their own MinStock threshold.
func (s *Service) LowStock() []model.InventoryItem {
	var out []model.InventoryItem
	for _, it := range s.items {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out
}

// CriticalStock returns items at or below the fixed critical threshold.
func (s *Service) CriticalStock() []model.InventoryItem {
	var out []model.InventoryItem
	for _, it := range s.items {
		if it.Quantity <= CriticalStockThreshold {
			out = append(out, it)
		}
	}
	return out
}

// Logs returns a copy of the activity journal, newest-first.
func (s *Service) Logs() []model.InventoryLog {
	out := make([]model.InventoryLog, len(s.journal))
	copy(out, s.journal)
	return out
}

// DeleteLog removes a single journal entry.
func (s *Service) DeleteLog(ctx context.Context, id string) error {
	for idx, entry := range s.journal {
		if entry.ID == id {
			s.journal = append(s.journal[:idx], s.journal[idx+1:]...)
			return storage.Save(ctx, s.kv, storage.KeyLogs, s.journal)
		}
	}
	return ErrItemNotFound
}

// ClearLogs empties the journal.
func (s *Service) ClearLogs(ctx context.Context) error {
	s.journal = nil
	return storage.Save(ctx, s.kv, storage.KeyLogs, s.journal)
}

func (s *Service) persist(ctx context.Context) error {
	return storage.Save(ctx, s.kv, storage.KeyInventory, s.items)
}

func (s *Service) record(ctx context.Context, action, name string, delta int, category, location, actor string) {
	entry := model.InventoryLog{
		ID:             uuid.NewString(),
		Timestamp:      time.Now(),
		ActionType:     action,
		ItemName:       name,
		QuantityChange: delta,
		Category:       category,
		Location:       location,
		PerformedBy:    actor,
	}
	s.journal = append([]model.InventoryLog{entry}, s.journal...)
	if err := storage.Save(ctx, s.kv, storage.KeyLogs, s.journal); err != nil && s.log != nil {
		s.log.Warnw("persisting activity journal", "error", err)
	}
}
