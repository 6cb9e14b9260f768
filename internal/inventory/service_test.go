package inventory

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
	// Start empty so tests control the collection.
	require.NoError(t, storage.Save(context.Background(), kv, storage.KeyInventory, []model.InventoryItem{}))
	return NewService(context.Background(), kv, zap.NewNop().Sugar()), kv
}

func TestSeedOnFirstRun(t *testing.T) {
	kv := storage.NewMemory()
	svc := NewService(context.Background(), kv, zap.NewNop().Sugar())
	assert.Len(t, svc.Items(), 6)
}

func TestSeedOnCorruptDocument(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(context.Background(), storage.KeyInventory, []byte("{not json")))
	svc := NewService(context.Background(), kv, zap.NewNop().Sugar())
	assert.Len(t, svc.Items(), 6)
}

func TestAddCreatesNewLine(t *testing.T) {
	svc, _ := newTestService(t)
	item, merged, err := svc.Add(context.Background(), model.InventoryItem{
		Name: "Mực in", Quantity: 5, Unit: "hộp",
	}, "tester")
	require.NoError(t, err)
	assert.False(t, merged)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, model.ConditionNew, item.Condition)
	assert.Len(t, svc.Items(), 1)

	logs := svc.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCreate, logs[0].ActionType)
	assert.Equal(t, 5, logs[0].QuantityChange)
}

func TestAddMergesOnNameAndCondition(t *testing.T) {
	svc, _ := newTestService(t)
	first, _, err := svc.Add(context.Background(), model.InventoryItem{Name: "Drum Ricoh", Quantity: 3}, "a")
	require.NoError(t, err)

	// Same name modulo spacing and case merges into the existing line.
	second, merged, err := svc.Add(context.Background(), model.InventoryItem{Name: "  drum ricoh ", Quantity: 4}, "b")
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 7, second.Quantity)
	assert.Len(t, svc.Items(), 1)
}

func TestAddKeepsConditionsSeparate(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.Add(context.Background(), model.InventoryItem{Name: "Rulo sấy", Quantity: 2}, "a")
	require.NoError(t, err)
	_, merged, err := svc.Add(context.Background(), model.InventoryItem{
		Name: "Rulo sấy", Quantity: 1, Condition: model.ConditionUsed,
	}, "a")
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Len(t, svc.Items(), 2)
}

func TestAdjustQuantityClampsAtZero(t *testing.T) {
	svc, _ := newTestService(t)
	item, _, err := svc.Add(context.Background(), model.InventoryItem{Name: "Gạt mực", Quantity: 3}, "a")
	require.NoError(t, err)

	got, err := svc.AdjustQuantity(context.Background(), item.ID, -10, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	// The journal records the applied delta, not the requested one.
	logs := svc.Logs()
	require.NotEmpty(t, logs)
	assert.Equal(t, model.ActionExport, logs[0].ActionType)
	assert.Equal(t, -3, logs[0].QuantityChange)
}

func TestAdjustQuantityUnknownID(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AdjustQuantity(context.Background(), "missing", 1, "a")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteUnknownID(t *testing.T) {
	svc, _ := newTestService(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing", "a"), ErrItemNotFound)
}

func TestClearAllThenAddStartsFresh(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.Add(context.Background(), model.InventoryItem{Name: "Web dầu", Quantity: 6}, "a")
	require.NoError(t, err)
	require.NoError(t, svc.ClearAll(context.Background(), "a"))
	assert.Empty(t, svc.Items())

	item, merged, err := svc.Add(context.Background(), model.InventoryItem{Name: "Web dầu", Quantity: 2}, "a")
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Equal(t, 2, item.Quantity)

	logs := svc.Logs()
	require.GreaterOrEqual(t, len(logs), 2)
	assert.Equal(t, model.ActionDeleteAll, logs[1].ActionType)
	assert.Equal(t, -6, logs[1].QuantityChange)
	assert.Equal(t, "-", logs[1].ItemName)
}

func TestLowAndCriticalStock(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.Add(context.Background(), model.InventoryItem{Name: "A", Quantity: 4, MinStock: 5}, "a")
	require.NoError(t, err)
	_, _, err = svc.Add(context.Background(), model.InventoryItem{Name: "B", Quantity: 2, MinStock: 1}, "a")
	require.NoError(t, err)
	_, _, err = svc.Add(context.Background(), model.InventoryItem{Name: "C", Quantity: 50, MinStock: 10}, "a")
	require.NoError(t, err)

	low := svc.LowStock()
	require.Len(t, low, 1)
	assert.Equal(t, "A", low[0].Name)

	critical := svc.CriticalStock()
	require.Len(t, critical, 1)
	assert.Equal(t, "B", critical[0].Name)
}

func TestWriteThroughSurvivesReload(t *testing.T) {
	svc, kv := newTestService(t)
	item, _, err := svc.Add(context.Background(), model.InventoryItem{Name: "Drum", Quantity: 12}, "a")
	require.NoError(t, err)

	reloaded := NewService(context.Background(), kv, zap.NewNop().Sugar())
	got, ok := reloaded.Get(item.ID)
	require.True(t, ok)
	assert.Equal(t, 12, got.Quantity)
	assert.Len(t, reloaded.Logs(), 1)
}

func TestDeleteLogAndClearLogs(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.Add(context.Background(), model.InventoryItem{Name: "A", Quantity: 1}, "a")
	require.NoError(t, err)
	logs := svc.Logs()
	require.Len(t, logs, 1)

	require.NoError(t, svc.DeleteLog(context.Background(), logs[0].ID))
	assert.Empty(t, svc.Logs())
	assert.ErrorIs(t, svc.DeleteLog(context.Background(), logs[0].ID), ErrItemNotFound)

	_, _, err = svc.Add(context.Background(), model.InventoryItem{Name: "B", Quantity: 1}, "a")
	require.NoError(t, err)
	require.NoError(t, svc.ClearLogs(context.Background()))
	assert.Empty(t, svc.Logs())
}
