package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"StockKeeper/internal/inventory"
	"StockKeeper/internal/model"
	"StockKeeper/internal/storage"
)

// fakeClient scripts the generative service: one canned extraction and
// one canned chat reply, either of which can be an error.
type fakeClient struct {
	extract    *ParsedAction
	extractErr error
	chatReply  string
	chatErr    error

	extractCalls int
	chatCalls    int
}

func (f *fakeClient) Chat(_ context.Context, _ string, _ []model.InventoryItem) (string, error) {
	f.chatCalls++
	return f.chatReply, f.chatErr
}

func (f *fakeClient) Extract(_ context.Context, _ string) (*ParsedAction, error) {
	f.extractCalls++
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return f.extract, nil
}

func newTestInventory(t *testing.T, items ...model.InventoryItem) *inventory.Service {
	t.Helper()
	kv := storage.NewMemory()
	require.NoError(t, storage.Save(context.Background(), kv, storage.KeyInventory, items))
	return inventory.NewService(context.Background(), kv, zap.NewNop().Sugar())
}

func TestWelcomeMessageSeedsTranscript(t *testing.T) {
	b := NewBridge(newTestInventory(t), &fakeClient{}, zap.NewNop().Sugar())
	msgs := b.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.ChatRoleAssistant, msgs[0].Role)
}

func TestPlainQuestionSkipsExtraction(t *testing.T) {
	fc := &fakeClient{chatReply: "There are 45 boxes on shelf A1."}
	b := NewBridge(newTestInventory(t), fc, zap.NewNop().Sugar())

	out := b.Handle(context.Background(), "How much Canon toner is left?")
	require.Len(t, out, 2)
	assert.Equal(t, model.ChatRoleUser, out[0].Role)
	assert.Equal(t, "There are 45 boxes on shelf A1.", out[1].Text)
	assert.Equal(t, 0, fc.extractCalls)
	assert.Equal(t, 1, fc.chatCalls)
	assert.Nil(t, b.Pending())
}

func TestExportStagesAndConfirms(t *testing.T) {
	inv := newTestInventory(t, model.InventoryItem{
		ID: "1", Name: "Mực In Canon 2900 (Cartridge 303)", Quantity: 45, Unit: "hộp",
	})
	fc := &fakeClient{extract: &ParsedAction{
		Action: IntentExport, Name: "mực in canon 2900", Quantity: 2, Unit: "hộp",
	}}
	b := NewBridge(inv, fc, zap.NewNop().Sugar())

	out := b.Handle(context.Background(), "Lấy 2 hộp mực Canon 2900")
	require.Len(t, out, 2)
	assert.Contains(t, out[1].Text, "take out 2 hộp")
	require.NotNil(t, b.Pending())
	assert.Equal(t, IntentExport, b.Pending().Type)

	msg, ok := b.Confirm(context.Background(), "staff")
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Remaining: 43")
	assert.Nil(t, b.Pending())

	item, found := inv.Get("1")
	require.True(t, found)
	assert.Equal(t, 43, item.Quantity)
}

func TestExportRejectsInsufficientStockAtConfirm(t *testing.T) {
	inv := newTestInventory(t, model.InventoryItem{ID: "1", Name: "Web dầu", Quantity: 5})
	fc := &fakeClient{extract: &ParsedAction{Action: IntentExport, Name: "web dầu", Quantity: 7}}
	b := NewBridge(inv, fc, zap.NewNop().Sugar())

	b.Handle(context.Background(), "xuất 7 web dầu")
	require.NotNil(t, b.Pending())

	msg, ok := b.Confirm(context.Background(), "staff")
	require.True(t, ok)
	assert.Equal(t, "Error: not enough stock! (On hand: 5, requested: 7)", msg.Text)

	item, _ := inv.Get("1")
	assert.Equal(t, 5, item.Quantity)
}

func TestExportUnknownItem(t *testing.T) {
	inv := newTestInventory(t, model.InventoryItem{ID: "1", Name: "Drum Ricoh", Quantity: 5})
	fc := &fakeClient{extract: &ParsedAction{Action: IntentExport, Name: "toner xerox", Quantity: 1}}
	b := NewBridge(inv, fc, zap.NewNop().Sugar())

	out := b.Handle(context.Background(), "lấy 1 toner xerox")
	require.Len(t, out, 2)
	assert.Contains(t, out[1].Text, "no stocked item matches")
	assert.Nil(t, b.Pending())
}

func TestImportConfirmAppliesDefaults(t *testing.T) {
	inv := newTestInventory(t)
	fc := &fakeClient{extract: &ParsedAction{Action: IntentImport, Name: "Băng dính", Quantity: 10}}
	b := NewBridge(inv, fc, zap.NewNop().Sugar())

	b.Handle(context.Background(), "nhập 10 băng dính")
	require.NotNil(t, b.Pending())

	_, ok := b.Confirm(context.Background(), "staff")
	require.True(t, ok)

	items := inv.Items()
	require.Len(t, items, 1)
	assert.Equal(t, DefaultCategory, items[0].Category)
	assert.Equal(t, DefaultUnit, items[0].Unit)
	assert.Equal(t, DefaultLocation, items[0].Location)
	assert.Equal(t, DefaultMinStock, items[0].MinStock)
	assert.Equal(t, model.ConditionNew, items[0].Condition)
}

func TestImportConfirmMergesIntoExistingLine(t *testing.T) {
	inv := newTestInventory(t, model.InventoryItem{
		ID: "1", Name: "Băng dính", Quantity: 4, Condition: model.ConditionNew,
	})
	fc := &fakeClient{extract: &ParsedAction{Action: IntentImport, Name: "băng dính", Quantity: 6}}
	b := NewBridge(inv, fc, zap.NewNop().Sugar())

	b.Handle(context.Background(), "mua 6 băng dính")
	_, ok := b.Confirm(context.Background(), "staff")
	require.True(t, ok)

	items := inv.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, 10, items[0].Quantity)
}

func TestNewUtteranceDiscardsPending(t *testing.T) {
	inv := newTestInventory(t, model.InventoryItem{ID: "1", Name: "Drum Ricoh", Quantity: 5})
	fc := &fakeClient{
		extract:   &ParsedAction{Action: IntentExport, Name: "drum ricoh", Quantity: 1},
		chatReply: "Sure.",
	}
	b := NewBridge(inv, fc, zap.NewNop().Sugar())

	b.Handle(context.Background(), "lấy 1 drum ricoh")
	require.NotNil(t, b.Pending())

	b.Handle(context.Background(), "what is in stock?")
	assert.Nil(t, b.Pending())

	_, ok := b.Confirm(context.Background(), "staff")
	assert.False(t, ok)
}

func TestCancelDiscardsPending(t *testing.T) {
	inv := newTestInventory(t, model.InventoryItem{ID: "1", Name: "Drum Ricoh", Quantity: 5})
	fc := &fakeClient{extract: &ParsedAction{Action: IntentExport, Name: "drum", Quantity: 1}}
	b := NewBridge(inv, fc, zap.NewNop().Sugar())

	b.Handle(context.Background(), "lấy 1 drum")
	msg, ok := b.Cancel()
	require.True(t, ok)
	assert.Equal(t, "Action cancelled.", msg.Text)
	assert.Nil(t, b.Pending())

	_, ok = b.Cancel()
	assert.False(t, ok)
}

func TestExtractionFailureFallsBackToChat(t *testing.T) {
	fc := &fakeClient{extractErr: errors.New("schema violation"), chatReply: "Could you rephrase?"}
	b := NewBridge(newTestInventory(t), fc, zap.NewNop().Sugar())

	out := b.Handle(context.Background(), "thêm vài thứ")
	require.Len(t, out, 2)
	assert.Equal(t, "Could you rephrase?", out[1].Text)
	assert.Equal(t, 1, fc.extractCalls)
}

func TestChatFailureLeavesOnlyUserMessage(t *testing.T) {
	fc := &fakeClient{chatErr: errors.New("service unavailable")}
	b := NewBridge(newTestInventory(t), fc, zap.NewNop().Sugar())

	out := b.Handle(context.Background(), "hello there")
	require.Len(t, out, 1)
	assert.Equal(t, model.ChatRoleUser, out[0].Role)
}
