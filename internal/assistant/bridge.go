// Package assistant turns free-text utterances into inventory mutations.
// Action-looking text goes through structured extraction and a staged,
// confirmable PendingAction; everything else is free-form chat grounded
// in a snapshot of the current inventory.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"StockKeeper/internal/inventory"
	"StockKeeper/internal/model"
)

// Defaults applied to a confirmed import when extraction omitted a field.
const (
	DefaultCategory = "Khác"
	DefaultUnit     = "cái"
	DefaultLocation = "Kho chung"
	DefaultMinStock = 10
)

// actionKeywords gates structured extraction. It covers the stock-in and
// stock-out vocabulary in English and Vietnamese.
var actionKeywords = []string{
	"add", "import", "buy", "create", "take", "use", "sell", "remove", "subtract",
	"thêm", "nhập", "tạo", "mua", "lấy", "xuất", "dùng", "bán", "trừ",
}

// PendingAction is a staged, unconfirmed inventory mutation. It lives
// only in memory and is discarded by any new utterance, a cancel, or a
// confirm.
type PendingAction struct {
	Type    string
	Data    ParsedAction
	Matched *model.InventoryItem // export only; staging-time reference
}

// Bridge drives one assistant conversation over the inventory service.
type Bridge struct {
	inv      *inventory.Service
	client   Client
	log      *zap.SugaredLogger
	messages []model.ChatMessage
	pending  *PendingAction
}

// NewBridge seeds the transcript with the fixed welcome message.
func NewBridge(inv *inventory.Service, client Client, log *zap.SugaredLogger) *Bridge {
	b := &Bridge{inv: inv, client: client, log: log}
	b.push(model.ChatRoleAssistant,
		`Hello! I can check stock levels, book deliveries in or take items out for you. For example: "Lấy 2 hộp mực Canon 2900" or "Add 5 rolls of oil web".`)
	return b
}

// Messages returns a copy of the transcript.
func (b *Bridge) Messages() []model.ChatMessage {
	out := make([]model.ChatMessage, len(b.messages))
	copy(out, b.messages)
	return out
}

// Pending returns the currently staged action, if any.
func (b *Bridge) Pending() *PendingAction {
	return b.pending
}

// Handle runs one utterance through the intent state machine and returns
// the messages appended by it (the user message first).
func (b *Bridge) Handle(ctx context.Context, text string) []model.ChatMessage {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	start := len(b.messages)
	b.push(model.ChatRoleUser, text)
	// A new utterance implicitly discards an unconfirmed staged action.
	b.pending = nil

	if hasActionKeyword(text) {
		if pa, err := b.client.Extract(ctx, text); err == nil {
			switch pa.Action {
			case IntentExport:
				if matched := matchItem(b.inv.Items(), pa.Name); matched != nil {
					b.pending = &PendingAction{Type: IntentExport, Data: *pa, Matched: matched}
					unit := pa.Unit
					if unit == "" {
						unit = matched.Unit
					}
					b.push(model.ChatRoleAssistant,
						fmt.Sprintf("I found %q in stock. You want to take out %d %s, correct?", matched.Name, pa.Quantity, unit))
				} else {
					b.push(model.ChatRoleAssistant,
						fmt.Sprintf("I understood you want to take %q, but no stocked item matches that name. Please check the exact name.", pa.Name))
				}
				return b.appended(start)
			case IntentImport:
				b.pending = &PendingAction{Type: IntentImport, Data: *pa}
				b.push(model.ChatRoleAssistant,
					fmt.Sprintf("I have prepared an import slip for %q (+%d). Please confirm the details.", pa.Name, pa.Quantity))
				return b.appended(start)
			}
		} else if b.log != nil {
			b.log.Debugw("intent extraction failed, falling back to chat", "error", err)
		}
	}

	reply, err := b.client.Chat(ctx, text, b.inv.Items())
	if err != nil {
		// Free-form failures are swallowed; the transcript gains nothing.
		if b.log != nil {
			b.log.Debugw("free-form chat failed", "error", err)
		}
		return b.appended(start)
	}
	b.push(model.ChatRoleAssistant, reply)
	return b.appended(start)
}

// Confirm executes the staged action. For an export the stock level is
// re-checked against the live collection at confirm time, not the
// staging-time snapshot. Reports whether there was anything to confirm.
func (b *Bridge) Confirm(ctx context.Context, actor string) (model.ChatMessage, bool) {
	if b.pending == nil {
		return model.ChatMessage{}, false
	}
	pa := b.pending
	b.pending = nil

	switch pa.Type {
	case IntentImport:
		item := model.InventoryItem{
			Name:      pa.Data.Name,
			Category:  orDefault(pa.Data.Category, DefaultCategory),
			Quantity:  pa.Data.Quantity,
			Unit:      orDefault(pa.Data.Unit, DefaultUnit),
			MinStock:  orDefaultInt(pa.Data.MinStock, DefaultMinStock),
			Location:  orDefault(pa.Data.Location, DefaultLocation),
			Condition: model.ConditionNew,
		}
		stored, _, err := b.inv.Add(ctx, item, actor)
		if err != nil && b.log != nil {
			b.log.Warnw("persisting confirmed import", "error", err)
		}
		return b.push(model.ChatRoleAssistant,
			fmt.Sprintf("Booked into stock: %q (+%d).", stored.Name, pa.Data.Quantity)), true

	case IntentExport:
		fresh, ok := b.inv.Get(pa.Matched.ID)
		if !ok || fresh.Quantity < pa.Data.Quantity {
			onHand := 0
			if ok {
				onHand = fresh.Quantity
			}
			return b.push(model.ChatRoleAssistant,
				fmt.Sprintf("Error: not enough stock! (On hand: %d, requested: %d)", onHand, pa.Data.Quantity)), true
		}
		remaining := fresh.Quantity - pa.Data.Quantity
		if _, err := b.inv.AdjustQuantity(ctx, fresh.ID, -pa.Data.Quantity, actor); err != nil && b.log != nil {
			b.log.Warnw("persisting confirmed export", "error", err)
		}
		return b.push(model.ChatRoleAssistant,
			fmt.Sprintf("Issued from stock: %q (-%d). Remaining: %d.", fresh.Name, pa.Data.Quantity, remaining)), true
	}
	return model.ChatMessage{}, false
}

// Cancel discards the staged action and acknowledges it.
func (b *Bridge) Cancel() (model.ChatMessage, bool) {
	if b.pending == nil {
		return model.ChatMessage{}, false
	}
	b.pending = nil
	return b.push(model.ChatRoleAssistant, "Action cancelled."), true
}

func (b *Bridge) push(role, text string) model.ChatMessage {
	msg := model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
	b.messages = append(b.messages, msg)
	return msg
}

func (b *Bridge) appended(start int) []model.ChatMessage {
	out := make([]model.ChatMessage, len(b.messages)-start)
	copy(out, b.messages[start:])
	return out
}

func hasActionKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range actionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// matchItem finds the first inventory item whose name contains, or is
// contained by, the extracted name (case-insensitive). No ranking.
func matchItem(items []model.InventoryItem, name string) *model.InventoryItem {
	needle := strings.ToLower(name)
	for i := range items {
		have := strings.ToLower(items[i].Name)
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			it := items[i]
			return &it
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
