package commands

import (
	"context"
	"fmt"
	"strconv"

	"StockKeeper/internal/config"
)

type itemAdjustCmd struct{}

func (itemAdjustCmd) Name() string { return "item-adjust" }
func (itemAdjustCmd) Description() string {
	return "Shift a line's quantity by a signed delta; never goes below zero"
}
func (itemAdjustCmd) Usage() string { return "item-adjust <id> <delta>" }

func (itemAdjustCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil || delta == 0 {
		return fmt.Errorf("delta must be a non-zero number: %w", ErrUsage)
	}
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.done()
	u, err := a.requireUser()
	if err != nil {
		return err
	}

	item, err := a.inv.AdjustQuantity(ctx, args[0], delta, u.Name)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "✓ %q now at %d %s\n", item.Name, item.Quantity, item.Unit)
	if item.IsLowStock() {
		fmt.Fprintf(Out, "! %q is at or below its minimum of %d\n", item.Name, item.MinStock)
	}
	return nil
}

func init() { RegisterCmd(itemAdjustCmd{}) }
