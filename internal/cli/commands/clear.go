package commands

import (
	"context"
	"fmt"

	"StockKeeper/internal/config"
)

type clearCmd struct{}

func (clearCmd) Name() string        { return "clear" }
func (clearCmd) Description() string { return "Delete every inventory line" }
func (clearCmd) Usage() string       { return "clear --yes" }

func (clearCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] != "--yes" {
		fmt.Fprintln(Out, "× This removes all inventory lines. Re-run with --yes to proceed.")
		return ErrUsage
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

	if err := a.inv.ClearAll(ctx, u.Name); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Inventory cleared")
	return nil
}

func init() { RegisterCmd(clearCmd{}) }
