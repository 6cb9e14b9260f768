package commands

import (
	"context"
	"fmt"

	"StockKeeper/internal/config"
)

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string        { return "item-delete" }
func (itemDeleteCmd) Description() string { return "Remove one inventory line" }
func (itemDeleteCmd) Usage() string       { return "item-delete <id>" }

func (itemDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
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

	if err := a.inv.Delete(ctx, args[0], u.Name); err != nil {
		return err
	}
	fmt.Fprintf(Out, "✓ Deleted item %s\n", args[0])
	return nil
}

func init() { RegisterCmd(itemDeleteCmd{}) }
