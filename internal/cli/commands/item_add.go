package commands

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"StockKeeper/internal/assistant"
	"StockKeeper/internal/config"
	"StockKeeper/internal/model"
)

type itemAddCmd struct{}

func (itemAddCmd) Name() string { return "item-add" }
func (itemAddCmd) Description() string {
	return "Add stock; merges into an existing line with the same name and condition"
}
func (itemAddCmd) Usage() string {
	return "item-add [-category c] [-unit u] [-location l] [-min n] [-used] <name> <quantity>"
}

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("item-add", flag.ContinueOnError)
	fs.SetOutput(Out)
	category := fs.String("category", assistant.DefaultCategory, "item category")
	unit := fs.String("unit", assistant.DefaultUnit, "counting unit")
	location := fs.String("location", assistant.DefaultLocation, "storage location")
	minStock := fs.Int("min", assistant.DefaultMinStock, "minimum stock threshold")
	used := fs.Bool("used", false, "mark the stock as used rather than new")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return ErrUsage
	}
	qty, err := strconv.Atoi(rest[len(rest)-1])
	if err != nil || qty <= 0 {
		return fmt.Errorf("quantity must be a positive number: %w", ErrUsage)
	}
	name := strings.Join(rest[:len(rest)-1], " ")

	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.done()
	u, err := a.requireUser()
	if err != nil {
		return err
	}

	condition := model.ConditionNew
	if *used {
		condition = model.ConditionUsed
	}
	item, merged, err := a.inv.Add(ctx, model.InventoryItem{
		Name:      name,
		Category:  *category,
		Quantity:  qty,
		Unit:      *unit,
		MinStock:  *minStock,
		Location:  *location,
		Condition: condition,
	}, u.Name)
	if err != nil {
		return err
	}
	if merged {
		fmt.Fprintf(Out, "✓ Merged into %q (id %s). On hand: %d %s\n", item.Name, item.ID, item.Quantity, item.Unit)
	} else {
		fmt.Fprintf(Out, "✓ Created %q (id %s). On hand: %d %s\n", item.Name, item.ID, item.Quantity, item.Unit)
	}
	return nil
}

func init() { RegisterCmd(itemAddCmd{}) }
