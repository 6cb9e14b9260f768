package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"StockKeeper/internal/config"
	"StockKeeper/internal/model"
)

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "List inventory lines" }
func (itemsCmd) Usage() string       { return "items [-q <term>] [-low]" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	fs.SetOutput(Out)
	term := fs.String("q", "", "filter by name, category or location")
	lowOnly := fs.Bool("low", false, "only lines at or below their minimum stock")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() != 0 {
		return ErrUsage
	}
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.done()
	if _, err := a.requireUser(); err != nil {
		return err
	}

	items := a.inv.Items()
	if *lowOnly {
		items = a.inv.LowStock()
	}
	if *term != "" {
		items = filterItems(items, *term)
	}
	if len(items) == 0 {
		fmt.Fprintln(Out, "No items")
		return nil
	}
	for _, it := range items {
		marker := "•"
		if it.IsLowStock() {
			marker = "!"
		}
		cond := ""
		if it.Condition == model.ConditionUsed {
			cond = " [used]"
		}
		fmt.Fprintf(Out, "%s %s  %s%s\n", marker, it.ID, it.Name, cond)
		fmt.Fprintf(Out, "    %d %s (min %d)  %s / %s\n",
			it.Quantity, it.Unit, it.MinStock, it.Category, it.Location)
	}
	return nil
}

func filterItems(items []model.InventoryItem, term string) []model.InventoryItem {
	term = strings.ToLower(term)
	var out []model.InventoryItem
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), term) ||
			strings.Contains(strings.ToLower(it.Category), term) ||
			strings.Contains(strings.ToLower(it.Location), term) {
			out = append(out, it)
		}
	}
	return out
}

func init() { RegisterCmd(itemsCmd{}) }
