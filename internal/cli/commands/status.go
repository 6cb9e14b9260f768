package commands

import (
	"context"
	"fmt"

	"StockKeeper/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show session, stock counters and backup state" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.done()

	if u, ok := a.users.Current(); ok {
		fmt.Fprintf(Out, "Session:   %s (%s)\n", u.Name, u.Role)
	} else {
		fmt.Fprintln(Out, "Session:   none")
	}

	items := a.inv.Items()
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	fmt.Fprintf(Out, "Inventory: %d line(s), %d unit(s) on hand\n", len(items), total)
	fmt.Fprintf(Out, "Low stock: %d line(s) at or below their own minimum\n", len(a.inv.LowStock()))
	fmt.Fprintf(Out, "Journal:   %d entr(ies)\n", len(a.inv.Logs()))

	cs, err := a.cloudService()
	if err != nil {
		return err
	}
	if sess, ok := cs.Session(ctx); ok {
		fmt.Fprintf(Out, "Backup:    connected as %s", sess.Profile.Email)
		if ok, last := cs.Metadata(ctx); ok {
			fmt.Fprintf(Out, ", last synced %s", last.Format("02/01/2006 15:04"))
		}
		fmt.Fprintln(Out)
	} else {
		fmt.Fprintln(Out, "Backup:    not connected")
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
