package commands

import (
	"context"
	"fmt"

	"StockKeeper/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Log in and establish the local session" }
func (loginCmd) Usage() string       { return "login <username> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.done()

	u, err := a.users.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Logged in as %s (%s)\n", u.Name, u.Role)
	a.printCriticalStock()
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
