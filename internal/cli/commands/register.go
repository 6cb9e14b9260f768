package commands

import (
	"context"
	"fmt"
	"strings"

	"StockKeeper/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string { return "register" }
func (registerCmd) Description() string {
	return "Create a staff account and log in immediately"
}
func (registerCmd) Usage() string {
	return "register <username> <password> <confirm-password> [full name]"
}

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.done()

	fullName := strings.Join(args[3:], " ")
	u, err := a.users.Register(ctx, args[0], args[1], args[2], fullName)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered and logged in as %s (%s)\n", u.Name, u.Role)
	a.printCriticalStock()
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
