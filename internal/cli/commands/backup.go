package commands

import (
	"context"
	"errors"
	"fmt"

	"StockKeeper/internal/config"
)

type backupLoginCmd struct{}

func (backupLoginCmd) Name() string        { return "backup-login" }
func (backupLoginCmd) Description() string { return "Connect the simulated cloud account" }
func (backupLoginCmd) Usage() string       { return "backup-login" }

func (backupLoginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
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
	cs, err := a.cloudService()
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "→ Opening account chooser...")
	p, err := cs.Login(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "✓ Connected as %s (%s)\n", p.Name, p.Email)
	return nil
}

type backupLogoutCmd struct{}

func (backupLogoutCmd) Name() string        { return "backup-logout" }
func (backupLogoutCmd) Description() string { return "Disconnect the simulated cloud account" }
func (backupLogoutCmd) Usage() string       { return "backup-logout" }

func (backupLogoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.done()
	cs, err := a.cloudService()
	if err != nil {
		return err
	}
	if err := cs.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "✓ Cloud account disconnected")
	return nil
}

type backupStatusCmd struct{}

func (backupStatusCmd) Name() string        { return "backup-status" }
func (backupStatusCmd) Description() string { return "Show cloud connection and last sync time" }
func (backupStatusCmd) Usage() string       { return "backup-status" }

func (backupStatusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.done()
	cs, err := a.cloudService()
	if err != nil {
		return err
	}
	sess, ok := cs.Session(ctx)
	if !ok {
		fmt.Fprintln(Out, "Not connected")
		return nil
	}
	fmt.Fprintf(Out, "Connected as %s (%s)\n", sess.Profile.Name, sess.Profile.Email)
	if has, last := cs.Metadata(ctx); has {
		fmt.Fprintf(Out, "Last synced: %s\n", last.Format("02/01/2006 15:04"))
	} else {
		fmt.Fprintln(Out, "No backup uploaded yet")
	}
	return nil
}

type backupUploadCmd struct{}

func (backupUploadCmd) Name() string        { return "backup-upload" }
func (backupUploadCmd) Description() string { return "Upload users and inventory to the cloud store" }
func (backupUploadCmd) Usage() string       { return "backup-upload" }

func (backupUploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
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
	cs, err := a.cloudService()
	if err != nil {
		return err
	}
	if _, ok := cs.Session(ctx); !ok {
		return errors.New("not connected: run backup-login first")
	}
	fmt.Fprintln(Out, "→ Uploading backup...")
	synced, err := cs.Upload(ctx, a.users.Directory(), a.inv.Items())
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "✓ Backup uploaded at %s\n", synced.Format("02/01/2006 15:04"))
	return nil
}

type backupRestoreCmd struct{}

func (backupRestoreCmd) Name() string { return "backup-restore" }
func (backupRestoreCmd) Description() string {
	return "Replace local users and inventory with the cloud backup"
}
func (backupRestoreCmd) Usage() string { return "backup-restore --yes" }

func (backupRestoreCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] != "--yes" {
		fmt.Fprintln(Out, "× This overwrites all local data. Re-run with --yes to proceed.")
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
	cs, err := a.cloudService()
	if err != nil {
		return err
	}
	if _, ok := cs.Session(ctx); !ok {
		return errors.New("not connected: run backup-login first")
	}
	fmt.Fprintln(Out, "→ Fetching backup...")
	payload, err := cs.Fetch(ctx)
	if err != nil {
		return err
	}
	if payload == nil {
		return errors.New("no backup found in the cloud store")
	}
	if err := a.users.Replace(ctx, payload.Users); err != nil {
		return err
	}
	if err := a.inv.ReplaceAll(ctx, payload.Inventory); err != nil {
		return err
	}
	fmt.Fprintf(Out, "✓ Restored %d user(s) and %d item(s) from backup taken %s\n",
		len(payload.Users), len(payload.Inventory), payload.LastSynced.Format("02/01/2006 15:04"))
	return nil
}

func init() {
	RegisterCmd(backupLoginCmd{})
	RegisterCmd(backupLogoutCmd{})
	RegisterCmd(backupStatusCmd{})
	RegisterCmd(backupUploadCmd{})
	RegisterCmd(backupRestoreCmd{})
}
