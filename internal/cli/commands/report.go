package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"StockKeeper/internal/config"
	"StockKeeper/internal/report"
)

type reportCmd struct{}

func (reportCmd) Name() string { return "report" }
func (reportCmd) Description() string {
	return "Show or export the activity journal (csv, word or html)"
}
func (reportCmd) Usage() string {
	return "report [-q term] [-format csv|word|html] [-o file] [-delete id] [-clear]"
}

func (reportCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(Out)
	term := fs.String("q", "", "filter by item name, user or action")
	format := fs.String("format", "", "export format: csv, word or html")
	outPath := fs.String("o", "", "output file (default: generated name in the current directory)")
	deleteID := fs.String("delete", "", "delete one journal entry by id")
	clearAll := fs.Bool("clear", false, "delete the whole journal")
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

	if *clearAll {
		if err := a.inv.ClearLogs(ctx); err != nil {
			return err
		}
		fmt.Fprintln(Out, "✓ Journal cleared")
		return nil
	}
	if *deleteID != "" {
		if err := a.inv.DeleteLog(ctx, *deleteID); err != nil {
			return err
		}
		fmt.Fprintf(Out, "✓ Deleted journal entry %s\n", *deleteID)
		return nil
	}

	logs := report.Filter(a.inv.Logs(), *term)
	now := time.Now()

	switch *format {
	case "":
		if len(logs) == 0 {
			fmt.Fprintln(Out, "No journal entries")
			return nil
		}
		for _, l := range logs {
			fmt.Fprintf(Out, "• %s  %s  %-10s %s (%+d) by %s\n",
				l.ID, l.Timestamp.Format("02/01/2006 15:04"), l.ActionType, l.ItemName, l.QuantityChange, l.PerformedBy)
		}
		return nil
	case "csv":
		path := *outPath
		if path == "" {
			path = report.CSVFileName(now)
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := report.WriteCSV(f, logs); err != nil {
			return err
		}
		fmt.Fprintf(Out, "✓ Wrote %d row(s) to %s\n", len(logs), filepath.Clean(path))
		return nil
	case "word":
		path := *outPath
		if path == "" {
			path = report.WordFileName(now)
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := report.WriteWord(f, logs, now); err != nil {
			return err
		}
		fmt.Fprintf(Out, "✓ Wrote %s report to %s\n", report.WordMIMEType, filepath.Clean(path))
		return nil
	case "html":
		if *outPath == "" {
			return report.WriteHTML(Out, logs, now)
		}
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := report.WriteHTML(f, logs, now); err != nil {
			return err
		}
		fmt.Fprintf(Out, "✓ Wrote print view to %s\n", filepath.Clean(*outPath))
		return nil
	default:
		return fmt.Errorf("unknown format %q: %w", *format, ErrUsage)
	}
}

func init() { RegisterCmd(reportCmd{}) }
