package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/babarot/fileops/internal/audit"
	"github.com/babarot/fileops/internal/recyclebin"
	"github.com/babarot/fileops/internal/ui/table"
	"github.com/fatih/color"
	"github.com/k1LoW/duration"
)

const historyLimit = 200

var ErrAuditDisabled = errors.New("audit trail is not enabled in config: set core.audit.enabled to true")

// History prints the audit trail, or prunes it when --prune is given
func (c CLI) History(ctx context.Context) error {
	if c.option.Bin.Prune == "orphans" {
		return c.pruneOrphans()
	}
	if !c.config.Core.Audit.Enabled {
		return ErrAuditDisabled
	}
	store, err := audit.Open(c.config.AuditPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if c.option.Bin.Prune != "" {
		return c.pruneHistory(ctx, store, c.option.Bin.Prune)
	}

	entries, err := store.List(ctx, audit.Query{
		FailedOnly: c.option.Bin.Failed,
		Limit:      historyLimit,
	})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.stdout, "no deletions recorded")
		return nil
	}
	table.PrintHistory(c.stdout, entries, true)
	return nil
}

func (c CLI) pruneHistory(ctx context.Context, store *audit.Store, age string) error {
	d, err := duration.Parse(age)
	if err != nil {
		slog.Error("failed to parse duration", "error", err)
		return fmt.Errorf("unknown prune argument: %s", age)
	}
	n, err := store.Prune(ctx, time.Now().Add(-d))
	if err != nil {
		return err
	}
	slog.Debug("pruned audit records", "age", d, "count", n)
	fmt.Fprintf(c.stdout, "%d audit records removed\n", n)
	return nil
}

// pruneOrphans removes info records whose recycled item is gone
func (c CLI) pruneOrphans() error {
	bin, err := recyclebin.New(c.config.RecycleBinPath())
	if err != nil {
		return err
	}
	orphans, err := bin.Orphans()
	if err != nil {
		return err
	}
	if len(orphans) == 0 {
		fmt.Fprintln(c.stdout, "no orphaned records found")
		return nil
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	var errs []error
	for _, path := range orphans {
		if err := os.Remove(path); err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(c.stdout, "%s %s\n", yellow("removed"), path)
	}
	return errors.Join(errs...)
}
