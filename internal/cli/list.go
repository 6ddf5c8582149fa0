package cli

import (
	"fmt"
	"log/slog"

	"github.com/babarot/fileops/internal/recyclebin"
	"github.com/babarot/fileops/internal/ui/table"
)

// List prints the recycle bin through the configured filter
func (c CLI) List() error {
	bin, err := recyclebin.New(c.config.RecycleBinPath())
	if err != nil {
		return fmt.Errorf("open recycle bin: %w", err)
	}
	entries, err := bin.List()
	if err != nil {
		return err
	}
	total := len(entries)
	entries = recyclebin.Filter(entries, c.config.Core.RecycleBin.Filter)
	slog.Debug("listing recycle bin", "total", total, "shown", len(entries))

	if len(entries) == 0 {
		fmt.Fprintln(c.stdout, "recycle bin is empty")
		return nil
	}
	table.PrintEntries(c.stdout, entries, table.PrintOptions{
		ShowRelativeTime: true,
		ShowType:         c.option.Rm.Verbose,
	})
	return nil
}
