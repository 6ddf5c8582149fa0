// Package table prints recycle-bin contents and the audit trail.
package table

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/babarot/fileops/internal/audit"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gabriel-vasile/mimetype"
	"github.com/olekukonko/tablewriter"
)

const timeFormat = "2006-01-02 15:04:05"

// BinEntry is a recycled item as the table needs it
type BinEntry interface {
	GetName() string
	GetPath() string
	GetDeletedAt() time.Time
	GetSize() int64
}

type SortOrder int

const (
	SortDesc SortOrder = iota
	SortAsc
)

type PrintOptions struct {
	ShowRelativeTime bool
	Order            SortOrder
	// ShowType sniffs the content type of each entry
	ShowType bool
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	green := color.New(color.FgHiGreen).SprintFunc()
	colored := make([]string, len(header))
	for i, h := range header {
		colored[i] = green(h)
	}
	t.SetHeader(colored)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetBorder(false)
	t.SetHeaderLine(false)
	t.SetColumnSeparator("")
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func deletedAt(ts time.Time, relative bool) string {
	if relative {
		return humanize.Time(ts)
	}
	return ts.Format(timeFormat)
}

// PrintEntries writes one row per recycled item
func PrintEntries[T BinEntry](w io.Writer, entries []T, opts PrintOptions) {
	sorted := make([]T, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if opts.Order == SortAsc {
			return sorted[i].GetDeletedAt().Before(sorted[j].GetDeletedAt())
		}
		return sorted[i].GetDeletedAt().After(sorted[j].GetDeletedAt())
	})

	header := []string{"Deleted At", "Size", "Name"}
	if opts.ShowType {
		header = append(header, "Type")
	}
	t := newTable(w, header)
	for _, e := range sorted {
		row := []string{
			deletedAt(e.GetDeletedAt(), opts.ShowRelativeTime),
			humanize.Bytes(uint64(max(e.GetSize(), 0))),
			e.GetName(),
		}
		if opts.ShowType {
			row = append(row, contentType(e.GetPath()))
		}
		t.Append(row)
	}
	t.Render()
}

func contentType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "-"
	}
	return mtype.String()
}

// PrintHistory writes one row per audit entry
func PrintHistory(w io.Writer, entries []audit.Entry, relative bool) {
	red := color.New(color.FgRed).SprintFunc()
	t := newTable(w, []string{"Time", "Run", "Mode", "Result", "Elevated", "Path"})
	for _, e := range entries {
		result := e.Code
		if e.Failed() {
			result = red(result)
		}
		t.Append([]string{
			deletedAt(e.Time.Local(), relative),
			e.RunID,
			e.Mode,
			result,
			strconv.FormatBool(e.Escalated),
			e.Path,
		})
	}
	t.Render()
}

// Summary is the one-line result of a delete
func Summary(w io.Writer, deleted, total int, elapsed time.Duration) {
	c := color.New(color.FgHiGreen)
	if deleted < total {
		c = color.New(color.FgYellow)
	}
	c.Fprintf(w, "%d of %d items deleted", deleted, total)
	fmt.Fprintf(w, " in %s\n", elapsed.Round(time.Millisecond))
}
