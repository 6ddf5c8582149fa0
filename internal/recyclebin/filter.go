package recyclebin

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/babarot/fileops/internal/config"
	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
	"github.com/samber/lo"
)

// Filterable is what a listed bin entry exposes to the filter
type Filterable interface {
	// GetName returns the original name of the item
	GetName() string
	// GetPath returns the current path in the bin
	GetPath() string
	// GetDeletedAt returns when the item was recycled
	GetDeletedAt() time.Time
	// GetSize returns the recorded size in bytes
	GetSize() int64
}

// Filter applies the configured include/exclude rules
func Filter[T Filterable](items []T, opts config.FilterConfig) []T {
	items = rejectByNames(items, opts.Exclude.Files)
	items = rejectByPatterns(items, opts.Exclude.Patterns)
	items = rejectByGlobs(items, opts.Exclude.Globs)
	items = rejectBySize(items, opts.Exclude.Size)
	items = filterByPeriod(items, opts.Include.Period, time.Now())
	return items
}

func rejectByNames[T Filterable](items []T, names []string) []T {
	if len(names) == 0 {
		return items
	}
	return lo.Reject(items, func(item T, _ int) bool {
		return lo.Contains(names, item.GetName())
	})
}

func rejectByPatterns[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			slog.Warn("ignoring invalid exclude pattern", "pattern", p, "error", err)
			continue
		}
		res = append(res, re)
	}
	return lo.Reject(items, func(item T, _ int) bool {
		return lo.SomeBy(res, func(re *regexp.Regexp) bool {
			return re.MatchString(item.GetName())
		})
	})
}

func rejectByGlobs[T Filterable](items []T, globs []string) []T {
	if len(globs) == 0 {
		return items
	}
	compiled := make([]glob.Glob, 0, len(globs))
	for _, g := range globs {
		c, err := glob.Compile(g)
		if err != nil {
			slog.Warn("ignoring invalid exclude glob", "glob", g, "error", err)
			continue
		}
		compiled = append(compiled, c)
	}
	return lo.Reject(items, func(item T, _ int) bool {
		return lo.SomeBy(compiled, func(g glob.Glob) bool {
			return g.Match(item.GetName())
		})
	})
}

func rejectBySize[T Filterable](items []T, size config.SizeConfig) []T {
	if size.Min == "" && size.Max == "" {
		return items
	}
	var min, max int64 = -1, -1
	if size.Min != "" {
		if v, err := units.FromHumanSize(size.Min); err == nil {
			min = v
		}
	}
	if size.Max != "" {
		if v, err := units.FromHumanSize(size.Max); err == nil {
			max = v
		}
	}
	return lo.Reject(items, func(item T, _ int) bool {
		s := item.GetSize()
		if min >= 0 && s < min {
			return true
		}
		if max >= 0 && s > max {
			return true
		}
		return false
	})
}

func filterByPeriod[T Filterable](items []T, days int, now time.Time) []T {
	if days <= 0 {
		return items
	}
	d, err := duration.Parse(fmt.Sprintf("%d days", days))
	if err != nil {
		slog.Error("failed to parse duration", "error", err)
		return items
	}
	return lo.Filter(items, func(item T, _ int) bool {
		return now.Sub(item.GetDeletedAt()) < d
	})
}
