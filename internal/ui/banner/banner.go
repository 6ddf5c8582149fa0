// Package banner renders status banners on a terminal.
package banner

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/babarot/fileops/internal/config"
	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/ops"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

const (
	defaultWidth = 80
	ellipsis     = "…"
)

// Terminal writes banners as styled lines. Progress is redrawn in place
// when Live is set; otherwise each update is a new line.
type Terminal struct {
	Out io.Writer
	// In answers actionable banners; nil answers every one with the
	// secondary choice
	In    *bufio.Reader
	Width int
	Live  bool

	mu     sync.Mutex
	styles styles
	bar    progress.Model
}

var _ ops.Banners = (*Terminal)(nil)

type styles struct {
	title  map[types.Severity]lipgloss.Style
	detail lipgloss.Style
	choice lipgloss.Style
}

// New returns a Terminal colored from cfg
func New(out io.Writer, in *bufio.Reader, cfg config.UI) *Terminal {
	c := cfg.Style.Banner
	title := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}
	return &Terminal{
		Out:   out,
		In:    in,
		Width: defaultWidth,
		styles: styles{
			title: map[types.Severity]lipgloss.Style{
				types.Ongoing: title(c.Ongoing),
				types.Success: title(c.Success),
				types.Error:   title(c.Error),
			},
			detail: lipgloss.NewStyle().Faint(true),
			choice: lipgloss.NewStyle().Underline(true),
		},
		bar: progress.New(progress.WithSolidFill(c.Ongoing), progress.WithoutPercentage()),
	}
}

func icon(s types.Severity) string {
	switch s {
	case types.Success:
		return "✔"
	case types.Error:
		return "✘"
	default:
		return "•"
	}
}

func (t *Terminal) width() int {
	if t.Width <= 0 {
		return defaultWidth
	}
	return t.Width
}

// render formats a banner: a title line truncated to the width and the
// detail wrapped below it
func (t *Terminal) render(b ops.Banner) string {
	title := fmt.Sprintf("%s %s", icon(b.Severity), b.Title)
	title = ansi.Truncate(title, t.width(), ellipsis)
	lines := []string{t.styles.title[b.Severity].Render(title)}
	if b.Detail != "" {
		wrapped := wordwrap.String(b.Detail, t.width()-2)
		for _, l := range strings.Split(wrapped, "\n") {
			lines = append(lines, "  "+t.styles.detail.Render(l))
		}
	}
	return strings.Join(lines, "\n")
}

func (t *Terminal) Post(b ops.Banner) ops.BannerHandle {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.Out, t.render(b))
	slog.Debug("banner posted", "title", b.Title, "severity", b.Severity)
	return &handle{t: t, title: b.Title}
}

// PostActionable shows the banner with both choices and runs onPrimary
// when the answer read from In picks the primary one
func (t *Terminal) PostActionable(title, detail, primary, secondary string, onPrimary func()) {
	t.mu.Lock()
	fmt.Fprintln(t.Out, t.render(ops.Banner{Title: title, Detail: detail, Severity: types.Error}))
	if t.In == nil {
		t.mu.Unlock()
		return
	}
	fmt.Fprintf(t.Out, "  %s / %s ", t.styles.choice.Render(primary), t.styles.choice.Render(secondary))
	line, _ := t.In.ReadString('\n')
	t.mu.Unlock()

	if pick(line, primary, secondary) == primary && onPrimary != nil {
		slog.Info("banner action picked", "title", title, "action", primary)
		onPrimary()
	}
}

// pick matches an answer against the choices by whole word or first
// letter. Anything else picks secondary.
func pick(answer, primary, secondary string) string {
	answer = strings.ToLower(strings.TrimSpace(answer))
	p := strings.ToLower(primary)
	if answer != "" && p != "" && (answer == p || answer == p[:1]) {
		return primary
	}
	return secondary
}

type handle struct {
	t       *Terminal
	title   string
	drawn   bool
	removed bool
}

func (h *handle) ReportProgress(percent int) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if h.removed {
		return
	}
	percent = max(0, min(percent, 100))
	bar := h.t.bar
	bar.Width = max(10, h.t.width()-len(h.title)-10)
	line := fmt.Sprintf("  %s %3d%%", bar.ViewAs(float64(percent)/100), percent)
	if h.t.Live {
		fmt.Fprint(h.t.Out, "\r"+line)
		h.drawn = true
		return
	}
	fmt.Fprintln(h.t.Out, line)
}

func (h *handle) Remove() {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if h.removed {
		return
	}
	h.removed = true
	if h.drawn {
		fmt.Fprint(h.t.Out, "\r"+ansi.EraseEntireLine)
	}
}
