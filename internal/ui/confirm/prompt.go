package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/ops"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Prompter confirms deletes on a terminal
type Prompter struct {
	// In carries line answers. The interactive prompt reads the terminal.
	In  *bufio.Reader
	Out io.Writer

	// Items is the size of the batch being confirmed
	Items int
	// Interactive selects the bubbletea prompt over the line prompt
	Interactive bool
	// Color is the prompt foreground
	Color string
}

var _ ops.Confirmer = (*Prompter)(nil)

// NewPrompter returns a Prompter answering from in and writing to
// stderr, interactive when stdin and stderr are terminals
func NewPrompter(in *bufio.Reader, items int, promptColor string) *Prompter {
	return &Prompter{
		In:          in,
		Out:         os.Stderr,
		Items:       items,
		Interactive: IsTerminal(os.Stdin) && IsTerminal(os.Stderr),
		Color:       promptColor,
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Question builds the prompt text for a batch
func Question(items int, fromRecycleBin bool, mode types.DeleteMode) string {
	what := "this item"
	if items != 1 {
		what = fmt.Sprintf("these %d items", items)
	}
	switch {
	case fromRecycleBin:
		return fmt.Sprintf("Permanently delete %s from the recycle bin?", what)
	case mode == types.PermanentDelete:
		return fmt.Sprintf("Permanently delete %s?", what)
	default:
		return fmt.Sprintf("Move %s to the recycle bin?", what)
	}
}

func (p *Prompter) Confirm(ctx context.Context, fromRecycleBin bool, mode types.DeleteMode) (ops.Outcome, bool, error) {
	permanent := fromRecycleBin || mode == types.PermanentDelete
	question := Question(p.Items, fromRecycleBin, mode)
	if p.Interactive {
		return p.confirmInteractive(ctx, question, permanent, fromRecycleBin)
	}
	return p.confirmLine(question, permanent, fromRecycleBin)
}

func (p *Prompter) confirmInteractive(ctx context.Context, question string, permanent, locked bool) (ops.Outcome, bool, error) {
	m := New(question)
	m.Permanent = permanent
	m.Locked = locked
	if p.Color != "" {
		m.Styles.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Bold(true)
	}

	prog := tea.NewProgram(&m,
		tea.WithContext(ctx),
		tea.WithOutput(p.Out),
	)
	if _, err := prog.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ops.Cancel, permanent, ctx.Err()
		}
		return ops.Cancel, permanent, fmt.Errorf("confirm prompt: %w", err)
	}
	if !m.Selected().IsAccepted() {
		return ops.Cancel, m.Permanent, nil
	}
	return ops.Delete, m.Permanent, nil
}

// confirmLine reads one answer line: y accepts as shown, p accepts as a
// permanent delete, anything else cancels
func (p *Prompter) confirmLine(question string, permanent, locked bool) (ops.Outcome, bool, error) {
	choices := "[y/p/N]"
	if locked || permanent {
		choices = "[y/N]"
	}
	prompt := color.New(color.FgHiYellow, color.Bold).SprintFunc()
	fmt.Fprintf(p.Out, "%s %s ", prompt(question), choices)

	if p.In == nil {
		return ops.Cancel, permanent, nil
	}
	line, err := p.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ops.Cancel, permanent, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return ops.Delete, permanent, nil
	case "p", "permanent":
		return ops.Delete, true, nil
	default:
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.Out)
		}
		return ops.Cancel, permanent, nil
	}
}
