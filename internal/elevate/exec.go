package elevate

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"

	"al.essio.dev/pkg/shellescape"
)

// ExecClient starts the helper once per request through a privilege
// launcher such as pkexec. The request goes to the helper's stdin and
// the response is read from its stdout.
type ExecClient struct {
	// Launcher is the privilege launcher, e.g. "pkexec" or "sudo".
	// Empty runs the helper directly.
	Launcher string
	// Helper is the helper binary path
	Helper string
	// Args are extra helper arguments placed before --stdio
	Args []string
}

// NewExecClient returns a client that runs helper through launcher
func NewExecClient(launcher, helper string, args ...string) *ExecClient {
	return &ExecClient{Launcher: launcher, Helper: helper, Args: args}
}

func (c *ExecClient) command() []string {
	argv := make([]string, 0, len(c.Args)+3)
	if c.Launcher != "" {
		argv = append(argv, c.Launcher)
	}
	argv = append(argv, c.Helper)
	argv = append(argv, c.Args...)
	return append(argv, "--stdio")
}

func (c *ExecClient) Escalate(ctx context.Context, op Operation, path string) bool {
	argv := c.command()
	slog.Debug("launching elevated helper", "command", shellescape.QuoteCommand(argv))

	var stdin, stdout bytes.Buffer
	if err := writeMessage(&stdin, NewRequest(op, path)); err != nil {
		slog.Error("failed to encode elevation request", "error", err)
		return false
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = &stdin
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		slog.Error("elevated helper failed", "command", shellescape.QuoteCommand(argv), "error", err)
		return false
	}

	var resp Response
	if err := readMessage(&stdout, &resp); err != nil {
		slog.Error("elevated helper sent no valid response", "error", err)
		return false
	}
	return resp.Status == Success
}
