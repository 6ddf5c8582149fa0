package debug

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

// ErrLoggingDisabled is returned when there is nothing to show because
// logging was never turned on
var ErrLoggingDisabled = errors.New("logging is not enabled in config: set core.logging.enabled to true")

// Logs prints the log file at path. In live mode it follows new entries
// from the end of the file while stdout is a terminal.
func Logs(w io.Writer, path string, enabled, live bool) error {
	if live {
		return tailLiveLogs(w, path, enabled)
	}
	return showExistingLogs(w, path, enabled)
}

func tailLiveLogs(w io.Writer, path string, enabled bool) error {
	if !enabled {
		return ErrLoggingDisabled
	}

	follow := isatty.IsTerminal(os.Stdout.Fd())
	t, err := tail.TailFile(path, tail.Config{
		ReOpen: follow,
		Follow: follow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	})
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: try running some commands with logging enabled")
		}
		return err
	}
	slog.Info("live tail started", "path", path)

	for line := range t.Lines {
		fmt.Fprintln(w, line.Text)
	}
	return nil
}

func showExistingLogs(w io.Writer, path string, enabled bool) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		if !enabled {
			return ErrLoggingDisabled
		}
		return fmt.Errorf("no log file exists yet: try running some commands first")
	}
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
	return scanner.Err()
}
