package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/babarot/fileops/internal/config"
	"github.com/babarot/fileops/internal/debug"
	"github.com/babarot/fileops/internal/env"
	"github.com/babarot/fileops/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type Option struct {
	Permanent bool   `short:"P" long:"permanent" description:"Delete permanently instead of recycling"`
	Yes       bool   `short:"y" long:"yes" description:"Skip the confirmation prompt"`
	Cwd       string `short:"C" long:"cwd" description:"Working directory" value-name:"DIR"`
	Config    string `long:"config" description:"Path to config file" default:""`

	Create CreateOption `group:"Create Options"`
	Bin    BinOption    `group:"Recycle Bin Options"`
	Meta   MetaOption   `group:"Meta Options"`
	Rm     RmOption     `group:"Compatible (rm) Options"`
}

type CreateOption struct {
	Kind string `long:"create" description:"Create an item in the working directory" value-name:"KIND" choice:"folder" choice:"text" choice:"bitmap"`
	Name string `long:"name" description:"Name for --create (default: New Folder, New Text Document, ...)"`
}

type BinOption struct {
	List    bool   `long:"list" description:"List recycle bin contents"`
	History bool   `long:"history" description:"Show the deletion audit trail"`
	Failed  bool   `long:"failed" description:"With --history, only show items that were left in place"`
	Prune   string `long:"prune" description:"Drop audit records older than AGE (e.g. 30d)" value-name:"AGE"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

// RmOption provides compatibility with rm command options
type RmOption struct {
	Interactive bool `short:"i" description:"(dummy) prompt before every removal"`
	Recursive   bool `short:"r" long:"recursive" description:"(dummy) remove directories and their contents recursively"`
	Recursive2  bool `short:"R" description:"(dummy) same as -r"`
	Force       bool `short:"f" long:"force" description:"(dummy) ignore nonexistent files, never prompt"`
	Directory   bool `short:"d" long:"dir" description:"(dummy) remove empty directories"`
	Verbose     bool `short:"v" long:"verbose" description:"explain what is being done"`
}

// ErrNoArguments is returned when a delete is asked for without items
var ErrNoArguments = errors.New("too few arguments")

type CLI struct {
	version Version
	option  Option
	config  *config.Config
	runID   string
	stdout  io.Writer
	stderr  io.Writer
	stdin   *bufio.Reader
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] [items...]"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	closeLog, err := setupLogger(cfg.Core.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer closeLog()

	defer slog.Debug("main function finished\n\n\n")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		runID:   runID(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		stdin:   bufio.NewReader(os.Stdin),
	}
	if err := c.Run(ctx, args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

// setupLogger installs the default logger. With logging disabled logs
// are discarded.
func setupLogger(cfg config.LoggingConfig) (func(), error) {
	nop := func() {}
	if !cfg.Enabled {
		_, err := log.New(log.UseOutput(io.Discard), log.AsDefault())
		return nop, err
	}

	var rw *log.RotateWriter
	logger, err := log.New(
		log.UseLevel(log.ParseLevel(cfg.Level)),
		log.UseReportTimestamp(true),
		log.UseOutputFunc(func() (io.Writer, error) {
			w, err := log.NewRotateWriter(env.FILEOPS_LOG_PATH, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles)
			rw = w
			return w, err
		}),
		log.AsDefault(),
	)
	if err != nil {
		// fall back to the discarding logger
		_, _ = log.New(log.UseOutput(io.Discard), log.AsDefault())
		return nop, err
	}
	slog.SetDefault(logger.With("run_id", runID()))
	return func() { rw.Close() }, nil
}

func (c CLI) Run(ctx context.Context, args []string) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(c.stdout, c.version.Print())
		return nil

	case c.option.Meta.Debug != "":
		return debug.Logs(c.stdout, env.FILEOPS_LOG_PATH, c.config.Core.Logging.Enabled, c.option.Meta.Debug == "live")

	case c.option.Bin.List:
		return c.List()

	case c.option.Bin.History, c.option.Bin.Prune != "":
		return c.History(ctx)

	case c.option.Create.Kind != "":
		return c.Create(ctx)

	default:
		return c.Delete(ctx, args)
	}
}

// workingDirectory is --cwd or the process directory
func (c CLI) workingDirectory() (string, error) {
	if c.option.Cwd != "" {
		return c.option.Cwd, nil
	}
	return os.Getwd()
}
