package log

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Options collects what New needs to build a logger. OutputFunc, when
// set, is tried before Writer.
type Options struct {
	Level      Level
	Prefix     string
	Timestamp  bool
	Writer     io.Writer
	OutputFunc func() (io.Writer, error)
	Styles     *Styles
	Default    bool
}

// Option mutates Options
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Level:  InfoLevel,
		Writer: os.Stderr,
		Styles: DefaultStyles(),
	}
}

func (o *Options) apply(opts []Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Options) handler() charmlog.Options {
	return charmlog.Options{
		Level:           o.Level,
		Prefix:          o.Prefix,
		ReportTimestamp: o.Timestamp,
	}
}

func UseLevel(l Level) Option { return func(o *Options) { o.Level = l } }

func UseOutput(w io.Writer) Option { return func(o *Options) { o.Writer = w } }

// UseOutputFunc defers opening the writer until New runs, so a failure
// can fall back to the plain writer.
func UseOutputFunc(f func() (io.Writer, error)) Option {
	return func(o *Options) { o.OutputFunc = f }
}

func UseReportTimestamp(report bool) Option { return func(o *Options) { o.Timestamp = report } }

func UsePrefix(prefix string) Option { return func(o *Options) { o.Prefix = prefix } }

// AsDefault installs the logger as the slog and charmlog default
func AsDefault() Option { return func(o *Options) { o.Default = true } }
