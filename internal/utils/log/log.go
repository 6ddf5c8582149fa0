package log

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	charmlog "github.com/charmbracelet/log"
)

var (
	defaultStylesOnce sync.Once
	defaultStyles     atomic.Pointer[Styles]
	defaultLogger     atomic.Pointer[slog.Logger]
)

func initializeStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for _, ls := range levelStyles {
		levelStr := strings.ToUpper(LogLevelString(ls.level))
		if len(levelStr) < ls.maxWidth {
			levelStr = levelStr + strings.Repeat(" ", ls.maxWidth-len(levelStr))
		}
		styles.Levels[ls.level] = ls.style.SetString(levelStr)
	}
	return styles
}

// DefaultStyles returns the initialized styles with all levels including Important
func DefaultStyles() *Styles {
	defaultStylesOnce.Do(func() {
		defaultStyles.Store(initializeStyles())
	})
	return defaultStyles.Load()
}

// New creates a new logger with the given options. When the output
// function fails the logger falls back to the configured writer and the
// error is returned alongside it.
func New(opts ...Option) (*slog.Logger, error) {
	o := defaultOptions().apply(opts)

	var outErr error
	if o.OutputFunc != nil {
		w, err := o.OutputFunc()
		if err == nil {
			o.Writer = w
		}
		outErr = err
	}

	handler := charmlog.NewWithOptions(o.Writer, o.handler())
	handler.SetStyles(o.Styles)

	logger := slog.New(handler)
	if o.Default {
		charmlog.SetDefault(handler)
		slog.SetDefault(logger)
		defaultLogger.Store(logger)
	}
	return logger, outErr
}

// Default returns the logger installed with AsDefault, or slog's default
func Default() *slog.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Important logs above warn so the message survives a quiet level
func Important(msg string, args ...any) {
	if h, ok := Default().Handler().(*charmlog.Logger); ok {
		h.Log(ImportantLevel, msg, args...)
		return
	}
	Default().Warn(msg, args...)
}
