// Command fileops-helper performs deletes that need elevated rights on
// behalf of fileops. It answers one JSON request per connection on a
// unix socket, or a single request on stdin/stdout with --stdio.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/babarot/fileops/internal/config"
	"github.com/babarot/fileops/internal/elevate"
	"github.com/babarot/fileops/internal/recyclebin"
	"github.com/babarot/fileops/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const appName = "fileops-helper"

type Option struct {
	Socket      string `long:"socket" description:"Unix socket to listen on (default: core.elevation.socket)" value-name:"PATH"`
	SocketMode  string `long:"socket-mode" description:"Permission bits of the socket" default:"0660"`
	Stdio       bool   `long:"stdio" description:"Serve a single request on stdin/stdout"`
	MetricsAddr string `long:"metrics-addr" description:"Expose prometheus metrics on ADDR" value-name:"ADDR"`
	RecycleBin  string `long:"recycle-bin" description:"Recycle bin root (default: core.recycle_bin.path)" value-name:"DIR"`
	Config      string `long:"config" description:"Path to config file" default:""`
	Debug       bool   `long:"debug" description:"Log at debug level"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run() error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = appName
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	level := log.InfoLevel
	if opt.Debug {
		level = log.DebugLevel
	}
	// stdout carries responses in --stdio mode, so logs go to stderr
	logger, _ := log.New(
		log.UseOutput(os.Stderr),
		log.UseLevel(level),
		log.UseReportTimestamp(true),
		log.UsePrefix(appName),
		log.AsDefault(),
	)

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}
	binRoot := opt.RecycleBin
	if binRoot == "" {
		binRoot = cfg.RecycleBinPath()
	}
	bin, err := recyclebin.New(binRoot)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	server := elevate.NewServer(&elevate.LocalExecutor{Bin: bin}, elevate.NewMetrics(reg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opt.Stdio {
		logger.Debug("serving one request on stdio", "recycle_bin", bin.Root())
		return server.ServeConn(ctx, os.Stdin, os.Stdout)
	}

	socket := opt.Socket
	if socket == "" {
		socket = cfg.HelperSocket()
	}
	ln, err := listen(socket, opt.SocketMode)
	if err != nil {
		return err
	}
	defer os.Remove(socket)
	logger.Info("listening", "socket", socket, "recycle_bin", bin.Root())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(ctx, ln)
	})
	if opt.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              opt.MetricsAddr,
			Handler:           metricsMux(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("serving metrics", "addr", opt.MetricsAddr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}
	return g.Wait()
}

// listen opens the unix socket, replacing a stale one
func listen(path, mode string) (net.Listener, error) {
	perm, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid socket mode %q: %w", mode, err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, os.FileMode(perm)); err != nil {
		ln.Close()
		return nil, err
	}
	return ln, nil
}

func metricsMux(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}
