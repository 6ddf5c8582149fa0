package elevate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"
)

// Server answers escalation requests. Each connection carries exactly one
// request and one response.
type Server struct {
	Executor Executor
	Metrics  *Metrics
	// ReadTimeout bounds how long a client may take to send its request
	ReadTimeout time.Duration
}

// NewServer returns a server executing requests with exec
func NewServer(exec Executor, metrics *Metrics) *Server {
	return &Server{
		Executor:    exec,
		Metrics:     metrics,
		ReadTimeout: 10 * time.Second,
	}
}

// Serve accepts connections on ln until ctx is done. It closes ln on
// return and waits for in-flight requests to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	stop := context.AfterFunc(ctx, func() {
		ln.Close()
	})
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			if s.ReadTimeout > 0 {
				_ = conn.SetReadDeadline(time.Now().Add(s.ReadTimeout))
			}
			if err := s.ServeConn(ctx, conn, conn); err != nil {
				slog.Warn("failed to serve elevation request", "error", err)
			}
		}()
	}
}

// ServeConn reads one request from r and writes one response to w. A
// malformed or rejected request is answered with Failure; the returned
// error only reports transport problems.
func (s *Server) ServeConn(ctx context.Context, r io.Reader, w io.Writer) error {
	var req Request
	if err := readMessage(r, &req); err != nil {
		_ = writeMessage(w, Response{Status: Failure})
		return err
	}
	return writeMessage(w, Response{Status: s.handle(ctx, req)})
}

func (s *Server) handle(ctx context.Context, req Request) Status {
	start := time.Now()
	status := Success

	if err := req.Validate(); err != nil {
		slog.Warn("rejected elevation request", "fileop", req.FileOp, "path", req.FilePath, "error", err)
		status = Failure
	} else if err := s.Executor.Execute(ctx, req.FileOp, req.FilePath); err != nil {
		slog.Error("elevated operation failed", "fileop", req.FileOp, "path", req.FilePath, "error", err)
		status = Failure
	} else {
		slog.Info("elevated operation done", "fileop", req.FileOp, "path", req.FilePath)
	}

	s.Metrics.observe(req.FileOp, status, time.Since(start))
	return status
}
