package elevate

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type call struct {
	op   Operation
	path string
}

// fakeExecutor records calls and fails when err is set
type fakeExecutor struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (f *fakeExecutor) Execute(_ context.Context, op Operation, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op, path})
	return f.err
}

func serveOne(t *testing.T, s *Server, in string) string {
	t.Helper()
	var out bytes.Buffer
	_ = s.ServeConn(context.Background(), strings.NewReader(in), &out)
	return strings.TrimSpace(out.String())
}

func TestServeConn(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewServer(exec, NewMetrics(nil))

	got := serveOne(t, s, `{"Arguments":"FileOperation","fileop":"DeleteItem","filepath":"/tmp/x"}`)
	if got != `{"status":"Success"}` {
		t.Errorf("got %s", got)
	}
	if len(exec.calls) != 1 || exec.calls[0] != (call{DeleteItem, "/tmp/x"}) {
		t.Errorf("calls = %v", exec.calls)
	}
}

func TestServeConnFailures(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"garbage", "not json", nil},
		{"wrong arguments", `{"Arguments":"Other","fileop":"DeleteItem","filepath":"/tmp/x"}`, nil},
		{"unknown op", `{"Arguments":"FileOperation","fileop":"Chmod","filepath":"/tmp/x"}`, nil},
		{"relative", `{"Arguments":"FileOperation","fileop":"DeleteItem","filepath":"x"}`, nil},
		{"executor fails", `{"Arguments":"FileOperation","fileop":"MoveToBin","filepath":"/tmp/x"}`, errors.New("denied")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{err: tt.err}
			s := NewServer(exec, nil)
			if got := serveOne(t, s, tt.in); got != `{"status":"Failure"}` {
				t.Errorf("got %s", got)
			}
			if tt.err == nil && len(exec.calls) != 0 {
				t.Errorf("rejected request must not execute, calls = %v", exec.calls)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewServer(&fakeExecutor{}, NewMetrics(reg))

	serveOne(t, s, `{"Arguments":"FileOperation","fileop":"MoveToBin","filepath":"/tmp/a"}`)
	serveOne(t, s, `{"Arguments":"FileOperation","fileop":"MoveToBin","filepath":"relative"}`)
	serveOne(t, s, `{"Arguments":"FileOperation","fileop":"Bogus","filepath":"/tmp/a"}`)

	if got := testutil.ToFloat64(s.Metrics.Requests.WithLabelValues("MoveToBin", "Success")); got != 1 {
		t.Errorf("success count = %v", got)
	}
	if got := testutil.ToFloat64(s.Metrics.Requests.WithLabelValues("MoveToBin", "Failure")); got != 1 {
		t.Errorf("failure count = %v", got)
	}
	if got := testutil.ToFloat64(s.Metrics.Requests.WithLabelValues("unknown", "Failure")); got != 1 {
		t.Errorf("unknown count = %v", got)
	}
}

func socketPath(t *testing.T) string {
	t.Helper()
	// unix socket paths are length limited, keep it short
	dir, err := os.MkdirTemp("", "fo")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "h.sock")
}

func TestSocketRoundTrip(t *testing.T) {
	path := socketPath(t)
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}

	exec := &fakeExecutor{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(exec, nil).Serve(ctx, ln) }()

	client := NewSocketClient(path)
	if !client.Escalate(context.Background(), MoveToBin, "/tmp/a") {
		t.Error("expected success")
	}
	if client.Escalate(context.Background(), MoveToBin, "relative") {
		t.Error("expected failure for relative path")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}

	if client.Escalate(context.Background(), MoveToBin, "/tmp/a") {
		t.Error("expected failure once the helper is gone")
	}
}

func TestWithTimeout(t *testing.T) {
	block := EscalatorFunc(func(ctx context.Context, _ Operation, _ string) bool {
		<-ctx.Done()
		return true
	})
	if WithTimeout(block, 20*time.Millisecond).Escalate(context.Background(), DeleteItem, "/tmp/a") {
		t.Error("timed out escalation must report false")
	}

	ok := EscalatorFunc(func(context.Context, Operation, string) bool { return true })
	if !WithTimeout(ok, time.Second).Escalate(context.Background(), DeleteItem, "/tmp/a") {
		t.Error("fast escalation must pass through")
	}
	if WithTimeout(ok, 0) == nil {
		t.Error("zero timeout must return the escalator")
	}
}

func TestLocalExecutor(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "tree")
	if err := os.MkdirAll(filepath.Join(target, "x"), 0755); err != nil {
		t.Fatal(err)
	}

	e := &LocalExecutor{}
	if err := e.Execute(context.Background(), DeleteItem, target); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("target should be removed")
	}
	if err := e.Execute(context.Background(), DeleteItem, target); !os.IsNotExist(err) {
		t.Errorf("missing target: got %v", err)
	}
	if err := os.WriteFile(target, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := e.Execute(context.Background(), MoveToBin, target); err == nil {
		t.Error("MoveToBin without a bin must fail")
	}
}
