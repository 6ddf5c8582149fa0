package elevate

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// SocketClient talks to a running helper over a unix socket
type SocketClient struct {
	Path   string
	Dialer net.Dialer
}

// NewSocketClient returns a client for the helper listening at path
func NewSocketClient(path string) *SocketClient {
	return &SocketClient{Path: path}
}

func (c *SocketClient) Escalate(ctx context.Context, op Operation, path string) bool {
	resp, err := c.roundTrip(ctx, NewRequest(op, path))
	if err != nil {
		slog.Error("elevated helper unreachable", "socket", c.Path, "fileop", op, "path", path, "error", err)
		return false
	}
	slog.Debug("elevated helper answered", "fileop", op, "path", path, "status", resp.Status)
	return resp.Status == Success
}

func (c *SocketClient) roundTrip(ctx context.Context, req Request) (*Response, error) {
	conn, err := c.Dialer.DialContext(ctx, "unix", c.Path)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	// unblock reads when the caller gives up
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := writeMessage(conn, req); err != nil {
		return nil, err
	}
	var resp Response
	if err := readMessage(conn, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
