package notify

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/qsubmit/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultTimeout bounds the initial connection when none is given.
const DefaultTimeout = 10 * time.Second

// SocketIO emits events to a socket.io server over a websocket.
type SocketIO struct {
	io *socket.Socket
}

// DialSocketIO connects to rawURL and waits for the connection to be
// established or for timeout to pass. The URL path selects the socket.io
// endpoint; namespace defaults to "/".
func DialSocketIO(ctx context.Context, rawURL, namespace string, timeout time.Duration) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("notifier", "socketio", "url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse notify URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("notify URL %q must include scheme and host", rawURL)
	}
	if namespace == "" {
		namespace = "/"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	connected := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Debug("Notifier connected.", "sid", io.Id())
		select {
		case connected <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("socket.io connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connected <- err:
		default:
		}
	})

	io.Connect()

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	select {
	case <-opCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out connecting to %s", rawURL)
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("failed to connect to %s: %w", rawURL, err)
		}
	}
	return &SocketIO{io: io}, nil
}

// Notify emits ev as a job_submitted event. It fails when the connection has
// been lost.
func (s *SocketIO) Notify(ctx context.Context, ev Event) error {
	if !s.io.Connected() {
		return fmt.Errorf("cannot emit %s for job %s: socket.io client is not connected", EventJobSubmitted, ev.JobName)
	}
	ctxlog.FromContext(ctx).Debug("Emitting event.", "event", EventJobSubmitted, "job", ev.JobName, "job_id", ev.JobID)
	if err := s.io.Emit(EventJobSubmitted, ev.payload()); err != nil {
		return fmt.Errorf("failed to emit %s for job %s: %w", EventJobSubmitted, ev.JobName, err)
	}
	return nil
}

// Close disconnects from the server.
func (s *SocketIO) Close() error {
	s.io.Disconnect()
	return nil
}
