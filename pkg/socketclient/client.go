package socketclient

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"monkframe.backend/pkg/logger"
)

const (
	defaultMaxRetries = 5
	defaultRetryDelay = time.Second
)

// ErrClosed is returned when operating on a closed client.
var ErrClosed = errors.New("socket client closed")

// ErrGaveUp is reported through OnState after reconnection attempts are
// exhausted.
var ErrGaveUp = errors.New("reconnect attempts exhausted")

// Handler consumes a pushed event.
type Handler func(data json.RawMessage)

// Options configures a Client.
type Options struct {
	// URL is the ws:// or wss:// endpoint.
	URL string
	// Token authenticates the setup frame.
	Token string
	// MaxRetries bounds reconnection attempts per outage. Zero means the
	// default of 5.
	MaxRetries int
	// RetryDelay is the pause between attempts. Zero means one second.
	RetryDelay time.Duration
	// OnState observes connectivity transitions. err is nil on connect and
	// on a deliberate close, ErrGaveUp when reconnection is abandoned.
	OnState func(connected bool, err error)
}

// event mirrors the server's wire frame.
type event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

type setupFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// dial is indirected for tests
var dialWebsocket = func(ctx context.Context, url string) (*websocket.Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, err
}

// Client maintains one server connection, re-dialing on failure. A single
// connection carries all rooms the token grants, so there is never more
// than one socket per client.
type Client struct {
	opts Options

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[string][]Handler
	closed   bool

	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a disconnected client.
func New(opts Options) *Client {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	return &Client{
		opts:     opts,
		handlers: make(map[string][]Handler),
		done:     make(chan struct{}),
	}
}

// On registers a handler for a named event. Handlers run on the read
// goroutine and must not block.
func (c *Client) On(name string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[name] = append(c.handlers[name], h)
}

// Connect dials the server, authenticates, and starts the read loop. It
// returns once the initial connection is established; later outages are
// handled by the reconnect policy.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.mu.Unlock()

	conn, err := c.dialAndSetup(ctx)
	if err != nil {
		return err
	}

	c.setConn(conn)
	c.notifyState(true, nil)

	c.wg.Add(1)
	go c.readLoop(conn)
	return nil
}

// Close tears the connection down and stops reconnecting.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	close(c.done)
	if conn != nil {
		_ = conn.Close()
	}
	c.wg.Wait()
	return nil
}

func (c *Client) dialAndSetup(ctx context.Context) (*websocket.Conn, error) {
	conn, err := dialWebsocket(ctx, c.opts.URL)
	if err != nil {
		return nil, err
	}

	if err := conn.WriteJSON(setupFrame{Type: "setup", Token: c.opts.Token}); err != nil {
		_ = conn.Close()
		return nil, err
	}

	// The server acknowledges a valid setup with a connected event
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var ack event
	if err := conn.ReadJSON(&ack); err != nil {
		_ = conn.Close()
		return nil, err
	}
	_ = conn.SetReadDeadline(time.Time{})
	if ack.Name != "connected" {
		_ = conn.Close()
		return nil, errors.New("server rejected setup")
	}

	return conn, nil
}

func (c *Client) readLoop(conn *websocket.Conn) {
	defer c.wg.Done()

	for {
		var ev event
		if err := conn.ReadJSON(&ev); err != nil {
			if c.isClosed() {
				return
			}
			c.notifyState(false, nil)
			if !c.reconnect() {
				return
			}
			c.mu.Lock()
			conn = c.conn
			c.mu.Unlock()
			continue
		}
		c.dispatch(ev)
	}
}

// reconnect re-dials with a fixed pause between attempts. It reports false
// once MaxRetries attempts have failed or the client is closed.
func (c *Client) reconnect() bool {
	for attempt := 1; attempt <= c.opts.MaxRetries; attempt++ {
		select {
		case <-c.done:
			return false
		case <-time.After(c.opts.RetryDelay):
		}

		conn, err := c.dialAndSetup(context.Background())
		if err != nil {
			logger.Warn(context.Background(), "Socket reconnect failed",
				zap.Int("attempt", attempt),
				zap.Int("max", c.opts.MaxRetries),
				zap.Error(err))
			continue
		}

		c.setConn(conn)
		c.notifyState(true, nil)
		return true
	}

	c.notifyState(false, ErrGaveUp)
	return false
}

func (c *Client) dispatch(ev event) {
	c.mu.Lock()
	handlers := append([]Handler(nil), c.handlers[ev.Name]...)
	c.mu.Unlock()

	for _, h := range handlers {
		h(ev.Data)
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn = conn
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) notifyState(connected bool, err error) {
	if c.opts.OnState != nil {
		c.opts.OnState(connected, err)
	}
}
