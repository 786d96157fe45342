// Package client connects to the game server over a websocket and turns the
// connection's lifecycle into an ordered stream of signals.
package client

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"nhooyr.io/websocket"

	"github.com/vovakirdan/thirteen/internal/protocol"
)

var (
	// ErrNotConnected is returned by Send when no connection is open.
	ErrNotConnected = errors.New("client: not connected")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("client: closed")
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithSubprotocol overrides the websocket subprotocol.
func WithSubprotocol(p string) Option {
	return func(c *Client) {
		c.subprotocol = p
	}
}

// WithReadLimit caps the size of a single inbound frame.
func WithReadLimit(n int64) Option {
	return func(c *Client) {
		c.readLimit = n
	}
}

// Client owns at most one websocket connection at a time.
type Client struct {
	// connectMu serializes Connect. mu guards the fields below it and is
	// never held across network I/O.
	connectMu   sync.Mutex
	mu          sync.Mutex
	conn        *websocket.Conn
	connID      string
	readerDone  chan struct{}
	closed      bool
	queue       *queue
	done        chan struct{}
	logger      *log.Logger
	subprotocol string
	readLimit   int64
}

// New returns an idle client.
func New(opts ...Option) *Client {
	c := &Client{
		queue:       newQueue(),
		done:        make(chan struct{}),
		subprotocol: protocol.Subprotocol,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Signals returns the ordered signal stream. It is closed after Close once
// every queued signal was delivered.
func (c *Client) Signals() <-chan Signal {
	return c.queue.out
}

// Done is closed by Close.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Connect replaces the current connection. The old connection's Closed
// signal is queued before the new connection's Connecting signal.
func (c *Client) Connect(ctx context.Context, url string) error {
	c.connectMu.Lock()
	defer c.connectMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	old := c.detachLocked()
	c.mu.Unlock()
	c.drop(old)

	id := uuid.NewString()
	c.queue.push(Connecting{ConnID: id})

	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		Subprotocols: []string{c.subprotocol},
	})
	if err != nil {
		err = errors.Wrapf(err, "dial %s", url)
		c.logger.Error("connect failed", "conn", id, "err", err)
		c.queue.push(Failed{ConnID: id, Err: err})
		c.queue.push(Closed{ConnID: id, Err: err})
		return err
	}
	if c.readLimit > 0 {
		conn.SetReadLimit(c.readLimit)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
		return ErrClosed
	}
	defer c.mu.Unlock()
	c.conn = conn
	c.connID = id
	c.readerDone = make(chan struct{})
	c.logger.Info("connected", "conn", id, "url", url, "subprotocol", conn.Subprotocol())
	c.queue.push(Opened{ConnID: id})

	go c.readLoop(id, conn, c.readerDone)
	return nil
}

// Send encodes r and writes it to the open connection.
func (c *Client) Send(ctx context.Context, r protocol.Request) error {
	c.mu.Lock()
	conn, id := c.conn, c.connID
	c.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}

	frame, err := protocol.Encode(r)
	if err != nil {
		return errors.Wrapf(err, "encode %s", r.Kind())
	}
	if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
		err = errors.Wrapf(err, "write %s", r.Kind())
		c.queue.push(Failed{ConnID: id, Err: err})
		return err
	}
	c.logger.Debug("sent", "conn", id, "kind", r.Kind())
	return nil
}

// Close disconnects and stops the signal stream.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	old := c.detachLocked()
	c.mu.Unlock()

	c.drop(old)
	c.queue.close()
	close(c.done)
	return nil
}

// attached is a connection together with its reader.
type attached struct {
	conn       *websocket.Conn
	id         string
	readerDone chan struct{}
}

// detachLocked clears the current connection and returns it for drop.
func (c *Client) detachLocked() attached {
	a := attached{conn: c.conn, id: c.connID, readerDone: c.readerDone}
	c.conn = nil
	c.connID = ""
	c.readerDone = nil
	return a
}

// drop closes a detached connection and waits until its Closed signal is queued.
func (c *Client) drop(a attached) {
	if a.conn == nil {
		return
	}
	if err := a.conn.Close(websocket.StatusNormalClosure, ""); err != nil {
		c.logger.Debug("close", "conn", a.id, "err", err)
	}
	<-a.readerDone
}

func (c *Client) readLoop(id string, conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		_, data, err := conn.Read(context.Background())
		if err != nil {
			c.queue.push(Closed{ConnID: id, Err: closeErr(err)})
			c.logger.Info("connection closed", "conn", id, "status", websocket.CloseStatus(err))
			return
		}

		ev, err := protocol.Decode(data)
		if err != nil {
			c.logger.Debug("dropped frame", "conn", id, "err", err)
			continue
		}
		c.queue.push(Message{ConnID: id, Event: ev})
	}
}

// closeErr hides the error of a normal closure.
func closeErr(err error) error {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return nil
	}
	return errors.Wrap(err, "read")
}
