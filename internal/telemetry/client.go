package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/fieldview/internal/logging"
)

// ErrClosed is returned by Run and Publish once the client is closed.
var ErrClosed = errors.New("telemetry client closed")

const (
	// Time allowed to write a message to the server.
	writeWait = 10 * time.Second
	// Maximum message size allowed from the server.
	maxMessageSize = 8192
	// Time allowed to read the next pong message from the server.
	pongWait = 60 * time.Second
	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	outgoingQueue = 64
)

// Message types on the wire.
const (
	TypeSubscribe = "subscribe"
	TypePublish   = "publish"
	TypeValue     = "value"
)

// Message is the JSON frame exchanged with the topic server. Value updates
// from the server carry Topic and Value; Type may be omitted for them.
type Message struct {
	Type   string   `json:"type,omitempty"`
	Topic  string   `json:"topic,omitempty"`
	Value  string   `json:"value,omitempty"`
	Topics []string `json:"topics,omitempty"`
}

// ClientConfig configures a Client.
type ClientConfig struct {
	URL               string
	ReconnectInterval time.Duration
}

// Client keeps a websocket session to the topic server alive, feeding
// value updates into a Store and sending published values.
type Client struct {
	cfg    ClientConfig
	store  *Store
	logger *zap.Logger
	dialer *websocket.Dialer

	outgoing  chan Message
	closed    chan struct{}
	closeOnce sync.Once
}

// NewClient creates a client for the server at cfg.URL. Nothing is dialed
// until Run.
func NewClient(cfg ClientConfig, store *Store, logger *zap.Logger) *Client {
	if cfg.ReconnectInterval <= 0 {
		cfg.ReconnectInterval = time.Second
	}
	return &Client{
		cfg:      cfg,
		store:    store,
		logger:   logging.OrNop(logger).With(zap.String("url", cfg.URL)),
		dialer:   &websocket.Dialer{HandshakeTimeout: 5 * time.Second},
		outgoing: make(chan Message, outgoingQueue),
		closed:   make(chan struct{}),
	}
}

// Publish queues value for topic. Values queued while disconnected are sent
// after the next connect.
func (c *Client) Publish(topic, value string) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	select {
	case c.outgoing <- Message{Type: TypePublish, Topic: topic, Value: value}:
		return nil
	default:
		return fmt.Errorf("publish %s: outgoing queue full", topic)
	}
}

// Close stops Run. It is safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// Run connects and reconnects until ctx is done or the client is closed.
// It returns ctx.Err() or ErrClosed.
func (c *Client) Run(ctx context.Context) error {
	for {
		err := c.session(ctx)
		c.store.SetConnected(false)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.closed:
			return ErrClosed
		default:
		}
		c.logger.Warn("telemetry disconnected", zap.Error(err), zap.Duration("retry_in", c.cfg.ReconnectInterval))

		timer := time.NewTimer(c.cfg.ReconnectInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-c.closed:
			timer.Stop()
			return ErrClosed
		case <-timer.C:
		}
	}
}

// session runs one connection until it fails or is stopped.
func (c *Client) session(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}
	defer conn.Close()

	subscribe := Message{Type: TypeSubscribe, Topics: c.store.Topics().List()}
	if err := c.write(conn, subscribe); err != nil {
		return err
	}
	c.store.SetConnected(true)
	c.logger.Info("telemetry connected")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.readLoop(conn) })
	g.Go(func() error { return c.writeLoop(gctx, conn) })
	return g.Wait()
}

func (c *Client) readLoop(conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("dropping malformed message", zap.Error(err))
			continue
		}
		if msg.Type != "" && msg.Type != TypeValue {
			c.logger.Debug("ignoring message", zap.String("type", msg.Type))
			continue
		}
		if err := c.store.Set(msg.Topic, msg.Value); err != nil {
			c.logger.Warn("dropping topic value", zap.String("topic", msg.Topic), zap.Error(err))
		}
	}
}

// writeLoop sends queued messages and pings. It owns closing the
// connection, which also ends readLoop.
func (c *Client) writeLoop(ctx context.Context, conn *websocket.Conn) error {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg := <-c.outgoing:
			if err := c.write(conn, msg); err != nil {
				return err
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		case <-c.closed:
			c.closeGracefully(conn)
			return ErrClosed
		case <-ctx.Done():
			c.closeGracefully(conn)
			return ctx.Err()
		}
	}
}

func (c *Client) write(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write %s: %w", msg.Type, err)
	}
	return nil
}

func (c *Client) closeGracefully(conn *websocket.Conn) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
