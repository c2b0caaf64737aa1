// Package commentary streams throttled JPEG board snapshots to an
// external AI commentary service over WebSocket. The link is strictly
// best-effort: the game never waits on it, never reads gameplay data
// back from it, and treats every failure as a status change rather
// than an error.
package commentary

import (
	"bytes"
	"image"
	"image/jpeg"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Status describes the link state, surfaced to the HUD.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	StatusError
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	case StatusClosed:
		return "closed"
	default:
		return "disconnected"
	}
}

// StatusFunc receives link status changes. Called from the client's
// background goroutine; implementations must not block.
type StatusFunc func(Status)

const (
	dialTimeout   = 5 * time.Second
	writeTimeout  = 2 * time.Second
	pingInterval  = 25 * time.Second
	jpegQuality   = 70
	sendQueueSize = 2
)

// Client is a fire-and-forget WebSocket snapshot sender. Connect and
// all sends happen on a background goroutine; SendSnapshot from the
// tick loop only enqueues (or drops) and returns immediately.
type Client struct {
	url      string
	onStatus StatusFunc
	logger   *log.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	queue  chan []byte
	done   chan struct{}
	closed bool
}

// New creates a client for the given ws:// or wss:// URL. onStatus may
// be nil.
func New(url string, onStatus StatusFunc, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		url:      url,
		onStatus: onStatus,
		logger:   logger,
		queue:    make(chan []byte, sendQueueSize),
		done:     make(chan struct{}),
	}
}

// Connect starts the background dial and send loop. Non-blocking.
func (c *Client) Connect() {
	go c.run()
}

func (c *Client) setStatus(s Status) {
	if c.onStatus != nil {
		c.onStatus(s)
	}
}

func (c *Client) run() {
	c.setStatus(StatusConnecting)

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		c.logger.Warn("commentary: dial failed", "url", c.url, "error", err)
		c.setStatus(StatusError)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.mu.Unlock()

	c.setStatus(StatusConnected)

	// Discard inbound frames; the service produces nothing the game
	// depends on, but reading keeps pong handling alive.
	go func() {
		for {
			if _, _, rerr := conn.ReadMessage(); rerr != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case payload := <-c.queue:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if werr := conn.WriteMessage(websocket.BinaryMessage, payload); werr != nil {
				c.logger.Warn("commentary: snapshot write failed", "error", werr)
				c.setStatus(StatusError)
				conn.Close()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if werr := conn.WriteMessage(websocket.PingMessage, nil); werr != nil {
				c.setStatus(StatusError)
				conn.Close()
				return
			}
		case <-c.done:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close()
			c.setStatus(StatusClosed)
			return
		}
	}
}

// SendSnapshot JPEG-encodes the image and enqueues it. If the link is
// down or the queue is full the snapshot is dropped silently; the tick
// loop must never stall here.
func (c *Client) SendSnapshot(img image.Image) {
	if img == nil {
		return
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		c.logger.Warn("commentary: jpeg encode failed", "error", err)
		return
	}

	select {
	case c.queue <- buf.Bytes():
	default:
		// Queue full: drop, the next snapshot is two beats away anyway
	}
}

// Close tears the link down. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}
