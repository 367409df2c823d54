// Package network connects the viewer to the actor feed server.
//
// A Client is owned by a single goroutine, normally the render loop, which
// calls Poll once per frame. Poll never waits for data that has not arrived.
package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/walkview/internal/logger"
	"github.com/Faultbox/walkview/internal/network/messages"
)

// Client errors.
var (
	ErrNotConnected  = errors.New("not connected")
	ErrBadFrame      = errors.New("bad frame")
	ErrFrameTooLarge = messages.ErrFrameTooLarge
)

// WatchCommand subscribes the connection to actor updates. It is a one-byte
// frame carrying 0x01.
var WatchCommand = []byte{0, 0, 0, 1, 1}

// pollWait is how long Poll lets a single read wait before it gives up.
const pollWait = time.Millisecond

// readChunk is the size of a single socket read.
const readChunk = 32 * 1024

// Client handles the actor feed connection.
type Client struct {
	conn    net.Conn
	log     *zap.Logger
	pending []byte
	chunk   []byte
}

// Dial connects to addr and sends WatchCommand.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	c := NewClient(conn)
	if err := c.SendRaw(WatchCommand); err != nil {
		c.Close()
		return nil, fmt.Errorf("sending watch command: %w", err)
	}

	c.log.Info("connected", zap.String("addr", addr))
	return c, nil
}

// NewClient wraps an established connection without sending anything.
func NewClient(conn net.Conn) *Client {
	return &Client{
		conn:  conn,
		log:   logger.Named("network"),
		chunk: make([]byte, readChunk),
	}
}

// Connected reports whether the connection is open.
func (c *Client) Connected() bool {
	return c != nil && c.conn != nil
}

// Close closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	if !c.Connected() {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.pending = nil
	return err
}

// Send writes msg as one frame.
func (c *Client) Send(msg messages.Message) error {
	if !c.Connected() {
		return ErrNotConnected
	}
	return messages.WriteFrame(c.conn, msg)
}

// SendRaw writes data to the connection unchanged.
func (c *Client) SendRaw(data []byte) error {
	if !c.Connected() {
		return ErrNotConnected
	}
	_, err := c.conn.Write(data)
	return err
}

// Poll returns every complete message that has already arrived. Partial
// frames stay buffered for the next call.
//
// A frame that cannot be decoded is skipped and reported with ErrBadFrame
// after the rest of the batch. An oversized header or a closed connection
// closes the client; the messages decoded before it are still returned.
func (c *Client) Poll() ([]messages.Message, error) {
	if !c.Connected() {
		return nil, ErrNotConnected
	}

	readErr := c.fill()

	var (
		msgs   []messages.Message
		badErr error
	)
	for {
		payload, n, err := messages.SplitFrame(c.pending)
		if err != nil {
			c.log.Error("dropping connection", zap.Error(err))
			c.Close()
			return msgs, err
		}
		if n == 0 {
			break
		}

		msg, err := messages.Decode(payload)
		c.pending = c.pending[n:]
		if err != nil {
			c.log.Warn("skipping frame", zap.Int("size", len(payload)), zap.Error(err))
			if badErr == nil {
				badErr = fmt.Errorf("%w: %w", ErrBadFrame, err)
			}
			continue
		}
		msgs = append(msgs, msg)
	}

	if len(c.pending) == 0 {
		c.pending = nil
	}

	if readErr != nil {
		c.log.Info("connection closed", zap.Error(readErr))
		c.Close()
		return msgs, readErr
	}
	return msgs, badErr
}

// fill drains whatever the socket has ready into pending.
func (c *Client) fill() error {
	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(pollWait)); err != nil {
			return err
		}
		n, err := c.conn.Read(c.chunk)
		c.pending = append(c.pending, c.chunk[:n]...)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return nil
			}
			return err
		}
		if n < len(c.chunk) {
			return nil
		}
	}
}
