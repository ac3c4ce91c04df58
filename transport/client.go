// Package transport implements the Salto PC interface's half-duplex
// request/response transport: the ENQ/ACK/NAK handshake, STX/ETX/LRC
// framing, retry-on-NAK state machine and debug tracing.
package transport

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/saltodrv/saltopms/wire"
)

// Client is the go implementation of a Salto PC interface master.
// Generally the intended use is as follows:
//
//	c := transport.Client{Config: transport.Config{Endpoint: "192.168.1.120:8090"}}
//	res, err := c.Send(ctx, command.Checkout("Room 1"))
type Client struct {
	Config
}

// IsReady sends a bare ENQ and reports whether the peer answered ACK.
func (c *Client) IsReady(ctx context.Context) (bool, error) {
	res, err := c.sendRaw(ctx, []byte{wire.ENQ})
	if err != nil {
		return false, err
	}
	return res.IsAck(), nil
}

// Send frames message and dispatches it as a single logical request
// over a fresh connection, following the handshake state machine.
func (c *Client) Send(ctx context.Context, message wire.Message) (wire.Response, error) {
	timer := newRequestTimer(c.metrics(), commandNameOf(message))
	defer timer()

	cn, err := dial(ctx, &c.Config)
	if err != nil {
		c.metrics().ConnectionAttempts.Inc()
		c.metrics().ConnectionFailures.Inc()
		return wire.Response{}, err
	}
	c.metrics().ConnectionAttempts.Inc()
	defer cn.close()

	return c.sendOn(ctx, cn, c.frame(message))
}

// Repeat sends the bare "WR" repeat-last-record request over a fresh
// connection. The peer rejects it with error code "WR" unless a prior
// WF/WN request was made on the same connection; the audit fetcher
// never calls this.
func (c *Client) Repeat(ctx context.Context) (wire.Response, error) {
	return c.Send(ctx, wire.FromStrings("WR"))
}

// frame wraps a Message in the STX/payload/ETX/LRC envelope.
func (c *Client) frame(message wire.Message) []byte {
	payload := wire.Encode(message)
	var lrc byte
	if c.LRCSkip {
		lrc = wire.LRCSkip
	} else {
		lrc = wire.LRC(payload)
	}
	out := make([]byte, 0, len(payload)+3)
	out = append(out, wire.STX)
	out = append(out, payload...)
	out = append(out, wire.ETX)
	out = append(out, lrc)
	return out
}

// sendRaw dispatches a raw request (used for the bare ENQ) over a
// fresh connection.
func (c *Client) sendRaw(ctx context.Context, request []byte) (wire.Response, error) {
	cn, err := dial(ctx, &c.Config)
	if err != nil {
		c.metrics().ConnectionAttempts.Inc()
		c.metrics().ConnectionFailures.Inc()
		return wire.Response{}, err
	}
	c.metrics().ConnectionAttempts.Inc()
	defer cn.close()
	return c.sendOn(ctx, cn, request)
}

// sendOn runs the handshake state machine (S0 Send / S1 AckWait / S2
// ReadFrame) for one outbound request over an already-open connection,
// sending it at most MaxRetries times in all: a NAK before the last
// attempt triggers AwaitReady polling and a resend.
func (c *Client) sendOn(ctx context.Context, cn *conn, request []byte) (wire.Response, error) {
	isBareENQ := len(request) == 1 && request[0] == wire.ENQ

	for attempt := 1; ; attempt++ {
		debug(c.Logger, c.Endpoint, "out", request)
		if err := cn.writeAll(request); err != nil {
			return wire.Response{}, err
		}

		ack, err := cn.readByte()
		if err != nil {
			return wire.Response{}, err
		}
		debug(c.Logger, c.Endpoint, "in", []byte{ack})

		switch {
		case isBareENQ && (ack == wire.ACK || ack == wire.NAK):
			if ack == wire.ACK {
				return wire.Response{Kind: wire.KindAck}, nil
			}
			return wire.Response{Kind: wire.KindNak}, nil

		case ack == wire.ACK:
			return c.readFrame(cn)

		case ack == wire.NAK:
			if attempt >= c.maxRetries() {
				c.metrics().RetriesExhausted.Inc()
				return wire.Response{Kind: wire.KindNak}, nil
			}
			c.metrics().NAKRetries.Inc()
			if err := c.awaitReady(ctx, cn); err != nil {
				return wire.Response{}, err
			}
			continue

		default:
			return wire.Response{}, ErrInvalidAcknowledgement
		}
	}
}

// readFrame implements S2 ReadFrame: read bytes one at a time until
// the most recently read byte is ETX, then read exactly one more byte
// (the LRC), and parse the result.
func (c *Client) readFrame(cn *conn) (wire.Response, error) {
	buf := []byte{wire.STX}
	for {
		b, err := cn.readByte()
		if err != nil {
			return wire.Response{}, err
		}
		buf = append(buf, b)
		if b == wire.ETX {
			break
		}
	}
	lrc, err := cn.readByte()
	if err != nil {
		return wire.Response{}, err
	}
	buf = append(buf, lrc)
	debug(c.Logger, c.Endpoint, "in", buf)

	res, err := wire.Parse(buf)
	if err != nil {
		if err == wire.ErrInvalidMessage {
			c.metrics().LRCFailures.Inc()
		}
		return wire.Response{}, err
	}
	return res, nil
}

// awaitReady polls the peer with bare ENQs (up to MaxRetries times, at
// a fixed 200ms interval) after a NAK, before the caller resends the
// original request on the same connection. Uses a constant backoff
// policy (no jitter, fixed ceiling), matching Client.await_ready in
// the original implementation.
func (c *Client) awaitReady(ctx context.Context, cn *conn) error {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(awaitReadyInterval), uint64(c.maxRetries()-1))
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		debug(c.Logger, c.Endpoint, "out", []byte{wire.ENQ})
		if err := cn.writeAll([]byte{wire.ENQ}); err != nil {
			return backoff.Permanent(err)
		}
		ack, err := cn.readByte()
		if err != nil {
			return backoff.Permanent(err)
		}
		debug(c.Logger, c.Endpoint, "in", []byte{ack})
		if ack == wire.ACK || attempt >= c.maxRetries() {
			return nil
		}
		return errNotReady
	}, backoff.WithContext(policy, ctx))
}

var errNotReady = errTransient("transport: peer not ready")

type errTransient string

func (e errTransient) Error() string { return string(e) }

func commandNameOf(m wire.Message) string {
	if cmd := m.Command(); cmd != "" {
		return cmd
	}
	return "unknown"
}

func newRequestTimer(m *Metrics, command string) func() {
	start := time.Now()
	return func() {
		m.RequestDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
	}
}
