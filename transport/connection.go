package transport

import (
	"context"
	"io"
	"net"
	"time"
)

// conn wraps a net.Conn, re-arming read/write deadlines before every
// operation instead of a single cumulative deadline — required
// because the peer may legitimately block a read for a long time
// waiting on physical card insertion.
type conn struct {
	nc           net.Conn
	writeTimeout time.Duration
	readTimeout  time.Duration
}

func dial(ctx context.Context, cfg *Config) (*conn, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.connectTimeout())
	defer cancel()
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	return &conn{nc: nc, writeTimeout: cfg.writeTimeout(), readTimeout: cfg.readTimeout()}, nil
}

func (c *conn) close() error {
	return c.nc.Close()
}

// writeAll re-arms the write deadline and writes b in full.
func (c *conn) writeAll(b []byte) error {
	if err := c.nc.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	_, err := c.nc.Write(b)
	return err
}

// readByte re-arms the read deadline and reads exactly one byte.
func (c *conn) readByte() (byte, error) {
	if err := c.nc.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return 0, err
	}
	var buf [1]byte
	if _, err := io.ReadFull(c.nc, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
