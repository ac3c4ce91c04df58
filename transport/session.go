package transport

import (
	"context"

	"github.com/saltodrv/saltopms/wire"
)

// Session holds one TCP connection open across a sequence of logical
// requests, for multi-turn dialogs like the audit-trail fetcher, which
// reuses one connection across its WF/WN turns. No other caller may
// interleave requests on a Session concurrently; it is not safe for
// concurrent use.
type Session struct {
	client *Client
	cn     *conn
}

// OpenSession dials a fresh connection and returns a Session bound to
// it. Callers must call Close when done.
func (c *Client) OpenSession(ctx context.Context) (*Session, error) {
	cn, err := dial(ctx, &c.Config)
	if err != nil {
		c.metrics().ConnectionAttempts.Inc()
		c.metrics().ConnectionFailures.Inc()
		return nil, err
	}
	c.metrics().ConnectionAttempts.Inc()
	return &Session{client: c, cn: cn}, nil
}

// Send dispatches message on the session's held connection.
func (s *Session) Send(ctx context.Context, message wire.Message) (wire.Response, error) {
	if s.cn == nil {
		return wire.Response{}, ErrNotConnected
	}
	res, err := s.client.sendOn(ctx, s.cn, s.client.frame(message))
	if err != nil {
		s.Close()
	}
	return res, err
}

// Close releases the session's connection. Safe to call multiple times.
func (s *Session) Close() error {
	if s.cn == nil {
		return nil
	}
	err := s.cn.close()
	s.cn = nil
	return err
}
