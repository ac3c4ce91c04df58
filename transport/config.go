package transport

import (
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

// DateOrder selects how an encoder/peer formats audit-trail dates
// ("dd/mm" default, or "mm/dd").
type DateOrder int

const (
	DayMonth DateOrder = iota
	MonthDay
)

// Layout returns the Go time layout for the configured date order,
// paired with the "HH:MM" time field that always follows it.
func (d DateOrder) Layout() string {
	switch d {
	case MonthDay:
		return "01/02 15:04"
	default:
		return "02/01 15:04"
	}
}

// Default timeouts and retry ceiling.
const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultWriteTimeout   = 10 * time.Second
	DefaultReadTimeout    = 30 * time.Second
	DefaultMaxRetries     = 3
	awaitReadyInterval    = 200 * time.Millisecond
)

// Config configures a Client: a plain struct validated by Validate
// before use.
type Config struct {
	// Endpoint is the peer's "host:port" address.
	Endpoint string
	// LRCSkip, when true, makes outbound frames carry wire.LRCSkip
	// instead of a computed LRC.
	LRCSkip bool
	// DateOrder tells the audit package how to parse incoming
	// audit-trail dates.
	DateOrder DateOrder

	// ConnectTimeout, WriteTimeout and ReadTimeout override the
	// package defaults when non-zero.
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	// MaxRetries overrides DefaultMaxRetries when non-zero.
	MaxRetries int

	// Logger, when set, receives a debug trace of every inbound and
	// outbound byte chunk with control bytes textualized.
	Logger *logrus.Logger

	// Metrics, when set, receives transport instrumentation. A nil
	// Metrics is replaced by a no-op implementation.
	Metrics *Metrics
}

// Validate checks Endpoint is a well-formed host:port and that any
// overridden timeouts/retry ceiling are positive.
func (cfg *Config) Validate() error {
	if _, _, err := net.SplitHostPort(cfg.Endpoint); err != nil {
		return ErrInvalidConfig
	}
	for _, d := range []time.Duration{cfg.ConnectTimeout, cfg.WriteTimeout, cfg.ReadTimeout} {
		if d < 0 {
			return ErrInvalidConfig
		}
	}
	if cfg.MaxRetries < 0 {
		return ErrInvalidConfig
	}
	return nil
}

func (cfg *Config) connectTimeout() time.Duration {
	if cfg.ConnectTimeout > 0 {
		return cfg.ConnectTimeout
	}
	return DefaultConnectTimeout
}

func (cfg *Config) writeTimeout() time.Duration {
	if cfg.WriteTimeout > 0 {
		return cfg.WriteTimeout
	}
	return DefaultWriteTimeout
}

func (cfg *Config) readTimeout() time.Duration {
	if cfg.ReadTimeout > 0 {
		return cfg.ReadTimeout
	}
	return DefaultReadTimeout
}

func (cfg *Config) maxRetries() int {
	if cfg.MaxRetries > 0 {
		return cfg.MaxRetries
	}
	return DefaultMaxRetries
}

func (cfg *Config) metrics() *Metrics {
	if cfg.Metrics != nil {
		return cfg.Metrics
	}
	return noopMetrics
}
