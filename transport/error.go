package transport

import "errors"

var (
	// ErrInvalidConfig signals a malformed Config (bad endpoint, negative
	// timeout or retry ceiling).
	ErrInvalidConfig = errors.New("transport: invalid configuration")
	// ErrInvalidAcknowledgement is returned when the peer sends a byte
	// that is neither ACK, NAK, nor the start of a frame when one of
	// those was expected.
	ErrInvalidAcknowledgement = errors.New("transport: invalid acknowledgement byte")
	// ErrNotConnected is returned by operations that require an open
	// connection (the audit dialog) once the connection has been closed.
	ErrNotConnected = errors.New("transport: connection closed")
)
