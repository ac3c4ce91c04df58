package transport

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saltodrv/saltopms/wire"
)

// traceByte textualizes the control bytes and field delimiter for
// human-readable debug logging, mirroring Client._debug in the
// original Python client.
func traceByte(b byte) string {
	switch b {
	case wire.STX:
		return "STX"
	case wire.ETX:
		return "ETX"
	case wire.ENQ:
		return "ENQ"
	case wire.ACK:
		return "ACK"
	case wire.NAK:
		return "NAK"
	case wire.LRCSkip:
		return "LRC_SKIP"
	case wire.FieldDelimiter:
		return "|"
	default:
		return string(rune(b))
	}
}

func traceBytes(chunk []byte) string {
	var sb strings.Builder
	for _, b := range chunk {
		sb.WriteString(traceByte(b))
	}
	return sb.String()
}

// debug emits a single structured log entry for an inbound ("in") or
// outbound ("out") byte chunk. A nil logger is a no-op, matching the
// teacher's "optional logger" convention.
func debug(logger *logrus.Logger, endpoint, direction string, chunk []byte) {
	if logger == nil {
		return
	}
	logger.WithFields(logrus.Fields{
		"endpoint":  endpoint,
		"direction": direction,
	}).Debug(traceBytes(chunk))
}
