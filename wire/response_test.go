package wire_test

import (
	"errors"
	"testing"

	"github.com/saltodrv/saltopms/wire"
)

func TestParseAck(t *testing.T) {
	r, err := wire.Parse([]byte{wire.ACK})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsAck() {
		t.Errorf("expected IsAck() true")
	}
}

func TestParseNak(t *testing.T) {
	r, err := wire.Parse([]byte{wire.NAK})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsNak() {
		t.Errorf("expected IsNak() true")
	}
}

func TestParseFramedValidLRC(t *testing.T) {
	payload := wire.Encode(wire.FromFields(wire.EncodeStr("WO")))
	lrc := wire.LRC(payload)
	raw := append([]byte{wire.STX}, payload...)
	raw = append(raw, wire.ETX, lrc)

	r, err := wire.Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Kind != wire.KindFramed {
		t.Fatalf("Kind = %v, want KindFramed", r.Kind)
	}
	if got := r.Message.StrField(0); got != "WO" {
		t.Errorf("field 0 = %q, want %q", got, "WO")
	}
}

func TestParseFramedLRCSkip(t *testing.T) {
	payload := wire.Encode(wire.FromFields(wire.EncodeStr("WO")))
	raw := append([]byte{wire.STX}, payload...)
	raw = append(raw, wire.ETX, wire.LRCSkip)

	if _, err := wire.Parse(raw); err != nil {
		t.Fatalf("unexpected error with LRC skip byte: %v", err)
	}
}

func TestParseInvalidLRC(t *testing.T) {
	// A mismatched trailing LRC byte must be rejected, not silently accepted.
	raw := []byte{wire.STX, 'A', 'B', wire.ETX, 0xFF}
	_, err := wire.Parse(raw)
	if !errors.Is(err, wire.ErrInvalidMessage) {
		t.Fatalf("err = %v, want ErrInvalidMessage", err)
	}
}

func TestParseUnparsable(t *testing.T) {
	cases := [][]byte{{}, {0x41}, {0x41, 0x42}}
	for _, raw := range cases {
		if _, err := wire.Parse(raw); !errors.Is(err, wire.ErrUnparsableResponse) {
			t.Errorf("Parse(% X) err = %v, want ErrUnparsableResponse", raw, err)
		}
	}
}

func TestParseLastETXWins(t *testing.T) {
	// An embedded ETX inside a field; the *last* ETX in the blob
	// terminates the payload, since the protocol allows no escaping.
	inner := []byte{wire.FieldDelimiter, 'A', wire.ETX, 'C', wire.FieldDelimiter}
	lrc := wire.LRC(inner)
	raw := append([]byte{wire.STX}, inner...)
	raw = append(raw, wire.ETX, lrc)

	r, err := wire.Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Message.StrField(0); got != "A\x03C" {
		t.Errorf("field 0 = %q, want %q", got, "A\x03C")
	}
}
