// Package carddetails decodes a read-card ("LT") response and
// provides the shared enums and the authorization alphabet codec used
// by both the card-details view and the command catalog.
package carddetails

import (
	"errors"
	"time"

	"github.com/saltodrv/saltopms/wire"
)

// EjectStrategy is the per-operation policy for whether the encoder
// waits for the card to be removed.
type EjectStrategy byte

const (
	Eject  EjectStrategy = 'E' // The interface waits for the card to be removed.
	Retain EjectStrategy = 'R' // The interface does not wait.
	Rear   EjectStrategy = 'T' // Ejection by the rear side of the encoder.
)

// Byte returns the wire byte for the strategy.
func (e EjectStrategy) Byte() byte { return byte(e) }

// SerialNumberReturn controls whether EncodeCard echoes back written
// card serial numbers.
type SerialNumberReturn byte

const (
	SerialNumberNone SerialNumberReturn = '0'
	SerialNumberLast SerialNumberReturn = '1'
	SerialNumberAll  SerialNumberReturn = '2'
)

func (s SerialNumberReturn) Byte() byte { return byte(s) }

// CardType classifies a read-card response.
type CardType int

const (
	GuestCard CardType = iota
	StaffCard
	SpareGuestCard
	InvalidGuestCard
	UnidentifiedCard
)

// Incident classifies an audit-trail access event.
type Incident byte

const (
	Open         Incident = '0'
	Invalid      Incident = '2'
	AccessDenied Incident = '3'
	Expired      Incident = '4'
	AntiPassback Incident = '5'
)

// Direction classifies the reader an audit event came from.
type Direction int

const (
	In Direction = iota
	Out
)

// ErrInvalidDatetime is returned when a validity-window field does not
// parse as HHMMddmmyy.
var ErrInvalidDatetime = errors.New("carddetails: invalid HHMMddmmyy datetime")

// ErrInvalidAuthorization is returned when a byte outside the 62-symbol
// alphabet appears in an authorization field.
var ErrInvalidAuthorization = errors.New("carddetails: byte outside authorization alphabet")

// authAlphabet maps integers 1..62 to their single-byte wire code.
var authAlphabet = buildAlphabet()

func buildAlphabet() [63]byte {
	var a [63]byte
	i := 1
	for c := '1'; c <= '9'; c++ {
		a[i] = byte(c)
		i++
	}
	for c := 'a'; c <= 'z'; c++ {
		a[i] = byte(c)
		i++
	}
	for _, c := range "!#$%&()*+,-./:;<=>?@[\\]^_{}" {
		a[i] = byte(c)
		i++
	}
	return a
}

var authInverse = buildInverse()

func buildInverse() map[byte]int {
	m := make(map[byte]int, 62)
	for i := 1; i <= 62; i++ {
		m[authAlphabet[i]] = i
	}
	return m
}

// EncodeAuthorizations concatenates each authorization's single-byte
// code into one field. Authorizations must be in 1..62.
func EncodeAuthorizations(authorizations []int) []byte {
	out := make([]byte, len(authorizations))
	for i, a := range authorizations {
		out[i] = authAlphabet[a]
	}
	return out
}

// DecodeAuthorizations decodes an authorization field. Returns
// ErrInvalidAuthorization if any byte falls outside the 62-symbol
// alphabet.
func DecodeAuthorizations(field []byte) ([]int, error) {
	out := make([]int, len(field))
	for i, b := range field {
		v, ok := authInverse[b]
		if !ok {
			return nil, ErrInvalidAuthorization
		}
		out[i] = v
	}
	return out, nil
}

// ParseValidity parses a validity-window field in strict HHMMddmmyy
// format, as produced by an EncodeCard command and returned by a
// read-card response.
func ParseValidity(field string) (time.Time, error) {
	return parseHHMMddmmyy(field)
}

// parseHHMMddmmyy implements the exact HHMMddmmyy layout: hour(2)
// minute(2) day(2) month(2) year(2; 00-68 read as 20xx, 69-99 as 19xx).
func parseHHMMddmmyy(field string) (time.Time, error) {
	const layout = "1504" + "02" + "01" + "06"
	t, err := time.Parse(layout, field)
	if err != nil {
		return time.Time{}, ErrInvalidDatetime
	}
	return t, nil
}

// FormatValidity formats t back into the HHMMddmmyy wire layout.
func FormatValidity(t time.Time) string {
	return t.Format("1504" + "02" + "01" + "06")
}

// CardDetails is a view over a read-card ("LT") response Message.
type CardDetails struct {
	message wire.Message
}

// FromMessage wraps the Framed response to an LT request.
func FromMessage(m wire.Message) CardDetails {
	return CardDetails{message: m}
}

func (c CardDetails) Encoder() string {
	return c.message.StrField(1)
}

func (c CardDetails) CardType() CardType {
	switch c.message.StrField(2) {
	case "LM":
		return StaffCard
	case "LR":
		return SpareGuestCard
	case "LC":
		return InvalidGuestCard
	case "LD":
		return UnidentifiedCard
	default:
		return GuestCard
	}
}

func (c CardDetails) IsGuestCard() bool {
	return c.CardType() == GuestCard
}

// Rooms returns the guest card's room names (fields 2-5), dropping
// empties. Returns nil for non-guest cards.
func (c CardDetails) Rooms() []string {
	if !c.IsGuestCard() {
		return nil
	}
	var rooms []string
	for i := 2; i <= 5; i++ {
		if r := c.message.StrField(i); r != "" {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// IsValidForMainRoom reports whether field 6 is "CI" (valid for main
// room) rather than "CO". Only meaningful for guest cards.
func (c CardDetails) IsValidForMainRoom() bool {
	if !c.IsGuestCard() {
		return false
	}
	return c.message.StrField(6) == "CI"
}

// CopyNumber returns field 7: '0','1','2','I','A'. Empty for
// non-guest cards.
func (c CardDetails) CopyNumber() string {
	if !c.IsGuestCard() {
		return ""
	}
	return c.message.StrField(7)
}

// GrantedAuthorizations decodes field 8's authorization bitmap.
// Empty for non-guest cards.
func (c CardDetails) GrantedAuthorizations() ([]int, error) {
	if !c.IsGuestCard() {
		return nil, nil
	}
	return DecodeAuthorizations(c.message.Field(8))
}

// ValidFrom parses field 9, the validity-window start. Returns the
// zero Time and false if the field is empty or this isn't a guest card.
func (c CardDetails) ValidFrom() (time.Time, bool, error) {
	return c.validityField(9)
}

// ValidTill parses field 10, the validity-window end.
func (c CardDetails) ValidTill() (time.Time, bool, error) {
	return c.validityField(10)
}

func (c CardDetails) validityField(index int) (time.Time, bool, error) {
	if !c.IsGuestCard() {
		return time.Time{}, false, nil
	}
	raw := c.message.Field(index)
	if len(raw) == 0 {
		return time.Time{}, false, nil
	}
	t, err := parseHHMMddmmyy(c.message.StrField(index))
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// Operator returns field 11, the operator name. Empty for non-guest
// cards.
func (c CardDetails) Operator() string {
	if !c.IsGuestCard() {
		return ""
	}
	return c.message.StrField(11)
}
