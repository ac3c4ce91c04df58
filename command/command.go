// Package command implements the typed constructors for the Salto PC
// interface's supported commands. Each constructor produces a
// wire.Message with vendor-defined field positions; integer/enum
// values go through wire.EncodeStr (no transliteration), free-form
// text goes through wire.SanitizeText.
package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/saltodrv/saltopms/carddetails"
	"github.com/saltodrv/saltopms/wire"
)

// Checkout builds a "CO" message releasing room for check-out.
func Checkout(room string) wire.Message {
	return wire.FromFields(
		wire.EncodeStr("CO"),
		wire.EncodeStr("0"),
		wire.EncodeStr(room),
	)
}

// EncodeCardOptions configures an EncodeCard command. Zero values
// match the original client's defaults (Retain, SerialNumberAll, no
// authorizations, no validity window).
type EncodeCardOptions struct {
	Amount                int
	Encoder               string
	Rooms                 []string
	EjectStrategy         carddetails.EjectStrategy
	GrantedAuthorizations []int
	DeniedAuthorizations  []int
	ValidFrom             *time.Time
	ValidTill             *time.Time
	Operator              string
	PrintInfo             string
	SerialNumberReturn    carddetails.SerialNumberReturn
}

// EncodeCard builds a "CN" message. 16 fields, zero-initialized empty.
func EncodeCard(opts EncodeCardOptions) wire.Message {
	fields := make([][]byte, 16)
	for i := range fields {
		fields[i] = []byte{}
	}

	commandName := "CN"
	if opts.Amount > 0 {
		commandName += strconv.Itoa(opts.Amount)
	}
	eject := opts.EjectStrategy
	if eject == 0 {
		eject = carddetails.Retain
	}
	fields[0] = wire.EncodeStr(commandName)
	fields[1] = wire.EncodeStr(opts.Encoder)
	fields[2] = []byte{eject.Byte()}

	rooms := opts.Rooms
	if len(rooms) > 4 {
		rooms = rooms[:4]
	}
	for i, room := range rooms {
		fields[3+i] = wire.EncodeStr(room)
	}

	if len(opts.GrantedAuthorizations) > 0 {
		fields[7] = carddetails.EncodeAuthorizations(opts.GrantedAuthorizations)
	}
	if len(opts.DeniedAuthorizations) > 0 {
		fields[8] = carddetails.EncodeAuthorizations(opts.DeniedAuthorizations)
	}
	if opts.ValidFrom != nil {
		fields[9] = wire.EncodeStr(carddetails.FormatValidity(*opts.ValidFrom))
	}
	if opts.ValidTill != nil {
		fields[10] = wire.EncodeStr(carddetails.FormatValidity(*opts.ValidTill))
	}
	if opts.Operator != "" {
		fields[11] = truncate(wire.EncodeStr(opts.Operator), 24)
	}
	if opts.PrintInfo != "" {
		lines := strings.Split(opts.PrintInfo, "\n")
		if len(lines) > 3 {
			lines = lines[:3]
		}
		for i, line := range lines {
			fields[12+i] = truncate(wire.SanitizeText(line), 24)
		}
	}

	sn := opts.SerialNumberReturn
	if sn == 0 {
		sn = carddetails.SerialNumberAll
	}
	fields[15] = []byte{sn.Byte()}

	return wire.FromFields(fields...)
}

// EncodeMobileOptions configures an EncodeMobile command.
type EncodeMobileOptions struct {
	PhoneNumber           string
	TextMessage           string
	Rooms                 []string
	GrantedAuthorizations []int
	DeniedAuthorizations  []int
	ValidFrom             *time.Time
	ValidTill             *time.Time
	Operator              string
	PrintInfo             string
}

// EncodeMobile builds a "CNM" message. 15 fields, zero-initialized
// empty; laid out directly rather than by editing an EncodeCard
// vector. It carries no eject strategy (the phone never physically
// ejects a card) and adds the SMS text body as its final field in
// place of EncodeCard's serial-number-return flag.
func EncodeMobile(opts EncodeMobileOptions) wire.Message {
	fields := make([][]byte, 15)
	for i := range fields {
		fields[i] = []byte{}
	}

	fields[0] = wire.EncodeStr("CNM")
	fields[1] = wire.EncodeStr(opts.PhoneNumber)

	rooms := opts.Rooms
	if len(rooms) > 4 {
		rooms = rooms[:4]
	}
	for i, room := range rooms {
		fields[2+i] = wire.EncodeStr(room)
	}

	if len(opts.GrantedAuthorizations) > 0 {
		fields[6] = carddetails.EncodeAuthorizations(opts.GrantedAuthorizations)
	}
	if len(opts.DeniedAuthorizations) > 0 {
		fields[7] = carddetails.EncodeAuthorizations(opts.DeniedAuthorizations)
	}
	if opts.ValidFrom != nil {
		fields[8] = wire.EncodeStr(carddetails.FormatValidity(*opts.ValidFrom))
	}
	if opts.ValidTill != nil {
		fields[9] = wire.EncodeStr(carddetails.FormatValidity(*opts.ValidTill))
	}
	if opts.Operator != "" {
		fields[10] = truncate(wire.EncodeStr(opts.Operator), 24)
	}
	if opts.PrintInfo != "" {
		lines := strings.Split(opts.PrintInfo, "\n")
		if len(lines) > 3 {
			lines = lines[:3]
		}
		for i, line := range lines {
			fields[11+i] = truncate(wire.SanitizeText(line), 24)
		}
	}

	fields[14] = truncate(wire.SanitizeText(opts.TextMessage), 256)

	return wire.FromFields(fields...)
}

// ReadCard builds an "LT" message.
func ReadCard(encoder string, eject carddetails.EjectStrategy) wire.Message {
	return wire.FromFields(
		wire.EncodeStr("LT"),
		wire.EncodeStr(encoder),
		[]byte{eject.Byte()},
	)
}

// ReadTrack builds an "L<n>" message for the given track digit (0-9).
func ReadTrack(track int, encoder string, eject carddetails.EjectStrategy) wire.Message {
	return wire.FromFields(
		wire.EncodeStr(fmt.Sprintf("L%d", track)),
		wire.EncodeStr(encoder),
		[]byte{eject.Byte()},
	)
}

// WriteTrack builds a "P<n>" message writing text to the given track.
func WriteTrack(track int, encoder, text string, eject carddetails.EjectStrategy) wire.Message {
	return wire.FromFields(
		wire.EncodeStr(fmt.Sprintf("P%d", track)),
		wire.EncodeStr(encoder),
		[]byte{eject.Byte()},
		wire.SanitizeText(text),
	)
}

func truncate(b []byte, max int) []byte {
	if len(b) > max {
		return b[:max]
	}
	return b
}
