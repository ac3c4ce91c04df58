// Package saltoerr models the Salto PC interface's 13 vendor error
// codes as a typed value with package-level named constants and a
// localized message.
package saltoerr

import "github.com/saltodrv/saltopms/i18n"

// Code is a two-letter vendor error code returned as field 0 of an
// error response Message.
type Code string

// The vendor error-code catalog.
const (
	ES Code = "ES" // Syntax error.
	NC Code = "NC" // No communication with the encoder.
	NF Code = "NF" // No files; database damaged, corrupted or not found.
	OV Code = "OV" // Overflow; encoder busy with a previous task.
	EP Code = "EP" // Card error; card not found or wrongly inserted.
	EF Code = "EF" // Format error; card encoded by another system or damaged.
	TD Code = "TD" // Unknown room.
	ED Code = "ED" // Timeout error waiting for card insertion.
	EA Code = "EA" // Cannot execute CC because the room is checked out.
	OS Code = "OS" // Requested room is out of service.
	EO Code = "EO" // Guest card is being encoded by another station.
	EV Code = "EV" // Card validity error; card belongs to a valid staff user.
	EG Code = "EG" // General error; a human-readable suffix may follow.
)

var known = map[Code]bool{
	ES: true, NC: true, NF: true, OV: true, EP: true, EF: true,
	TD: true, ED: true, EA: true, OS: true, EO: true, EV: true, EG: true,
}

// Known reports whether code is one of the 13 vendor error codes.
func Known(code Code) bool {
	return known[code]
}

// Localize resolves code to a human-readable message via lookup,
// falling back to the localization key itself on a miss (per the
// i18n package's contract). suffix, if non-empty, is appended for the
// EG code only, matching Message.error in the original client.
func (c Code) Localize(lookup i18n.Lookup, suffix string) string {
	if c == EG && suffix != "" {
		return lookup("salto.errors."+string(c)) + ": " + suffix
	}
	return lookup("salto.errors." + string(c))
}

// Error implements the builtin error interface so a Code can be
// surfaced as a Go error where a caller chooses to treat a vendor
// error response as a hard failure instead of inspecting the Message
// directly. A well-formed error response is not itself a transport
// failure; this method exists for caller convenience only.
func (c Code) Error() string {
	return "salto: vendor error " + string(c)
}
