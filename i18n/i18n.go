// Package i18n models the localization subsystem as an opaque
// string-lookup contract: localize(path) -> string, falling back to
// the path itself on a miss.
package i18n

import "strings"

// Lookup resolves a dotted resource path (e.g. "salto.errors.ES") to a
// human-readable string, returning path unchanged if no resource is
// registered for it.
type Lookup func(path string) string

// Resources is a nested string-keyed lookup table, one level per path
// segment, with a message string as the leaf value.
type Resources map[string]interface{}

// Lookup walks path's dot-separated segments, prefixed by language,
// returning path unchanged the moment a segment is missing or the
// final value isn't a string. Unlike the original Python
// implementation (whose loop mutates its own remaining-parts slice
// while iterating, silently corrupting lookups after the first
// segment), this walks a fixed key list and never mutates it.
func (r Resources) Lookup(language, path string) string {
	keys := append([]string{language}, strings.Split(path, ".")...)
	var current interface{} = map[string]interface{}(r)
	for _, key := range keys {
		m, ok := current.(map[string]interface{})
		if !ok {
			return path
		}
		next, ok := m[key]
		if !ok {
			return path
		}
		current = next
	}
	if s, ok := current.(string); ok {
		return s
	}
	return path
}

// New returns a Lookup bound to language over the given Resources.
func New(language string, resources Resources) Lookup {
	return func(path string) string {
		return resources.Lookup(language, path)
	}
}

// DefaultLanguage matches the original resource bundle's sole language.
const DefaultLanguage = "en"

// DefaultResources is the English error-message bundle ported from
// the original client's i18n resource table.
func DefaultResources() Resources {
	return Resources{
		"en": map[string]interface{}{
			"salto": map[string]interface{}{
				"errors": map[string]interface{}{
					"ES": "Syntax error. The received message from the PMS is not correct (unknown command, nonsense parameters, prohibited characters, etc.)",
					"NC": "No communication. The specified encoder does not answer (encoder is switched off, disconnected from the PC interface, etc.)",
					"NF": "No files. Database file in the PC interface is damaged, corrupted or not found.",
					"OV": "Overflow. The encoder is still busy executing a previous task and cannot accept a new one.",
					"EP": "Card error. Card not found or wrongly inserted in the encoder.",
					"EF": "Format error. The card has been encoded by another system or may be damaged.",
					"TD": "Unknown room. This error occurs when trying to encode a card for a non-existing room.",
					"ED": "Timeout error. The encoder has been waiting too long for a card to be inserted. The operation is cancelled.",
					"EA": "This error occurs when the PC interface cannot execute the 'CC' command (encode copies of a guest card) because the room is checked out.",
					"OS": "This error occurs when the requested room is out of service.",
					"EO": "The requested guest card is being encoded by another station.",
					"EV": "Card validity error. This error occurs when the inserted card for a 'CN', 'CC' or 'CA' command belongs to a valid staff user.",
					"EG": "General error",
				},
			},
		},
	}
}

// Default is a ready-to-use Lookup over DefaultResources in
// DefaultLanguage.
func Default() Lookup {
	return New(DefaultLanguage, DefaultResources())
}
