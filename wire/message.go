package wire

import (
	"bytes"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/saltodrv/saltopms/i18n"
	"github.com/saltodrv/saltopms/saltoerr"
)

// Message is an ordered sequence of opaque byte fields. A Message
// always carries at least one field: the command name or, for an
// error response, the error code.
type Message struct {
	fields [][]byte
}

// FromFields builds a Message from raw field byte slices.
func FromFields(fields ...[]byte) Message {
	cp := make([][]byte, len(fields))
	copy(cp, fields)
	return Message{fields: cp}
}

// FromStrings builds a Message from Latin-1-encodable strings, using
// EncodeStr (no transliteration) for each field.
func FromStrings(fields ...string) Message {
	out := make([][]byte, len(fields))
	for i, f := range fields {
		out[i] = EncodeStr(f)
	}
	return Message{fields: out}
}

// Fields returns the underlying field slice. Callers must not mutate
// the returned slices.
func (m Message) Fields() [][]byte {
	return m.fields
}

// Field returns the raw bytes of the field at index. Negative indices
// count from the end, matching Python's str_field(-1) usage in the
// original client for the EG error suffix.
func (m Message) Field(index int) []byte {
	i := index
	if i < 0 {
		i += len(m.fields)
	}
	if i < 0 || i >= len(m.fields) {
		return nil
	}
	return m.fields[i]
}

// StrField decodes the field at index as a Latin-1 string.
func (m Message) StrField(index int) string {
	return decodeLatin1(m.Field(index))
}

// Details returns every field after the first, decoded as Latin-1
// strings. Mirrors Message.details in the original Python client.
func (m Message) Details() []string {
	if len(m.fields) < 2 {
		return nil
	}
	out := make([]string, len(m.fields)-1)
	for i, f := range m.fields[1:] {
		out[i] = decodeLatin1(f)
	}
	return out
}

// IsError reports whether the Message's first field is one of the 13
// vendor error codes.
func (m Message) IsError() bool {
	if len(m.fields) == 0 {
		return false
	}
	return saltoerr.Known(saltoerr.Code(m.fields[0]))
}

// ErrorCode returns field 0 as a saltoerr.Code. Only meaningful when
// IsError reports true.
func (m Message) ErrorCode() saltoerr.Code {
	return saltoerr.Code(m.StrField(0))
}

// ErrorMessage resolves the Message's error code to a human-readable
// string via lookup. For EG, the last field is appended as a suffix
// when present, matching Message.error in the original client. Returns
// "" if the Message is not an error response.
func (m Message) ErrorMessage(lookup i18n.Lookup) string {
	if !m.IsError() {
		return ""
	}
	suffix := ""
	if len(m.fields) > 1 {
		suffix = m.StrField(-1)
	}
	return m.ErrorCode().Localize(lookup, suffix)
}

// Command returns field 0 as a string, unless the Message is an error
// response, in which case it returns "".
func (m Message) Command() string {
	if m.IsError() {
		return ""
	}
	return m.StrField(0)
}

// Encode returns the delimiter-wrapped wire payload for m, without
// STX/ETX/LRC framing.
func Encode(m Message) []byte {
	var buf bytes.Buffer
	buf.WriteByte(FieldDelimiter)
	for _, f := range m.fields {
		buf.Write(f)
		buf.WriteByte(FieldDelimiter)
	}
	return buf.Bytes()
}

// Decode splits a wire payload into a Message, dropping the leading
// and trailing empty fragments that flank it by construction.
func Decode(payload []byte) Message {
	parts := bytes.Split(payload, []byte{FieldDelimiter})
	if len(parts) < 2 {
		return Message{fields: nil}
	}
	fields := parts[1 : len(parts)-1]
	cp := make([][]byte, len(fields))
	for i, f := range fields {
		b := make([]byte, len(f))
		copy(b, f)
		cp[i] = b
	}
	return Message{fields: cp}
}

// latin1Encoder maps runes byte-for-byte onto Latin-1 (ISO-8859-1) and
// reports an error for any rune outside it; callers then fall back to
// encodeLatin1Lossy, which substitutes "?".
var latin1Encoder = charmap.ISO8859_1.NewEncoder()

// transliterator strips diacritics (NFD decomposition followed by
// removal of the nonspacing-mark category), reproducing the
// "translit/short" behavior of the original Python codec: accented
// Latin letters fold to their bare ASCII form, other unrepresentable
// runes are substituted with "?" by the subsequent Latin-1 encode.
var transliterator = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeText transliterates s to Latin-1 (short transliteration:
// diacritics stripped, unrepresentable runes replaced with "?"), then
// neutralizes the field delimiter and carriage returns so the result
// is safe to embed as a single wire field.
func SanitizeText(s string) []byte {
	transliterated, _, err := transform.String(transliterator, s)
	if err != nil {
		transliterated = s
	}

	encoded, _, err := transform.Bytes(latin1Encoder, []byte(transliterated))
	if err != nil {
		// Fall back to rune-by-rune substitution of "?" for anything
		// the encoder rejected outright.
		encoded = encodeLatin1Lossy(transliterated)
	}

	encoded = bytes.ReplaceAll(encoded, []byte{FieldDelimiter}, []byte("|"))
	encoded = bytes.ReplaceAll(encoded, []byte("\r"), nil)
	return encoded
}

// EncodeStr performs a direct Latin-1 encoding with no transliteration.
// Used where the caller guarantees representability: command names,
// numeric fields, enum bytes.
func EncodeStr(s string) []byte {
	encoded, _, err := transform.Bytes(latin1Encoder, []byte(s))
	if err != nil {
		return encodeLatin1Lossy(s)
	}
	return encoded
}

func decodeLatin1(b []byte) string {
	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

func encodeLatin1Lossy(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r <= 0xFF {
			out = append(out, byte(r))
		} else {
			out = append(out, '?')
		}
	}
	return out
}
