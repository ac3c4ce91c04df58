package audit

import (
	"strings"
	"time"

	"github.com/saltodrv/saltopms/carddetails"
	"github.com/saltodrv/saltopms/transport"
	"github.com/saltodrv/saltopms/wire"
)

// Clock returns the current time, used for the audit-record year
// inference. Overridable for testability, since the real wall clock
// would make the year-inference behavior impossible to pin down in a
// test.
var Clock = time.Now

// Record is a view over a single audit-trail message.
type Record struct {
	Message   wire.Message
	dateOrder transport.DateOrder
}

// IsError reports whether this is a "WE" general-error sentinel.
func (r Record) IsError() bool {
	return r.Message.StrField(0) == "WE"
}

// IsEndOfTrail reports whether this is a "WO" end-of-trail sentinel.
// The original client's docstring for this check mentions "WF/WN/WR",
// but its code compares against "WO"; this follows the code.
func (r Record) IsEndOfTrail() bool {
	return r.Message.StrField(0) == "WO"
}

// DoorIdentification returns field 1.
func (r Record) DoorIdentification() string {
	return r.Message.StrField(1)
}

// Datetime parses fields 2/3 (date, time) using the configured
// DateOrder, and rolls the inferred year back by one if the parsed
// datetime would otherwise lie in the future (the year is never
// transmitted on the wire).
func (r Record) Datetime() (time.Time, error) {
	layout := r.dateOrder.Layout()
	raw := r.Message.StrField(2) + " " + r.Message.StrField(3)
	now := Clock()
	parsed, err := time.ParseInLocation(layout, raw, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	parsed = time.Date(now.Year(), parsed.Month(), parsed.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if parsed.After(now) {
		parsed = addYears(parsed, -1)
	}
	return parsed, nil
}

// addYears returns years after d, keeping the same month/day where it
// exists and rolling Feb 29 forward to Mar 1 in a non-leap target year.
func addYears(d time.Time, years int) time.Time {
	return d.AddDate(years, 0, 0)
}

// Incident returns field 4, the single-byte incident code.
func (r Record) Incident() carddetails.Incident {
	f := r.Message.Field(4)
	if len(f) == 0 {
		return 0
	}
	return carddetails.Incident(f[0])
}

// Direction returns field 5: In if it equals "I", Out otherwise.
func (r Record) Direction() carddetails.Direction {
	if r.Message.StrField(5) == "I" {
		return carddetails.In
	}
	return carddetails.Out
}

// CardIdentification returns the trimmed field 6. "STAFF" marks a
// staff card (the wire value is the fixed 8-char "STAFF   "); blanks
// mark a special/spare user.
func (r Record) CardIdentification() string {
	return strings.TrimSpace(r.Message.StrField(6))
}

// CopyNumber returns field 7: one of '#0','#1','#2','#D','@1','S1','S2','S3'.
func (r Record) CopyNumber() string {
	return r.Message.StrField(7)
}

// User returns field 8, the staff user name, present only for staff cards.
func (r Record) User() string {
	return r.Message.StrField(8)
}
