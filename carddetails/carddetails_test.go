package carddetails_test

import (
	"errors"
	"testing"
	"time"

	"github.com/saltodrv/saltopms/carddetails"
	"github.com/saltodrv/saltopms/wire"
)

func TestEncodeDecodeAuthorizationsRoundTrip(t *testing.T) {
	all := make([]int, 62)
	for i := range all {
		all[i] = i + 1
	}
	encoded := carddetails.EncodeAuthorizations(all)
	decoded, err := carddetails.DecodeAuthorizations(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != len(all) {
		t.Fatalf("len(decoded) = %d, want %d", len(decoded), len(all))
	}
	for i, v := range all {
		if decoded[i] != v {
			t.Errorf("decoded[%d] = %d, want %d", i, decoded[i], v)
		}
	}
}

func TestEncodeDecodeSubsets(t *testing.T) {
	subsets := [][]int{{1}, {62}, {1, 2, 3}, {5, 10, 61, 62}, {}}
	for _, subset := range subsets {
		encoded := carddetails.EncodeAuthorizations(subset)
		decoded, err := carddetails.DecodeAuthorizations(encoded)
		if err != nil {
			t.Fatalf("subset %v: unexpected error: %v", subset, err)
		}
		if len(decoded) != len(subset) {
			t.Fatalf("subset %v: len(decoded) = %d", subset, len(decoded))
		}
		for i, v := range subset {
			if decoded[i] != v {
				t.Errorf("subset %v: decoded[%d] = %d, want %d", subset, i, decoded[i], v)
			}
		}
	}
}

func TestDecodeAuthorizationsRejectsUnknownByte(t *testing.T) {
	_, err := carddetails.DecodeAuthorizations([]byte{'"'})
	if !errors.Is(err, carddetails.ErrInvalidAuthorization) {
		t.Fatalf("err = %v, want ErrInvalidAuthorization", err)
	}
}

func TestParseValidityStrict(t *testing.T) {
	got, err := carddetails.ParseValidity("1530311223")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 15 || got.Minute() != 30 || got.Day() != 31 || got.Month() != time.December || got.Year() != 2023 {
		t.Errorf("unexpected parse: %v", got)
	}
}

func TestParseValidityRejectsMalformed(t *testing.T) {
	cases := []string{"", "abcdefghij", "153031122", "25006112 23"}
	for _, c := range cases {
		if _, err := carddetails.ParseValidity(c); err == nil {
			t.Errorf("ParseValidity(%q) succeeded, want error", c)
		}
	}
}

func TestFormatValidityRoundTrip(t *testing.T) {
	in := time.Date(2024, time.March, 5, 9, 15, 0, 0, time.UTC)
	formatted := carddetails.FormatValidity(in)
	out, err := carddetails.ParseValidity(formatted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Year() != in.Year() || out.Month() != in.Month() || out.Day() != in.Day() ||
		out.Hour() != in.Hour() || out.Minute() != in.Minute() {
		t.Errorf("round trip mismatch: got %v, want %v", out, in)
	}
}

func TestCardDetailsGuestCard(t *testing.T) {
	m := wire.FromFields(
		wire.EncodeStr("LT"),
		wire.EncodeStr("Online Encoder 1"),
		wire.EncodeStr("Room 1"),
		wire.EncodeStr("Room 2"),
		wire.EncodeStr(""),
		wire.EncodeStr(""),
		wire.EncodeStr("CI"),
		wire.EncodeStr("0"),
		carddetails.EncodeAuthorizations([]int{1, 2, 3}),
		wire.EncodeStr("0000010124"),
		wire.EncodeStr("0000020124"),
		wire.EncodeStr("Front Desk"),
	)
	cd := carddetails.FromMessage(m)

	if !cd.IsGuestCard() {
		t.Fatalf("expected guest card")
	}
	if got := cd.Rooms(); len(got) != 2 || got[0] != "Room 1" || got[1] != "Room 2" {
		t.Errorf("Rooms() = %v", got)
	}
	if !cd.IsValidForMainRoom() {
		t.Errorf("expected IsValidForMainRoom true")
	}
	auths, err := cd.GrantedAuthorizations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(auths) != 3 {
		t.Errorf("GrantedAuthorizations() = %v", auths)
	}
	if cd.Operator() != "Front Desk" {
		t.Errorf("Operator() = %q", cd.Operator())
	}
}

func TestEjectStrategyRearWritesItsOwnByte(t *testing.T) {
	if got, want := carddetails.Rear.Byte(), byte('T'); got != want {
		t.Errorf("Rear.Byte() = %q, want %q", got, want)
	}
}

func TestCardDetailsStaffCard(t *testing.T) {
	m := wire.FromFields(wire.EncodeStr("LT"), wire.EncodeStr("Online Encoder 1"), wire.EncodeStr("LM"))
	cd := carddetails.FromMessage(m)
	if cd.CardType() != carddetails.StaffCard {
		t.Fatalf("CardType() = %v, want StaffCard", cd.CardType())
	}
	if cd.Rooms() != nil {
		t.Errorf("Rooms() = %v, want nil for non-guest card", cd.Rooms())
	}
	if cd.Operator() != "" {
		t.Errorf("Operator() = %q, want empty for non-guest card", cd.Operator())
	}
}
