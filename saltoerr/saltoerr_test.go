package saltoerr_test

import (
	"testing"

	"github.com/saltodrv/saltopms/i18n"
	"github.com/saltodrv/saltopms/saltoerr"
)

func TestKnown(t *testing.T) {
	for _, code := range []saltoerr.Code{saltoerr.ES, saltoerr.NC, saltoerr.EG} {
		if !saltoerr.Known(code) {
			t.Errorf("Known(%q) = false, want true", code)
		}
	}
	if saltoerr.Known("ZZ") {
		t.Errorf("Known(\"ZZ\") = true, want false")
	}
}

func TestLocalizeEGSuffix(t *testing.T) {
	identity := i18n.Lookup(func(path string) string { return path })
	if got := saltoerr.EG.Localize(identity, "encoder offline"); got != "salto.errors.EG: encoder offline" {
		t.Errorf("Localize() = %q, want resolved path with suffix appended", got)
	}
	if got := saltoerr.EG.Localize(identity, ""); got != "salto.errors.EG" {
		t.Errorf("Localize() = %q, want resolved path", got)
	}
}

func TestLocalizeOtherCodesIgnoreSuffix(t *testing.T) {
	identity := i18n.Lookup(func(path string) string { return path })
	if got := saltoerr.ES.Localize(identity, "ignored"); got != "salto.errors.ES" {
		t.Errorf("Localize() = %q, want resolved path regardless of suffix", got)
	}
}

func TestError(t *testing.T) {
	if got, want := saltoerr.NF.Error(), "salto: vendor error NF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
