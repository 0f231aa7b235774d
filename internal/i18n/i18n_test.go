package i18n

import (
	"slices"
	"testing"
)

func TestInitAndLanguages(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}
	langs := Languages()
	for _, want := range []string{"en", "de"} {
		if !slices.Contains(langs, want) {
			t.Fatalf("expected language %q in %v", want, langs)
		}
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("whoami.anonymous"); got != "Not signed in." {
		t.Fatalf("expected English text, got %q", got)
	}
	if got := T("login.success", "a@b.com"); got != "Signed in as a@b.com." {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	SetLang("de")
	defer SetLang("en")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("whoami.anonymous"); got != "Nicht angemeldet." {
		t.Fatalf("expected German text, got %q", got)
	}
}

func TestT_UnknownIDFallsBack(t *testing.T) {
	Init("en")
	if got := T("does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected id fallback, got %q", got)
	}
}

func TestT_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	Init("xx")
	defer Init("en")
	if got := T("whoami.anonymous"); got != "Not signed in." {
		t.Fatalf("expected English fallback, got %q", got)
	}
}
