package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestDefaultTagIsEnglish(t *testing.T) {
	if got := DefaultTag(); got != language.AmericanEnglish {
		t.Fatalf("DefaultTag() = %v, want %v", got, language.AmericanEnglish)
	}
}

func TestParseTagSupported(t *testing.T) {
	tag, ok := ParseTag("nl")
	if !ok {
		t.Fatal("expected nl to be supported")
	}
	if tag != language.Dutch {
		t.Fatalf("ParseTag(nl) = %v, want %v", tag, language.Dutch)
	}
}

func TestParseTagRegionalVariantMatchesBase(t *testing.T) {
	tag, ok := ParseTag("nl-BE")
	if !ok {
		t.Fatal("expected nl-BE to match a supported language")
	}
	if tag != language.Dutch {
		t.Fatalf("ParseTag(nl-BE) = %v, want %v", tag, language.Dutch)
	}
}

func TestParseTagInvalid(t *testing.T) {
	tag, ok := ParseTag("not a tag")
	if ok {
		t.Fatal("expected invalid value to be rejected")
	}
	if tag != DefaultTag() {
		t.Fatalf("ParseTag fallback = %v, want %v", tag, DefaultTag())
	}
}

func TestMatchTagsPrefersRequested(t *testing.T) {
	got := MatchTags([]language.Tag{language.Dutch, language.AmericanEnglish})
	if got != language.Dutch {
		t.Fatalf("MatchTags = %v, want %v", got, language.Dutch)
	}
}

func TestMatchTagsEmptyFallsBack(t *testing.T) {
	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %v, want %v", got, DefaultTag())
	}
}
