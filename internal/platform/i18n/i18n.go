// Package i18n defines the supported locales and tag matching helpers.
package i18n

import "golang.org/x/text/language"

var supported = []language.Tag{
	language.AmericanEnglish,
	language.Dutch,
}

var matcher = language.NewMatcher(supported)

// SupportedTags returns the supported language tags in preference order.
func SupportedTags() []language.Tag {
	tags := make([]language.Tag, len(supported))
	copy(tags, supported)
	return tags
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses a raw language value into a supported tag.
// The bool reports whether the value matched a supported language.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return supported[index], true
}

// MatchTags picks the best supported tag for the requested tags.
func MatchTags(requested []language.Tag) language.Tag {
	if len(requested) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(requested...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}
