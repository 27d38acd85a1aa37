package telemetry

import (
	"strings"
	"unicode"
)

// ReadableName converts a lower-camel-case field key into a readable
// label: a space is inserted before every non-leading uppercase letter,
// then the first character is capitalized and the rest lowercased, so
// "roomTemperatureTarget" becomes "Room temperature target".
//
// The conversion is purely lexical. Consecutive capitals are split
// letter by letter ("eBUS" -> "E b u s"); downstream consumers expect
// the split form, so no acronym handling is applied.
func ReadableName(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	spaced := b.String()
	if spaced == "" {
		return spaced
	}

	runes := []rune(strings.ToLower(spaced))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
