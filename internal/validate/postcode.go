package validate

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidPostcode is returned for any input that does not conform to
// the UK postcode grammar, regardless of how it is malformed.
var ErrInvalidPostcode = errors.New("invalid UK postcode")

// UK postcode grammar, simplified: the outward code is 1-2 letters,
// 1-2 digits and an optional trailing letter; the inward code is one
// digit followed by two letters. Group 1 captures the outward code.
var (
	fullPostcodePattern = regexp.MustCompile(`^([A-Z]{1,2}\d{1,2}[A-Z]?)(\d[A-Z]{2})$`)
	outwardCodePattern  = regexp.MustCompile(`^([A-Z]{1,2}\d{1,2}[A-Z]?)$`)
)

// OutwardCode validates a UK postcode and extracts its outward (district)
// code. The input may be a full postcode ("SW1A 1AA", "SW1A1AA") or just
// the outward code ("SW1A", "sw1a"); casing and internal whitespace are
// ignored. The full-postcode grammar is tried before the outward-only
// grammar, so both forms resolve to the same canonical value.
//
// Feeding an already-normalized outward code back through returns it
// unchanged.
func OutwardCode(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidPostcode
	}

	cleaned := strings.ToUpper(strings.Join(strings.Fields(raw), ""))

	if m := fullPostcodePattern.FindStringSubmatch(cleaned); m != nil {
		return m[1], nil
	}
	if m := outwardCodePattern.FindStringSubmatch(cleaned); m != nil {
		return m[1], nil
	}

	return "", ErrInvalidPostcode
}
