package telemetry

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// identityKey holds the device serial number; it is surfaced in the
	// report header and excluded from the heuristic sections.
	identityKey = "serialNumber"

	// metadataKey is reserved by the vendor API and never rendered.
	metadataKey = "_metadata"

	// serialMaskKeep is the number of leading serial characters that are
	// dropped when masking; everything after them is kept.
	serialMaskKeep = 24

	// serialMaskMarker prefixes a masked serial so readers can tell it
	// was truncated.
	serialMaskMarker = "*"
)

// unitSuffixes maps key-name substrings to the unit appended to numeric
// leaf values, checked in order. The table is deliberately explicit so
// the heuristic stays transparent and extensible.
var unitSuffixes = []struct {
	substring string
	suffix    string
}{
	{"temperature", "°C"},
	{"pressure", " bar"},
}

// MaskSerial masks a vendor serial number for display: serials longer
// than the mask threshold keep only their trailing suffix, prefixed with
// the mask marker. This is privacy masking, not security; short serials
// pass through unchanged.
func MaskSerial(serial string) string {
	if len(serial) > serialMaskKeep {
		return serialMaskMarker + serial[serialMaskKeep:]
	}
	return serial
}

// FormatDeviceState renders one schema-less device record as a markdown
// fragment. index numbers the device within the response and supplies a
// fallback identity when the record carries no serial number.
//
// Top-level fields are classified by type- and name-based heuristics:
// numeric keys containing "temperature" form the Temperatures section,
// boolean keys form the Status Indicators section, and each nested
// record becomes its own titled section, recursing one further level.
// Fields matching no rule are omitted. The formatter is total: any
// well-formed record, including an empty one, yields a report.
func FormatDeviceState(rec *Record, index int) string {
	var b strings.Builder

	serial := fmt.Sprintf("Device %d", index+1)
	if s, ok := rec.Text(identityKey); ok {
		serial = s
	}
	deviceType := "Unknown"
	if t, ok := rec.Text("type"); ok {
		deviceType = t
	}
	fmt.Fprintf(&b, "## Device: %s (%s)\n\n", MaskSerial(serial), deviceType)

	writeTemperatures(&b, rec)
	writeStatusIndicators(&b, rec)
	writeNestedSections(&b, rec)

	return b.String()
}

// writeTemperatures emits numeric top-level fields whose key contains
// "temperature", in record order.
func writeTemperatures(b *strings.Builder, rec *Record) {
	var lines []string
	for _, key := range rec.Keys() {
		if key == identityKey || !strings.Contains(strings.ToLower(key), "temperature") {
			continue
		}
		v, _ := rec.Get(key)
		if v.Kind() != KindNumber {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s°C\n", ReadableName(key), formatNumber(v.Number())))
	}

	if len(lines) == 0 {
		return
	}
	b.WriteString("### Temperatures\n\n")
	for _, line := range lines {
		b.WriteString(line)
	}
	b.WriteString("\n")
}

// writeStatusIndicators emits boolean top-level fields as
// Active/Inactive, in record order.
func writeStatusIndicators(b *strings.Builder, rec *Record) {
	var lines []string
	for _, key := range rec.Keys() {
		if key == identityKey {
			continue
		}
		v, _ := rec.Get(key)
		if v.Kind() != KindBool {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s\n", ReadableName(key), statusText(v.Bool())))
	}

	if len(lines) == 0 {
		return
	}
	b.WriteString("### Status Indicators\n\n")
	for _, line := range lines {
		b.WriteString(line)
	}
	b.WriteString("\n")
}

// writeNestedSections emits one titled section per nested record,
// recursing exactly one further level into sub-sections.
func writeNestedSections(b *strings.Builder, rec *Record) {
	for _, key := range rec.Keys() {
		if key == metadataKey {
			continue
		}
		v, _ := rec.Get(key)
		if v.Kind() != KindObject {
			continue
		}

		fmt.Fprintf(b, "### %s\n\n", ReadableName(key))
		nested := v.Object()
		for _, subkey := range nested.Keys() {
			sv, _ := nested.Get(subkey)
			if sv.Kind() == KindObject {
				fmt.Fprintf(b, "#### %s\n\n", ReadableName(subkey))
				inner := sv.Object()
				for _, innerKey := range inner.Keys() {
					iv, _ := inner.Get(innerKey)
					// Leaf depth: no unit inference here.
					fmt.Fprintf(b, "- %s: %s\n", ReadableName(innerKey), plainValue(iv))
				}
				continue
			}
			fmt.Fprintf(b, "- %s: %s\n", ReadableName(subkey), leafValue(subkey, sv))
		}
		b.WriteString("\n")
	}
}

// leafValue renders a non-object value with unit inference by substring
// match on the key name: numeric values gain the first matching unit
// suffix, booleans render as Active/Inactive, everything else renders
// unmodified.
func leafValue(key string, v Value) string {
	switch v.Kind() {
	case KindNumber:
		text := formatNumber(v.Number())
		lower := strings.ToLower(key)
		for _, u := range unitSuffixes {
			if strings.Contains(lower, u.substring) {
				return text + u.suffix
			}
		}
		return text
	case KindBool:
		return statusText(v.Bool())
	default:
		return v.Text()
	}
}

// plainValue renders a value with no unit or status inference.
func plainValue(v Value) string {
	switch v.Kind() {
	case KindNumber:
		return formatNumber(v.Number())
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindObject:
		// Recursion stops here; deeper objects render as their JSON.
		raw, err := v.Object().MarshalJSON()
		if err != nil {
			return ""
		}
		return string(raw)
	default:
		return v.Text()
	}
}

func statusText(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

// formatNumber renders a number without a trailing ".0" for integral
// values, matching how the telemetry reads naturally in reports.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
