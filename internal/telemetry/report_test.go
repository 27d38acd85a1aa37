package telemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDeviceState_Temperatures(t *testing.T) {
	rec := NewRecord().
		Set("outdoorTemperature", Number(7.5)).
		Set("flowTemperature", Number(42)).
		Set("roomTemperatureTarget", Number(21))

	report := FormatDeviceState(rec, 0)

	assert.Contains(t, report, "### Temperatures\n")
	assert.Contains(t, report, "- Outdoor temperature: 7.5°C\n")
	assert.Contains(t, report, "- Flow temperature: 42°C\n")
	assert.Contains(t, report, "- Room temperature target: 21°C\n")

	// Original key order is preserved.
	outdoor := strings.Index(report, "Outdoor temperature")
	flow := strings.Index(report, "Flow temperature")
	room := strings.Index(report, "Room temperature target")
	assert.True(t, outdoor < flow && flow < room, "temperature lines must follow record order")

	// Each classified key appears exactly once.
	assert.Equal(t, 1, strings.Count(report, "Outdoor temperature"))
}

func TestFormatDeviceState_TemperatureRequiresNumericValue(t *testing.T) {
	rec := NewRecord().Set("outdoorTemperature", Text("7.5"))

	report := FormatDeviceState(rec, 0)

	assert.NotContains(t, report, "Temperatures")
	assert.NotContains(t, report, "Outdoor temperature")
}

func TestFormatDeviceState_StatusIndicators(t *testing.T) {
	rec := NewRecord().
		Set("compressorActive", Bool(true)).
		Set("heatingPumpActive", Bool(false))

	report := FormatDeviceState(rec, 0)

	assert.Contains(t, report, "### Status Indicators\n")
	assert.Contains(t, report, "- Compressor active: Active\n")
	assert.Contains(t, report, "- Heating pump active: Inactive\n")
}

func TestFormatDeviceState_NestedSections(t *testing.T) {
	override := NewRecord().
		Set("enabled", Bool(true)).
		Set("roomTemperatureTarget", Number(22.5))

	heating := NewRecord().
		Set("roomTemperature", Number(20.5)).
		Set("waterPressure", Number(1.4)).
		Set("useSchedule", Bool(false)).
		Set("mode", Text("auto")).
		Set("manualOverride", Object(override))

	rec := NewRecord().Set("centralHeating", Object(heating))

	report := FormatDeviceState(rec, 0)

	assert.Contains(t, report, "### Central heating\n")
	assert.Contains(t, report, "- Room temperature: 20.5°C\n")
	assert.Contains(t, report, "- Water pressure: 1.4 bar\n")
	assert.Contains(t, report, "- Use schedule: Inactive\n")
	assert.Contains(t, report, "- Mode: auto\n")

	// One further level of recursion, rendered without unit inference.
	assert.Contains(t, report, "#### Manual override\n")
	assert.Contains(t, report, "- Enabled: true\n")
	assert.Contains(t, report, "- Room temperature target: 22.5\n")
}

func TestFormatDeviceState_MetadataKeySkipped(t *testing.T) {
	rec := NewRecord().
		Set("_metadata", Object(NewRecord().Set("fetchedAt", Text("2025-05-01")))).
		Set("centralHeating", Object(NewRecord().Set("enabled", Bool(true))))

	report := FormatDeviceState(rec, 0)

	assert.NotContains(t, report, "metadata")
	assert.NotContains(t, report, "fetchedAt")
	assert.Contains(t, report, "### Central heating\n")
}

func TestFormatDeviceState_SerialMasking(t *testing.T) {
	serial := "123456789012345678901234ABCDEF" // 30 characters
	require.Len(t, serial, 30)

	rec := NewRecord().
		Set("serialNumber", Text(serial)).
		Set("type", Text("HEAT_PUMP"))

	report := FormatDeviceState(rec, 0)

	assert.Contains(t, report, "## Device: *ABCDEF (HEAT_PUMP)\n")
	assert.NotContains(t, report, serial)
}

func TestFormatDeviceState_ShortSerialUnmasked(t *testing.T) {
	rec := NewRecord().Set("serialNumber", Text("HP-001"))

	report := FormatDeviceState(rec, 0)

	assert.Contains(t, report, "## Device: HP-001 (Unknown)\n")
}

func TestFormatDeviceState_EmptyRecord(t *testing.T) {
	report := FormatDeviceState(NewRecord(), 0)

	assert.Equal(t, "## Device: Device 1 (Unknown)\n\n", report)
	assert.NotContains(t, report, "Temperatures")
	assert.NotContains(t, report, "Status Indicators")
}

func TestFormatDeviceState_FallbackIdentityUsesIndex(t *testing.T) {
	report := FormatDeviceState(NewRecord(), 2)

	assert.Contains(t, report, "## Device: Device 3 (Unknown)\n")
}

func TestFormatDeviceState_UnclassifiedKeysOmitted(t *testing.T) {
	rec := NewRecord().
		Set("firmwareVersion", Text("1.2.3")).
		Set("uptimeHours", Number(5120))

	report := FormatDeviceState(rec, 0)

	assert.NotContains(t, report, "Firmware version")
	assert.NotContains(t, report, "Uptime hours")
}

func TestMaskSerial(t *testing.T) {
	assert.Equal(t, "*XYZ", MaskSerial("123456789012345678901234XYZ"))
	assert.Equal(t, "short", MaskSerial("short"))
	assert.Equal(t, "123456789012345678901234", MaskSerial("123456789012345678901234"))
}
