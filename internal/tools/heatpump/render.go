package heatpump

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	heatpumpapi "github.com/cdinu/mcp-energy/internal/heatpump"
	"github.com/cdinu/mcp-energy/internal/telemetry"
)

// maxConsumptionPeriods caps the consumption table at two weeks of
// hourly data.
const maxConsumptionPeriods = 336

// kwh converts Wh to kWh rounded to one decimal.
func kwh(wh float64) float64 {
	return math.Round(wh/100) / 10
}

// cop is the coefficient of performance, rounded to one decimal. Zero
// electricity input yields zero rather than a division error.
func cop(generatedWh, electricityWh float64) float64 {
	if electricityWh <= 0 {
		return 0
	}
	return math.Round(generatedWh/electricityWh*10) / 10
}

func formatKWH(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// renderConsumption renders one system's consumption series as a
// per-period markdown table with summary totals.
func renderConsumption(system heatpumpapi.SystemConsumption, from, to time.Time, scale heatpumpapi.Scale) string {
	var b strings.Builder
	b.WriteString("# Heat Pump Energy Consumption\n\n")

	masked := telemetry.MaskSerial(system.SystemComponentSerialNumber)
	fmt.Fprintf(&b, "Device: %s (%s)\n", masked, system.DeviceType)
	fmt.Fprintf(&b, "Period: %s to %s\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
	fmt.Fprintf(&b, "Data granularity: %s\n", scale)
	fmt.Fprintf(&b, "Total consumption: %s kWh\n\n", formatKWH(kwh(system.TotalConsumption)))

	b.WriteString("## Detailed Consumption by Period\n\n")
	b.WriteString("| Period | CH Elec (kWh) | CH Env (kWh) | CH Heat (kWh) | CH COP | DHW Elec (kWh) | DHW Env (kWh) | DHW Heat (kWh) | DHW COP | Total Elec (kWh) | Total Heat (kWh) | Overall COP |\n")
	b.WriteString("|--------|--------------|--------------|---------------|--------|----------------|---------------|----------------|---------|-----------------|-----------------|------------|\n")

	shown := len(system.Consumptions)
	if shown > maxConsumptionPeriods {
		shown = maxConsumptionPeriods
	}

	var totalElec, totalEnv, totalHeat float64
	for _, period := range system.Consumptions[:shown] {
		periodStr := time.Unix(period.From, 0).Format("2006-01-02 15:04")

		chElec := deref(period.CentralHeating.Electricity)
		chEnv := deref(period.CentralHeating.EnvironmentalYield)
		chGen := deref(period.CentralHeating.Generated)

		var dhwElec, dhwEnv, dhwGen float64
		if period.DomesticHotWater != nil {
			dhwElec = deref(period.DomesticHotWater.Electricity)
			dhwEnv = deref(period.DomesticHotWater.EnvironmentalYield)
			dhwGen = deref(period.DomesticHotWater.Generated)
		}

		periodElec := chElec + dhwElec
		periodHeat := chGen + dhwGen

		totalElec += periodElec
		totalEnv += chEnv + dhwEnv
		totalHeat += periodHeat

		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			periodStr,
			formatKWH(kwh(chElec)), formatKWH(kwh(chEnv)), formatKWH(kwh(chGen)), formatKWH(cop(chGen, chElec)),
			formatKWH(kwh(dhwElec)), formatKWH(kwh(dhwEnv)), formatKWH(kwh(dhwGen)), formatKWH(cop(dhwGen, dhwElec)),
			formatKWH(kwh(periodElec)), formatKWH(kwh(periodHeat)), formatKWH(cop(periodHeat, periodElec)))
	}

	if len(system.Consumptions) > shown {
		fmt.Fprintf(&b, "\n*Note: Showing %d of %d periods.*\n\n", shown, len(system.Consumptions))
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "Total electricity consumed: %s kWh\n", formatKWH(kwh(totalElec)))
	fmt.Fprintf(&b, "Total environmental yield: %s kWh\n", formatKWH(kwh(totalEnv)))
	fmt.Fprintf(&b, "Total heat generated: %s kWh\n", formatKWH(kwh(totalHeat)))

	b.WriteString("\n**Column Definitions:**\n")
	b.WriteString("- **CH**: Central Heating\n")
	b.WriteString("- **DHW**: Domestic Hot Water\n")
	b.WriteString("- **Elec**: Electricity Consumption kWh\n")
	b.WriteString("- **Env**: Environmental Yield kWh\n")
	b.WriteString("- **Heat**: Heating Total kWh\n")
	b.WriteString("*Heat pumps extract energy from the environment (air/ground) and use electricity to convert it to usable heat. The Coefficient of Performance (COP) measures efficiency - a COP of 3.5 means 3.5 units of heat produced for every 1 unit of electricity used.*\n\n")

	if totalElec > 0 {
		fmt.Fprintf(&b, "Overall COP: %s\n", formatKWH(cop(totalHeat, totalElec)))
	}

	return b.String()
}

// diagField is one curated diagnostics reading: record key, display
// label and unit suffix.
type diagField struct {
	key   string
	label string
	unit  string
}

var diagStatusFields = []struct {
	key   string
	label string
	yesNo bool
}{
	{key: "compressorActive", label: "Compressor"},
	{key: "heatingPumpActive", label: "Heating pump"},
	{key: "blocked", label: "System blocked", yesNo: true},
	{key: "frostProtectionActive", label: "Frost protection"},
	{key: "sanitaryOrLoadingPumpActive", label: "Sanitary/loading pump"},
	{key: "solarPumpActive", label: "Solar pump"},
}

var diagTemperatureFields = []diagField{
	{"outdoorTemperature", "Outdoor temperature", "°C"},
	{"flowTemperature", "Flow temperature", "°C"},
	{"returnTemperature", "Return temperature", "°C"},
	{"airInletTemperature", "Air inlet temperature", "°C"},
	{"evaporationTemperature", "Evaporation temperature", "°C"},
	{"condensationTemperature", "Condensation temperature", "°C"},
	{"heatExchangerInletTemperature", "Heat exchanger inlet temperature", "°C"},
	{"heatExchangerOutletTemperature", "Heat exchanger outlet temperature", "°C"},
	{"inletTemperature", "Inlet temperature", "°C"},
	{"outletTemperature", "Outlet temperature", "°C"},
	{"roomTemperature", "Room temperature", "°C"},
	{"roomTemperatureTarget", "Room temperature target", "°C"},
}

var diagPerformanceFields = []diagField{
	{"operatingHours", "Operating hours", " hours"},
	{"compressorStarts", "Compressor starts", ""},
	{"safetyRelayCommutations", "Safety relay commutations", ""},
	{"safetyRelayOperatingHours", "Safety relay operating hours", " hours"},
}

var diagComponentFields = []diagField{
	{"electronicExpansionValvePosition", "Electronic expansion valve position", "%"},
	{"frequencySignal", "Frequency signal", " Hz"},
	{"waterPressure", "Water pressure", " bar"},
	{"highPressureSensor", "High pressure sensor", " bar"},
	{"desiredFlowTemperature", "Desired flow temperature", "°C"},
	{"heatingDemand", "Heating demand", "%"},
}

var diagRefrigerantFields = []diagField{
	{"currentSubcooling", "Current subcooling", "K"},
	{"setpointSubcooling", "Setpoint subcooling", "K"},
	{"currentSuperheating", "Current superheating", "K"},
	{"targetSuperheating", "Target superheating", "K"},
	{"condenserDeltaTemperature", "Condenser delta temperature", "K"},
}

func writeDiagFields(b *strings.Builder, rec *telemetry.Record, fields []diagField) {
	for _, f := range fields {
		if v, ok := rec.Number(f.key); ok {
			fmt.Fprintf(b, "- %s: %s%s\n", f.label, formatNumber(v), f.unit)
		}
	}
}

// renderDiagnostics renders each device's diagnostics record through
// the curated field tables. Keys outside the tables are ignored; keys
// the device did not report are skipped.
func renderDiagnostics(records []*telemetry.Record) string {
	var b strings.Builder
	b.WriteString("# Heat Pump Advanced Diagnostics\n\n")

	for _, rec := range records {
		if serial, ok := rec.Text("serialNumber"); ok {
			fmt.Fprintf(&b, "## Device: %s\n", telemetry.MaskSerial(serial))
		}

		b.WriteString("## System Status\n\n")
		for _, f := range diagStatusFields {
			v, ok := rec.Bool(f.key)
			if !ok {
				continue
			}
			if f.yesNo {
				text := "No"
				if v {
					text = "Yes"
				}
				fmt.Fprintf(&b, "- %s: %s\n", f.label, text)
			} else {
				text := "Inactive"
				if v {
					text = "Active"
				}
				fmt.Fprintf(&b, "- %s: %s\n", f.label, text)
			}
		}

		b.WriteString("\n## Temperature Readings\n\n")
		writeDiagFields(&b, rec, diagTemperatureFields)

		b.WriteString("\n## Performance Metrics\n\n")
		writeDiagFields(&b, rec, diagPerformanceFields)

		b.WriteString("\n## Component Settings\n\n")
		writeDiagFields(&b, rec, diagComponentFields)
		if v, ok := rec.Number("fanSpeed"); ok {
			units, hasUnits := rec.Text("fanUnits")
			if !hasUnits || units == "" {
				units = "rpm"
			}
			fmt.Fprintf(&b, "- Fan speed: %s %s\n", formatNumber(v), units)
		}

		b.WriteString("\n## Refrigerant Circuit\n\n")
		writeDiagFields(&b, rec, diagRefrigerantFields)
	}

	return b.String()
}

// renderTopology renders the system topology as device tables with
// masked serials.
func renderTopology(topo *heatpumpapi.Topology) string {
	var b strings.Builder
	b.WriteString("# Heat Pump System Topology\n\n")

	fmt.Fprintf(&b, "Last changed at: %s\n", topo.LastChangedAt)
	fmt.Fprintf(&b, "Last data received at: %s\n\n", topo.LastDataReceivedAt)

	fmt.Fprintf(&b, "## Devices (%d)\n\n", len(topo.Devices))

	if len(topo.Devices) == 0 {
		b.WriteString("No devices found in the system.\n")
	} else {
		b.WriteString("| Serial Number | Type | Subtype | Marketing Name | Nomenclature | Article Number |\n")
		b.WriteString("|---------------|------|---------|----------------|--------------|----------------|\n")
		for _, device := range topo.Devices {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				telemetry.MaskSerial(device.SerialNumber), device.Type,
				orNA(device.SubType), orNA(device.MarketingName),
				orNA(device.Nomenclature), orNA(device.ArticleNumber))
		}
	}

	if len(topo.UnidentifiedDevices) > 0 {
		fmt.Fprintf(&b, "\n## Unidentified Devices (%d)\n\n", len(topo.UnidentifiedDevices))
		b.WriteString("| Type | Subtype | Bus Coupler Address | eBUS Address |\n")
		b.WriteString("|------|---------|---------------------|-------------|\n")
		for _, device := range topo.UnidentifiedDevices {
			fmt.Fprintf(&b, "| %s | %s | %d | %s |\n",
				device.Type, device.SubType,
				device.Location.BusCouplerAddress, device.Location.EBusAddress)
		}
	}

	return b.String()
}

func formatUnix(ts int64) string {
	return time.Unix(ts, 0).Format("2006-01-02 15:04:05")
}

func writeOverride(b *strings.Builder, title string, o *heatpumpapi.Override) {
	if o == nil {
		return
	}
	fmt.Fprintf(b, "\n#### %s\n\n", title)
	fmt.Fprintf(b, "- Enabled: %t\n", o.Enabled)
	if o.Until != nil {
		fmt.Fprintf(b, "- Until: %s\n", formatUnix(*o.Until))
	}
	if o.RoomTemperatureTarget != nil {
		fmt.Fprintf(b, "- Room temperature target: %s°C\n", formatNumber(*o.RoomTemperatureTarget))
	}
}

// renderSettings renders each device's settings as titled sections.
func renderSettings(settings []heatpumpapi.SystemSettings) string {
	var b strings.Builder
	b.WriteString("# Heat Pump System Settings\n\n")

	for _, s := range settings {
		fmt.Fprintf(&b, "## Device: %s (%s)\n\n", telemetry.MaskSerial(s.SerialNumber), s.Type)

		b.WriteString("### General Settings\n\n")
		if s.Date != "" {
			fmt.Fprintf(&b, "- Date: %s\n", s.Date)
		}
		if s.Time != "" {
			fmt.Fprintf(&b, "- Time: %s\n", s.Time)
		}
		if s.HoursTillService != nil {
			fmt.Fprintf(&b, "- Hours till service: %d\n", *s.HoursTillService)
		}
		if s.Mode != "" {
			fmt.Fprintf(&b, "- Mode: %s\n", s.Mode)
		}
		if s.ActiveSchedule != "" {
			fmt.Fprintf(&b, "- Active schedule: %s\n", s.ActiveSchedule)
		}

		if ch := s.CentralHeating; ch != nil {
			b.WriteString("\n### Central Heating\n\n")
			if ch.Enabled != nil {
				fmt.Fprintf(&b, "- Enabled: %t\n", *ch.Enabled)
			}
			if ch.RoomTemperatureTarget != nil {
				fmt.Fprintf(&b, "- Room temperature target: %s°C\n", formatNumber(*ch.RoomTemperatureTarget))
			}
			if ch.UseSchedule != nil {
				fmt.Fprintf(&b, "- Use schedule: %t\n", *ch.UseSchedule)
			}
			if ch.PowerOutput != nil {
				fmt.Fprintf(&b, "- Power output: %s\n", formatNumber(*ch.PowerOutput))
			}
			if ch.PowerOutputMode != "" {
				fmt.Fprintf(&b, "- Power output mode: %s\n", ch.PowerOutputMode)
			}
			writeOverride(&b, "Manual Override", ch.ManualOverride)
			writeOverride(&b, "Away Override", ch.AwayOverride)
		}

		if dhw := s.DomesticHotWater; dhw != nil {
			b.WriteString("\n### Domestic Hot Water\n\n")
			if dhw.TemperatureTarget != nil {
				fmt.Fprintf(&b, "- Temperature target: %s°C\n", formatNumber(*dhw.TemperatureTarget))
			}
			if dhw.Boost != nil {
				b.WriteString("\n#### Boost\n\n")
				fmt.Fprintf(&b, "- Enabled: %t\n", dhw.Boost.Enabled)
				if dhw.Boost.Until != nil {
					fmt.Fprintf(&b, "- Until: %s\n", formatUnix(*dhw.Boost.Until))
				}
			}
		}

		if len(s.TemperatureCorrections) > 0 {
			b.WriteString("\n### Temperature Corrections\n\n")
			for _, key := range sortedKeys(s.TemperatureCorrections) {
				fmt.Fprintf(&b, "- %s: %s\n", key, formatNumber(s.TemperatureCorrections[key]))
			}
		}

		b.WriteString("\n---\n\n")
	}

	return b.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// renderState renders each device's schema-less state record.
func renderState(records []*telemetry.Record) string {
	var b strings.Builder
	b.WriteString("# Heat Pump System State\n\n")
	for i, rec := range records {
		b.WriteString(telemetry.FormatDeviceState(rec, i))
	}
	return b.String()
}
