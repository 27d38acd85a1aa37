package carbon

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	carbonapi "github.com/cdinu/mcp-energy/internal/carbon"
)

// fuelTitle renders API fuel names ("gas", "wind") as display names.
var fuelTitle = cases.Title(language.English)

func formatPerc(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func intensityValue(i carbonapi.Intensity) string {
	if i.Forecast != nil {
		return strconv.Itoa(*i.Forecast)
	}
	return "N/A"
}

func intensityIndex(i carbonapi.Intensity) string {
	if i.Index == "" {
		return "N/A"
	}
	return i.Index
}

// writeGenerationMix appends the non-zero fuels of mix as a bullet list.
func writeGenerationMix(b *strings.Builder, mix []carbonapi.FuelMix) {
	for _, fuel := range mix {
		if fuel.Perc > 0 {
			fmt.Fprintf(b, "- %s: %s%%\n", fuelTitle.String(fuel.Fuel), formatPerc(fuel.Perc))
		}
	}
}

// renderCurrentIntensity renders the current half-hour's intensity and
// generation mix for one region.
func renderCurrentIntensity(rawPostcode, outward string, region *carbonapi.Region) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Carbon intensity for %s (outward code: %s, %s):\n\n", rawPostcode, outward, region.ShortName)

	if len(region.Data) == 0 {
		b.WriteString("No carbon intensity data available.\n")
		return b.String()
	}

	period := region.Data[0]
	fmt.Fprintf(&b, "Time period: %s to %s\n", period.From, period.To)
	fmt.Fprintf(&b, "Carbon intensity: %s gCO2/kWh (%s level)\n\n", intensityValue(period.Intensity), intensityIndex(period.Intensity))

	b.WriteString("Generation mix:\n")
	writeGenerationMix(&b, period.GenerationMix)
	return b.String()
}

func writeForecastLines(b *strings.Builder, periods []carbonapi.Period) {
	for i, period := range periods {
		fmt.Fprintf(b, "%d. %s to %s: %s  %s\n", i+1, period.From, period.To,
			intensityValue(period.Intensity), intensityIndex(period.Intensity))
	}
}

// renderRegionalForecast renders a region's forecast as a numbered list.
func renderRegionalForecast(rawPostcode, outward string, from time.Time, hours carbonapi.ForecastHours, region *carbonapi.Region) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Carbon intensity forecast for %s (outward code: %s, %s) for %s hours from %s:\n\n",
		rawPostcode, outward, region.ShortName, hours, from.Format(time.RFC3339))
	writeForecastLines(&b, region.Data)
	return b.String()
}

// renderNationalForecastInline is the national fallback of the
// postcode forecast tool.
func renderNationalForecastInline(from time.Time, hours carbonapi.ForecastHours, periods []carbonapi.Period) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**National** carbon intensity forecast for %s hours from %s in gCO2/kWh and its intensity:\n\n",
		hours, from.Format(time.RFC3339))
	writeForecastLines(&b, periods)
	return b.String()
}

// renderNationalForecast renders the national forecast tool output in
// list or table format.
func renderNationalForecast(from time.Time, hours carbonapi.ForecastHours, format string, periods []carbonapi.Period) string {
	var b strings.Builder
	b.WriteString("# UK National Carbon Intensity Forecast\n\n")
	fmt.Fprintf(&b, "Starting from: %s\n", from.Format(time.RFC3339))
	fmt.Fprintf(&b, "Forecast duration: %s hours\n\n", hours)

	if format == "list" {
		for i, period := range periods {
			fmt.Fprintf(&b, "%d. %s to %s: %s gCO2/kWh (%s level)\n", i+1, period.From, period.To,
				intensityValue(period.Intensity), intensityIndex(period.Intensity))
		}
		return b.String()
	}

	// Table format, with interpretation notes for LLM consumers.
	b.WriteString("*Carbon intensity measures how much CO2 is emitted per unit of electricity generated (gCO2/kWh).*\n")
	b.WriteString("*Lower values are better for the environment. Index ranges: very low, low, moderate, high, very high.*\n\n")

	b.WriteString("| # | From | To | Forecast (gCO2/kWh) | Intensity Level |\n")
	b.WriteString("|---|------|----|--------------------|----------------|\n")
	for i, period := range periods {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1, period.From, period.To,
			intensityValue(period.Intensity), intensityIndex(period.Intensity))
	}
	return b.String()
}

// renderGenerationMix renders the national generation mix sorted by
// share, largest first, skipping fuels at zero percent.
func renderGenerationMix(period *carbonapi.Period) string {
	var b strings.Builder
	fmt.Fprintf(&b, "UK National Generation Mix (%s to %s):\n\n", period.From, period.To)

	mix := make([]carbonapi.FuelMix, len(period.GenerationMix))
	copy(mix, period.GenerationMix)
	sort.SliceStable(mix, func(i, j int) bool { return mix[i].Perc > mix[j].Perc })

	writeGenerationMix(&b, mix)
	return b.String()
}
