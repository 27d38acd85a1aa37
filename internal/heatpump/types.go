package heatpump

// Scale is the granularity of consumption data.
type Scale string

// Supported consumption granularities.
const (
	ScaleHourly  Scale = "hourly"
	ScaleDaily   Scale = "daily"
	ScaleMonthly Scale = "monthly"
)

// Valid reports whether s is a supported granularity.
func (s Scale) Valid() bool {
	return s == ScaleHourly || s == ScaleDaily || s == ScaleMonthly
}

// EnergyBucket holds one circuit's energy figures for a period, in Wh.
// Members are pointers because the API omits figures the device did not
// report.
type EnergyBucket struct {
	Electricity        *float64 `json:"electricity"`
	EnvironmentalYield *float64 `json:"environmentalYield"`
	Generated          *float64 `json:"generated"`
}

// ConsumptionPeriod is one reporting period. From and To are Unix
// timestamps in seconds.
type ConsumptionPeriod struct {
	From             int64         `json:"from"`
	To               int64         `json:"to"`
	CentralHeating   EnergyBucket  `json:"centralHeating"`
	DomesticHotWater *EnergyBucket `json:"domesticHotWater"`
}

// SystemConsumption is one system component's consumption series.
type SystemConsumption struct {
	SystemComponentSerialNumber string              `json:"systemComponentSerialNumber"`
	DeviceType                  string              `json:"deviceType"`
	TotalConsumption            float64             `json:"totalConsumption"`
	Consumptions                []ConsumptionPeriod `json:"consumptions"`
}

// DeviceLocation identifies where an unidentified device sits on the
// system bus.
type DeviceLocation struct {
	BusCouplerAddress int    `json:"busCouplerAddress"`
	EBusAddress       string `json:"ebusAddress"`
}

// TopologyDevice is one identified device in the system topology.
type TopologyDevice struct {
	SerialNumber  string `json:"serialNumber"`
	Type          string `json:"type"`
	SubType       string `json:"subType"`
	MarketingName string `json:"marketingName"`
	Nomenclature  string `json:"nomenclature"`
	ArticleNumber string `json:"articleNumber"`
}

// UnidentifiedDevice is a device the vendor backend could not resolve.
type UnidentifiedDevice struct {
	Type     string         `json:"type"`
	SubType  string         `json:"subType"`
	Location DeviceLocation `json:"location"`
}

// Topology describes all devices connected to a system.
type Topology struct {
	LastChangedAt       string               `json:"lastChangedAt"`
	LastDataReceivedAt  string               `json:"lastDataReceivedAt"`
	Devices             []TopologyDevice     `json:"devices"`
	UnidentifiedDevices []UnidentifiedDevice `json:"unidentifiedDevices,omitempty"`
}

// Override is a temporary central-heating override. Until is a Unix
// timestamp in seconds.
type Override struct {
	Enabled               bool     `json:"enabled"`
	Until                 *int64   `json:"until"`
	RoomTemperatureTarget *float64 `json:"roomTemperatureTarget"`
}

// CentralHeatingSettings is the heating circuit's configuration.
type CentralHeatingSettings struct {
	Enabled               *bool     `json:"enabled"`
	RoomTemperatureTarget *float64  `json:"roomTemperatureTarget"`
	UseSchedule           *bool     `json:"useSchedule"`
	PowerOutput           *float64  `json:"powerOutput"`
	PowerOutputMode       string    `json:"powerOutputMode"`
	ManualOverride        *Override `json:"manualOverride"`
	AwayOverride          *Override `json:"awayOverride"`
}

// Boost is a temporary hot-water boost. Until is a Unix timestamp in
// seconds.
type Boost struct {
	Enabled bool   `json:"enabled"`
	Until   *int64 `json:"until"`
}

// HotWaterSettings is the domestic hot water configuration.
type HotWaterSettings struct {
	TemperatureTarget *float64 `json:"temperatureTarget"`
	Boost             *Boost   `json:"boost"`
}

// SystemSettings is one device's current settings.
type SystemSettings struct {
	SerialNumber           string                  `json:"serialNumber"`
	Type                   string                  `json:"type"`
	Date                   string                  `json:"date"`
	Time                   string                  `json:"time"`
	HoursTillService       *int                    `json:"hoursTillService"`
	Mode                   string                  `json:"mode"`
	ActiveSchedule         string                  `json:"activeSchedule"`
	CentralHeating         *CentralHeatingSettings `json:"centralHeating"`
	DomesticHotWater       *HotWaterSettings       `json:"domesticHotWater"`
	TemperatureCorrections map[string]float64      `json:"temperatureCorrections,omitempty"`
}
