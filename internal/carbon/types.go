package carbon

// ForecastHours is the forecast window the intensity endpoints accept.
type ForecastHours string

// Supported forecast windows.
const (
	Forecast24h ForecastHours = "24"
	Forecast48h ForecastHours = "48"
)

// Valid reports whether h is one of the supported windows.
func (h ForecastHours) Valid() bool {
	return h == Forecast24h || h == Forecast48h
}

// Intensity is a carbon intensity reading in gCO2/kWh. Forecast and
// Actual are pointers because the API omits whichever side of "now"
// does not apply.
type Intensity struct {
	Forecast *int   `json:"forecast"`
	Actual   *int   `json:"actual"`
	Index    string `json:"index"`
}

// FuelMix is one fuel's share of generation, in percent.
type FuelMix struct {
	Fuel string  `json:"fuel"`
	Perc float64 `json:"perc"`
}

// Period is one half-hourly settlement period.
type Period struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	Intensity     Intensity `json:"intensity"`
	GenerationMix []FuelMix `json:"generationmix,omitempty"`
}

// Region is a DNO region's intensity data, as returned by the regional
// endpoints.
type Region struct {
	RegionID  int      `json:"regionid"`
	DNORegion string   `json:"dnoregion"`
	ShortName string   `json:"shortname"`
	Postcode  string   `json:"postcode"`
	Data      []Period `json:"data"`
}

// Wire envelopes. The API wraps every payload in a "data" member whose
// shape differs per endpoint.
type (
	regionalListResponse struct {
		Data []Region `json:"data"`
	}
	regionalResponse struct {
		Data Region `json:"data"`
	}
	nationalResponse struct {
		Data []Period `json:"data"`
	}
	generationResponse struct {
		Data Period `json:"data"`
	}
)
