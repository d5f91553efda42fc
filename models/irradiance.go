package models

// DailyIrradiance represents one day of raw irradiance data from a provider.
// Values are in Wh/m² as delivered; conversion to kWh/m² happens in the
// forecast calculator, not here.
type DailyIrradiance struct {
	Date          string  `json:"date"`        // calendar date, YYYY-MM-DD
	GhiClearWh    float64 `json:"ghiClearWh"`  // clear-sky GHI, Wh/m²
	GhiCloudyWh   float64 `json:"ghiCloudyWh"` // cloud-adjusted GHI, Wh/m²
	Sunrise       string  `json:"sunrise"`     // "HH:MM"
	Sunset        string  `json:"sunset"`      // "HH:MM"
	UsedFallback  bool    `json:"usedFallback,omitempty"`
}

// IrradianceData represents a resolved location plus its per-day irradiance
// series from a provider.
type IrradianceData struct {
	Provider  string            `json:"provider"`
	Location  string            `json:"location"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Days      []DailyIrradiance `json:"days"`
}
