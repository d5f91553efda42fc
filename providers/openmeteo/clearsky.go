package openmeteo

import (
	"math"
	"time"
)

// Simplified clear-sky model (Haurwitz). Good to a few percent for a clear
// atmosphere, which is all the quality ratio needs as a ceiling. This is not
// a panel simulator: no turbidity, altitude or refraction terms.

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// solarDeclination returns the declination in degrees for a day of year.
func solarDeclination(dayOfYear int) float64 {
	return -23.44 * math.Cos(degToRad(360.0/365.0*(float64(dayOfYear)+10.0)))
}

// haurwitzGHI returns clear-sky global horizontal irradiance in W/m² for a
// given cosine of the solar zenith angle.
func haurwitzGHI(cosZenith float64) float64 {
	if cosZenith <= 0 {
		return 0
	}
	return 1098.0 * cosZenith * math.Exp(-0.057/cosZenith)
}

// DailyClearSkyWh integrates the clear-sky GHI over one day for a latitude,
// sampling at the middle of each hour. Result is Wh/m².
func DailyClearSkyWh(latitude float64, day time.Time) float64 {
	decl := degToRad(solarDeclination(day.YearDay()))
	lat := degToRad(latitude)

	var totalWh float64
	for hour := 0; hour < 24; hour++ {
		// Hour angle relative to solar noon, 15° per hour.
		ha := degToRad(15.0 * (float64(hour) + 0.5 - 12.0))
		cosZen := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(ha)
		totalWh += haurwitzGHI(cosZen) // W/m² over one hour = Wh/m²
	}
	return math.Round(totalWh)
}
