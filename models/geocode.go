package models

import "fmt"

// CityCandidate is one geocoding match for a free-text city query.
// Candidates are ephemeral: a selection finalizes into the location fields of
// a forecast request.
type CityCandidate struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Display returns the "Name, Country" form shown in pick lists.
func (c CityCandidate) Display() string {
	if c.Country == "" {
		return c.Name
	}
	return fmt.Sprintf("%s, %s", c.Name, c.Country)
}
