package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

func main() {
	fmt.Println("Solar Forecast API Client Example")
	fmt.Println("=================================")

	// Base URL for the API
	baseURL := "http://localhost:8080"

	// Request a forecast for a city with the default home parameters
	fmt.Println("\nRequesting a forecast for Zagreb...")
	forecastBody, _ := json.Marshal(map[string]interface{}{
		"city":            "Zagreb",
		"roofArea":        40,
		"panelEfficiency": 20,
	})
	forecastResp, err := http.Post(fmt.Sprintf("%s/api/forecast", baseURL),
		"application/json", bytes.NewReader(forecastBody))
	if err != nil {
		fmt.Printf("Error requesting forecast: %v\n", err)
		os.Exit(1)
	}
	defer forecastResp.Body.Close()

	if forecastResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(forecastResp.Body)
		fmt.Printf("Forecast request failed (%s): %s\n", forecastResp.Status, string(body))
		os.Exit(1)
	}

	var forecastData map[string]interface{}
	body, _ := io.ReadAll(forecastResp.Body)
	json.Unmarshal(body, &forecastData)

	prettyJSON, _ := json.MarshalIndent(forecastData["today"], "", "  ")
	fmt.Printf("\nToday's snapshot:\n%s\n", string(prettyJSON))

	// Get available locations
	fmt.Println("\nFetching available locations...")
	locationsResp, err := http.Get(fmt.Sprintf("%s/api/forecast/locations", baseURL))
	if err != nil {
		fmt.Printf("Error fetching locations: %v\n", err)
		os.Exit(1)
	}
	defer locationsResp.Body.Close()

	var locationsData map[string]interface{}
	locationsBody, _ := io.ReadAll(locationsResp.Body)
	json.Unmarshal(locationsBody, &locationsData)

	fmt.Printf("Available locations: %v\n", locationsData["locations"])

	var locations []interface{}
	if locs, ok := locationsData["locations"].([]interface{}); ok {
		locations = locs
	}
	if len(locations) == 0 {
		fmt.Println("No locations available yet. Try again later.")
		return
	}

	// Get the stored forecast for the first location
	location := locations[0].(string)
	fmt.Printf("\nFetching stored forecast for %s...\n", location)
	storedResp, err := http.Get(fmt.Sprintf("%s/api/forecast/location/%s",
		baseURL, url.PathEscape(location)))
	if err != nil {
		fmt.Printf("Error fetching forecast: %v\n", err)
		os.Exit(1)
	}
	defer storedResp.Body.Close()

	var storedData map[string]interface{}
	storedBody, _ := io.ReadAll(storedResp.Body)
	json.Unmarshal(storedBody, &storedData)

	if days, ok := storedData["days"].([]interface{}); ok {
		fmt.Printf("Forecast covers %d day(s)\n", len(days))
	}

	// Estimate savings from the stored forecast
	fmt.Println("\nEstimating savings at $0.20/kWh...")
	savingsBody, _ := json.Marshal(map[string]interface{}{
		"electricityRate": 0.20,
	})
	savingsResp, err := http.Post(fmt.Sprintf("%s/api/savings", baseURL),
		"application/json", bytes.NewReader(savingsBody))
	if err != nil {
		fmt.Printf("Error estimating savings: %v\n", err)
		os.Exit(1)
	}
	defer savingsResp.Body.Close()

	var savingsData map[string]interface{}
	savingsRespBody, _ := io.ReadAll(savingsResp.Body)
	json.Unmarshal(savingsRespBody, &savingsData)

	prettySavings, _ := json.MarshalIndent(savingsData, "", "  ")
	fmt.Printf("\nSavings for %s:\n%s\n", location, string(prettySavings))
}
