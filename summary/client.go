// Package summary is the text-generation boundary: it turns a computed today
// snapshot into a short natural-language insight via an OpenAI-compatible
// chat-completions endpoint. Failures surface as a generic generation error;
// retrying is the caller's decision.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"solar-forecast-service/models"
)

// ErrGeneration is returned for any failure mode of the summary boundary.
var ErrGeneration = errors.New("summary: could not generate")

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	avgHouseholdDailyKwh = 30.0
	assumedRatePerKwh    = 0.15
)

// Client calls the text-generation service.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a summary client. baseURL and model may be empty to use
// the defaults.
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

// Request carries the computed metrics the summary is written from.
type Request struct {
	City  string
	Today models.TodaySnapshot
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate produces the insight text for a today snapshot.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: no API key configured", ErrGeneration)
	}

	householdHours := req.Today.EstimatedEnergy / avgHouseholdDailyKwh * 24
	monthlyValue := req.Today.EstimatedEnergy * assumedRatePerKwh * 30
	yearlyValue := req.Today.EstimatedEnergy * assumedRatePerKwh * 365

	prompt := fmt.Sprintf(`You are a solar energy advisor helping homeowners understand their solar investment potential in simple, relatable terms.

Based on this data for %s on %s:
- Energy output: %.1f kWh today
- CO₂ savings: %.1f kg today
- Sunlight quality: %.1f%% of clear-sky potential
- Peak sun hours: %.1f hours
- Sunrise: %s, Sunset: %s

Write a compelling 3-4 sentence insight that:
1. Interprets what %.1f kWh means for a homeowner's daily life (hint: average home uses %.0f kWh/day, so this can power a home for %.1f hours)
2. Translates the environmental impact into something meaningful (%.1f kg CO₂ saved)
3. Explains the financial value - estimated $%.0f/month or $%.0f/year in electricity savings (at $%.2f/kWh)
4. Provides actionable insight: is this a good solar day? What does this mean for their investment?

Make it conversational, encouraging, and focused on "what this means for YOUR wallet and the planet." Avoid just listing numbers - interpret them.`,
		req.City, req.Today.Date,
		req.Today.EstimatedEnergy, req.Today.CO2Savings,
		req.Today.SunlightQuality, req.Today.PeakSunHours,
		req.Today.Sunrise, req.Today.Sunset,
		req.Today.EstimatedEnergy, avgHouseholdDailyKwh, householdHours,
		req.Today.CO2Savings,
		monthlyValue, yearlyValue, assumedRatePerKwh)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are SolarMind, a friendly solar energy advisor who helps homeowners understand the real-world value of solar energy. You translate technical data into meaningful insights about savings, environmental impact, and smart investment decisions. Always be encouraging and focus on practical benefits.",
			},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 300,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrGeneration, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrGeneration, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrGeneration, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: non-2xx status %s", ErrGeneration, resp.Status)
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGeneration, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return out.Choices[0].Message.Content, nil
}
