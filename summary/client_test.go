package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"solar-forecast-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() Request {
	return Request{
		City: "Zagreb",
		Today: models.TodaySnapshot{
			Date:            "2025-11-09",
			EstimatedEnergy: 4.9,
			CO2Savings:      2.2,
			SunlightQuality: 68.6,
			PeakSunHours:    2.5,
			Sunrise:         "06:47",
			Sunset:          "16:31",
		},
	}
}

func TestGenerate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "Zagreb")
		assert.Contains(t, req.Messages[1].Content, "4.9 kWh")

		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"A solid solar day in Zagreb."}}]}`)
	}))
	defer ts.Close()

	client := NewClient("test-key", ts.URL, "")
	text, err := client.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "A solid solar day in Zagreb.", text)
}

func TestGenerateNoAPIKey(t *testing.T) {
	client := NewClient("", "http://unused.invalid", "")
	_, err := client.Generate(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestGenerateServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewClient("test-key", ts.URL, "")
	_, err := client.Generate(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestGenerateTruncatedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Declare more body than is sent; the client sees the connection
		// close mid-read.
		w.Header().Set("Content-Length", "500")
		fmt.Fprint(w, `{"choices":`)
	}))
	defer ts.Close()

	client := NewClient("test-key", ts.URL, "")
	_, err := client.Generate(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestGenerateEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer ts.Close()

	client := NewClient("test-key", ts.URL, "")
	_, err := client.Generate(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrGeneration)
}
