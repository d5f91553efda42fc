package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"solar-forecast-service/datasource"
	"solar-forecast-service/forecast"
	"solar-forecast-service/geocode"
	"solar-forecast-service/models"
	"solar-forecast-service/savings"
	"solar-forecast-service/summary"
	"solar-forecast-service/validate"
)

// Action names used by the per-action cooldown.
const (
	ActionForecast = "forecast"
	ActionRefresh  = "refresh"
)

// errLiveUnavailable means live mode was requested but no live source is
// configured. The request is rejected rather than silently served from the
// static dataset.
var errLiveUnavailable = errors.New("live data source not configured")

// Server represents the API server
type Server struct {
	store      *ForecastStore
	calculator *forecast.Calculator
	resolver   *geocode.Resolver
	cached     datasource.IrradianceSource
	live       datasource.IrradianceSource
	summarizer *summary.Client
	cooldown   *Cooldown
	server     *http.Server
}

// NewServer creates a new API server. live may be nil when only cached mode
// is configured; summarizer may be nil when no summary key is configured.
func NewServer(
	store *ForecastStore,
	calculator *forecast.Calculator,
	resolver *geocode.Resolver,
	cached, live datasource.IrradianceSource,
	summarizer *summary.Client,
	port int,
) *Server {
	s := &Server{
		store:      store,
		calculator: calculator,
		resolver:   resolver,
		cached:     cached,
		live:       live,
		summarizer: summarizer,
		cooldown:   NewCooldown(DefaultCooldownWindow),
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// routes wires middlewares and endpoints.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Post("/forecast", s.handleForecast)
		api.Post("/forecast/refresh", s.handleRefresh)
		api.Post("/forecast/recalculate", s.handleRecalculate)
		api.Get("/forecast/locations", s.handleLocations)
		api.Get("/forecast/location/{location}", s.handleForecastByLocation)

		api.Get("/geocode", s.handleGeocode)
		api.Post("/savings", s.handleSavings)
		api.Post("/summary", s.handleSummary)
		api.Get("/health", s.handleHealth)
	})

	return r
}

// Start begins the API server
func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the API server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// forecastRequest is the body of POST /api/forecast.
type forecastRequest struct {
	City            string  `json:"city"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	RoofArea        float64 `json:"roofArea"`
	SystemSize      float64 `json:"systemSize"`
	PanelEfficiency float64 `json:"panelEfficiency"` // percent; 0 means default
	DataMode        string  `json:"dataMode"`        // "cached" or "live"
}

// recalculateRequest is the body of POST /api/forecast/recalculate.
type recalculateRequest struct {
	RoofArea        float64 `json:"roofArea"`
	PanelEfficiency float64 `json:"panelEfficiency"` // percent; 0 means default
}

// savingsRequest is the body of POST /api/savings.
type savingsRequest struct {
	ElectricityRate float64 `json:"electricityRate"`
	SystemCost      float64 `json:"systemCost"` // 0 means roof-area estimate
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	var req forecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.cooldown.Check(ActionForecast); err != nil {
		writeCooldown(w, err)
		return
	}

	if err := validateForecastInput(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.runForecast(r.Context(), req)
	if err != nil {
		s.writeForecastError(w, err)
		return
	}

	// Only a completed forecast starts the window; a failed attempt stays
	// immediately retryable.
	s.cooldown.Commit(ActionForecast)
	s.store.Update(result)
	writeJSON(w, http.StatusOK, result)
}

// runForecast resolves the location if needed, fetches irradiance and
// computes the result. A failed location resolution blocks the whole
// pipeline; no partial forecast is produced.
func (s *Server) runForecast(ctx context.Context, req forecastRequest) (models.ForecastResult, error) {
	loc := forecast.Location{
		Name:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	if loc.Latitude == 0 && loc.Longitude == 0 {
		candidates, err := s.resolver.Search(ctx, req.City)
		if err != nil {
			return models.ForecastResult{}, err
		}
		if len(candidates) == 0 {
			return models.ForecastResult{}, geocode.ErrNoResults
		}
		top := candidates[0]
		loc = forecast.Location{
			Name:      top.Display(),
			Latitude:  top.Latitude,
			Longitude: top.Longitude,
		}
	}

	source := s.cached
	mode := "cached"
	if strings.EqualFold(req.DataMode, "live") {
		if s.live == nil {
			return models.ForecastResult{}, errLiveUnavailable
		}
		source = s.live
		mode = "live"
	}

	data, err := source.FetchIrradiance(ctx, loc.Name, loc.Latitude, loc.Longitude)
	if err != nil {
		return models.ForecastResult{}, fmt.Errorf("irradiance fetch failed: %w", err)
	}

	// The static source answers with its own location; keep what it reports.
	loc.Name = data.Location
	loc.Latitude = data.Latitude
	loc.Longitude = data.Longitude

	params := forecast.Params{
		RoofAreaM2:      req.RoofArea,
		PanelEfficiency: req.PanelEfficiency / 100,
	}
	result := s.calculator.Compute(loc, data.Days, params)
	result.DataMode = mode
	return result, nil
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.cooldown.Check(ActionRefresh); err != nil {
		writeCooldown(w, err)
		return
	}

	prev, exists := s.store.Latest()
	if !exists {
		writeError(w, http.StatusNotFound, "no forecast to refresh")
		return
	}

	// Re-run the stored request as-is, including its data mode; a live
	// forecast must refresh from the live source.
	req := forecastRequest{
		City:            prev.Location,
		Latitude:        prev.Latitude,
		Longitude:       prev.Longitude,
		RoofArea:        prev.RoofAreaM2,
		PanelEfficiency: prev.PanelEfficiency * 100,
		DataMode:        prev.DataMode,
	}
	result, err := s.runForecast(r.Context(), req)
	if err != nil {
		s.writeForecastError(w, err)
		return
	}

	s.cooldown.Commit(ActionRefresh)
	s.store.Update(result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	var req recalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Check(validate.FieldRoofArea, req.RoofArea); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.PanelEfficiency != 0 {
		if err := validate.Check(validate.FieldPanelEfficiency, req.PanelEfficiency); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	prev, exists := s.store.Latest()
	if !exists {
		writeError(w, http.StatusNotFound, "no forecast to recalculate")
		return
	}

	// An omitted efficiency keeps the stored one rather than falling back to
	// the calculator default.
	eff := req.PanelEfficiency / 100
	if req.PanelEfficiency == 0 {
		eff = prev.PanelEfficiency
	}

	// Reuses the previously fetched irradiance; no provider call happens on
	// this path.
	result := s.calculator.Recalculate(prev, forecast.Params{
		RoofAreaM2:      req.RoofArea,
		PanelEfficiency: eff,
	})
	s.store.Update(result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	locations := s.store.AllLocations()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"locations": locations,
		"count":     len(locations),
	})
}

func (s *Server) handleForecastByLocation(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")
	result, exists := s.store.GetByLocation(location)
	if !exists {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no forecast data found for location: %s", location))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	candidates, err := s.resolver.Search(r.Context(), query)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"query":      query,
			"candidates": candidates,
		})
	case errors.Is(err, geocode.ErrNoResults):
		writeError(w, http.StatusNotFound, "city not found, please select from the list")
	case errors.Is(err, geocode.ErrSuperseded):
		// A newer query replaced this one; nothing to report.
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusBadGateway, "city lookup failed, please try again")
	}
}

func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	var req savingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Check(validate.FieldElectricityRate, req.ElectricityRate); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SystemCost != 0 {
		if err := validate.Check(validate.FieldSystemCost, req.SystemCost); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, exists := s.store.Latest()
	if !exists {
		writeError(w, http.StatusNotFound, "no forecast available")
		return
	}

	systemCost := req.SystemCost
	if systemCost == 0 {
		systemCost = savings.EstimateSystemCost(result.RoofAreaM2)
	}

	breakdown := savings.Breakdown(result.Today.EstimatedEnergy, req.ElectricityRate, systemCost)
	impact := savings.Impact(result.Today.EstimatedEnergy, result.Today.CO2Savings)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"location":  result.Location,
		"breakdown": breakdown,
		"impact":    impact,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, exists := s.store.Latest()
	if !exists {
		writeError(w, http.StatusNotFound, "no forecast available")
		return
	}

	if s.summarizer == nil {
		writeError(w, http.StatusBadGateway, "could not generate summary")
		return
	}

	text, err := s.summarizer.Generate(r.Context(), summary.Request{
		City:  result.Location,
		Today: result.Today,
	})
	if err != nil {
		log.Printf("Summary generation failed: %v", err)
		writeError(w, http.StatusBadGateway, "could not generate summary")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": text})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// validateForecastInput checks the user-entered home parameters. Out-of-range
// values are rejected, never clamped.
func validateForecastInput(req forecastRequest) error {
	if req.City == "" && req.Latitude == 0 && req.Longitude == 0 {
		return errors.New("city or coordinates required")
	}
	if err := validate.Check(validate.FieldRoofArea, req.RoofArea); err != nil {
		return err
	}
	if req.SystemSize != 0 {
		if err := validate.Check(validate.FieldSystemSize, req.SystemSize); err != nil {
			return err
		}
	}
	if req.PanelEfficiency != 0 {
		if err := validate.Check(validate.FieldPanelEfficiency, req.PanelEfficiency); err != nil {
			return err
		}
	}
	return nil
}

// writeForecastError maps pipeline errors onto HTTP statuses.
func (s *Server) writeForecastError(w http.ResponseWriter, err error) {
	var vErr *validate.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, geocode.ErrNoResults):
		writeError(w, http.StatusNotFound, "city not found, please select from the list")
	case errors.Is(err, geocode.ErrSuperseded):
		writeError(w, http.StatusConflict, "a newer request is in progress")
	case errors.Is(err, errLiveUnavailable):
		writeError(w, http.StatusServiceUnavailable, "live data mode is not available")
	default:
		log.Printf("Forecast pipeline error: %v", err)
		writeError(w, http.StatusBadGateway, "forecast unavailable, please try again")
	}
}

func writeCooldown(w http.ResponseWriter, err error) {
	var cErr *CooldownError
	if errors.As(err, &cErr) {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", cErr.RetryAfterSeconds))
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":             cErr.Error(),
			"retryAfterSeconds": cErr.RetryAfterSeconds,
		})
		return
	}
	writeError(w, http.StatusTooManyRequests, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
