package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tnqbao/gau-sequia-service/config"
)

type WeatherProvider interface {
	Current(ctx context.Context, lat, lon string) (*CurrentWeather, error)
}

// CurrentWeather is the slice of the Open-Meteo answer the service exposes.
type CurrentWeather struct {
	Lat              string   `json:"lat"`
	Lon              string   `json:"lon"`
	TemperatureC     *float64 `json:"temperatura_c"`
	WindKmh          *float64 `json:"viento_kmh"`
	WindDirectionDeg *float64 `json:"direccion_viento_grados"`
	WeatherCode      *int     `json:"codigo_clima"`
	MeasuredAt       string   `json:"hora_medicion"`
}

// UpstreamError is a non-200 answer from the weather API.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather API returned %d: %s", e.Status, e.Body)
}

type WeatherService struct {
	baseURL    string
	httpClient *http.Client
	metrics    *Metrics
}

func InitWeatherService(cfg *config.EnvConfig, metrics *Metrics) *WeatherService {
	return NewWeatherService(cfg.Weather.APIURL, cfg.Weather.Timeout, metrics)
}

func NewWeatherService(baseURL string, timeout time.Duration, metrics *Metrics) *WeatherService {
	return &WeatherService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
	}
}

func (s *WeatherService) Current(ctx context.Context, lat, lon string) (*CurrentWeather, error) {
	start := time.Now()
	weather, err := s.fetch(ctx, lat, lon)
	if s.metrics != nil {
		s.metrics.WeatherDuration.Observe(time.Since(start).Seconds())
		s.metrics.WeatherRequests.WithLabelValues(Outcome(err)).Inc()
	}
	return weather, err
}

func (s *WeatherService) fetch(ctx context.Context, lat, lon string) (*CurrentWeather, error) {
	params := url.Values{
		"latitude":        {lat},
		"longitude":       {lon},
		"current_weather": {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	current := payload.CurrentWeather
	return &CurrentWeather{
		Lat:              lat,
		Lon:              lon,
		TemperatureC:     current.Temperature,
		WindKmh:          current.WindSpeed,
		WindDirectionDeg: current.WindDirection,
		WeatherCode:      current.WeatherCode,
		MeasuredAt:       current.Time,
	}, nil
}

// Open-Meteo response types.

type forecastResponse struct {
	CurrentWeather currentWeather `json:"current_weather"`
}

type currentWeather struct {
	Temperature   *float64 `json:"temperature"`
	WindSpeed     *float64 `json:"windspeed"`
	WindDirection *float64 `json:"winddirection"`
	WeatherCode   *int     `json:"weathercode"`
	Time          string   `json:"time"`
}
