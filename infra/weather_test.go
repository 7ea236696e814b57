package infra

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherService_Current_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-33.45", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-70.66", r.URL.Query().Get("longitude"))
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"current_weather":{"temperature":18.4,"windspeed":7.2,"winddirection":210,"weathercode":3,"time":"2024-05-01T12:00"}}`)
	}))
	defer srv.Close()

	metrics := NewMetrics()
	svc := NewWeatherService(srv.URL, 5*time.Second, metrics)

	weather, err := svc.Current(context.Background(), "-33.45", "-70.66")
	require.NoError(t, err)

	assert.Equal(t, "-33.45", weather.Lat)
	assert.Equal(t, "-70.66", weather.Lon)
	require.NotNil(t, weather.TemperatureC)
	assert.Equal(t, 18.4, *weather.TemperatureC)
	require.NotNil(t, weather.WindKmh)
	assert.Equal(t, 7.2, *weather.WindKmh)
	require.NotNil(t, weather.WindDirectionDeg)
	assert.Equal(t, 210.0, *weather.WindDirectionDeg)
	require.NotNil(t, weather.WeatherCode)
	assert.Equal(t, 3, *weather.WeatherCode)
	assert.Equal(t, "2024-05-01T12:00", weather.MeasuredAt)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WeatherRequests.WithLabelValues("success")))
}

func TestWeatherService_Current_MissingBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	weather, err := NewWeatherService(srv.URL, time.Second, nil).Current(context.Background(), "1", "2")
	require.NoError(t, err)
	assert.Nil(t, weather.TemperatureC)
	assert.Nil(t, weather.WeatherCode)
	assert.Empty(t, weather.MeasuredAt)
}

func TestWeatherService_Current_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`)
	}))
	defer srv.Close()

	metrics := NewMetrics()
	_, err := NewWeatherService(srv.URL, time.Second, metrics).Current(context.Background(), "100", "0")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusBadRequest, upstream.Status)
	assert.Contains(t, upstream.Body, "Latitude")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WeatherRequests.WithLabelValues("error")))
}

func TestWeatherService_Current_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	_, err := NewWeatherService(srv.URL, 20*time.Millisecond, nil).Current(context.Background(), "1", "2")
	require.Error(t, err)

	var upstream *UpstreamError
	assert.False(t, errors.As(err, &upstream))
}

func TestWeatherService_Current_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer srv.Close()

	_, err := NewWeatherService(srv.URL, time.Second, nil).Current(context.Background(), "1", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
