package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul4469/youtube-analyzer/internal/metrics"
)

func TestInitLogger(t *testing.T) {
	var buf bytes.Buffer
	log := initLogger(&buf, "not-a-level", "test-service")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "test-service", line["service"])
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := chi.NewRouter()
	r.Use(RequestLogger(log))
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short"))
	})

	req := httptest.NewRequest(http.MethodGet, "/items/secret-id", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/items/{id}", line["route"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.EqualValues(t, 5, line["bytes_sent"])
	assert.Equal(t, hashIPForLog("203.0.113.7"), line["ip_hash"])
	assert.NotContains(t, buf.String(), "203.0.113.7")
	assert.NotContains(t, buf.String(), "secret-id")
}

func TestMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)

	var inFlight float64
	r.Get("/probe", func(w http.ResponseWriter, r *http.Request) {
		inFlight = testutil.ToFloat64(metrics.RequestsInFlight)
	})

	before := testutil.ToFloat64(metrics.RequestsInFlight)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, before+1, inFlight)
	assert.Equal(t, before, testutil.ToFloat64(metrics.RequestsInFlight))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RequestDuration, "youtube_analyzer_http_request_duration_seconds"))
}
