package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/trafficwatch/config"
	"github.com/kilianp07/trafficwatch/core/factory"
	"github.com/kilianp07/trafficwatch/core/ingest"
	"github.com/kilianp07/trafficwatch/core/metrics"
)

const trafficLog = `10.01.2021 18:05 Cisco 5300, port1  700
10.01.2021 18:20 Cisco 5300, port1  710
11.01.2021 18:45 Cisco 5300, port1  714
11.01.2021 19:00 Cisco 5300, port1  800
`

func writeLog(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traffic.txt")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestAppIngest(t *testing.T) {
	a, err := New(config.Default())
	require.NoError(t, err)
	defer a.Close()

	st, err := a.Ingest(context.Background(), writeLog(t, trafficLog), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 4, st.Accepted)

	b, err := a.Model.Bucket(18)
	require.NoError(t, err)
	assert.Equal(t, 708.0, b.Average)
	assert.Equal(t, 3, b.Count)

	p, err := a.Model.Predict(18.5)
	require.NoError(t, err)
	assert.InDelta(t, 754.0, p, 1e-9)
}

func TestAppIngestStrict(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Strict = true
	a, err := New(cfg)
	require.NoError(t, err)

	_, err = a.Ingest(context.Background(), writeLog(t, trafficLog+"garbage\n"), nil)
	assert.ErrorIs(t, err, ingest.ErrMalformedLine)

	_, err = a.Ingest(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAppSession(t *testing.T) {
	cfg := config.Default()
	cfg.Console.Debug = true
	a, err := New(cfg)
	require.NoError(t, err)
	_, err = a.Ingest(context.Background(), writeLog(t, trafficLog), nil)
	require.NoError(t, err)

	var out strings.Builder
	in := "12.01.2021 18:00 Cisco 5300, port1  600\n\n"
	require.NoError(t, a.Session().Run(context.Background(), strings.NewReader(in), &out))
	assert.Contains(t, out.String(), "Predicted - 708.00\nTraffic below normal\n")
}

func TestAppHandler(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Server.Enabled = true
	a, err := New(cfg)
	require.NoError(t, err)
	_, err = a.Ingest(context.Background(), writeLog(t, trafficLog), nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `traffic_baseline_average{hour="18"} 708`)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict?t=18", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"predicted":708`)
}

func TestAppServeDisabled(t *testing.T) {
	a, err := New(config.Default())
	require.NoError(t, err)
	assert.NoError(t, a.Serve(context.Background()))
}

func TestAppConfigErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "carrier-pigeon"}}
	_, err := New(cfg)
	assert.ErrorIs(t, err, factory.ErrUnknownType)

	cfg = config.Default()
	cfg.Console.Locale = "fr"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestAppMultipleSinks(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}, {Type: "prometheus"}}
	a, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &metrics.MultiSink{}, a.Sink)
	assert.NoError(t, a.Close())
}
