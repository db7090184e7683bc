// Package app wires configuration, the traffic baseline, sinks and the
// interactive session together.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"

	"github.com/kilianp07/trafficwatch/app/plugins"
	"github.com/kilianp07/trafficwatch/config"
	"github.com/kilianp07/trafficwatch/core/ingest"
	"github.com/kilianp07/trafficwatch/core/metrics"
	"github.com/kilianp07/trafficwatch/core/model"
	"github.com/kilianp07/trafficwatch/infra/logger"
	inframetrics "github.com/kilianp07/trafficwatch/infra/metrics"
)

// App owns the baseline built from one traffic log.
type App struct {
	Model *model.Guarded
	Sink  metrics.Sink

	cfg      *config.Config
	msgs     Messages
	registry *prometheus.Registry
	log      logger.Logger
}

// New builds the sinks declared in cfg and an empty baseline.
func New(cfg *config.Config) (*App, error) {
	log := logger.New("app")
	msgs, err := Catalog(cfg.Console.Locale)
	if err != nil {
		return nil, err
	}
	sink, err := metrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink (available: %v): %w", plugins.SinkTypes(), err)
	}
	a := &App{
		Model: model.NewGuarded(nil),
		Sink:  sink,
		cfg:   cfg,
		msgs:  msgs,
		log:   log,
	}
	if cfg.Metrics.Server.Enabled {
		a.registry = prometheus.NewRegistry()
		if err := a.registry.Register(inframetrics.NewBaselineCollector(a.Model)); err != nil {
			return nil, fmt.Errorf("baseline collector: %w", err)
		}
	}
	return a, nil
}

// Ingest loads the log at path into the baseline. When progress is not nil a
// byte progress bar is drawn on it.
func (a *App) Ingest(ctx context.Context, path string, progress io.Writer) (ingest.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ingest.Stats{}, err
	}
	defer f.Close()

	var r io.Reader = f
	var bar *progressbar.ProgressBar
	if progress != nil {
		info, err := f.Stat()
		if err != nil {
			return ingest.Stats{}, err
		}
		bar = progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("ingesting "+path),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		r = io.TeeReader(f, bar)
	}

	loader := ingest.NewLoader(a.Model, a.Sink, logger.New("ingest"))
	loader.Strict = a.cfg.Input.Strict
	loader.Source = path
	st, err := loader.Load(ctx, r)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return st, fmt.Errorf("ingest %s: %w", path, err)
	}
	a.log.Infow("baseline built", map[string]any{
		"source":   path,
		"accepted": st.Accepted,
		"rejected": st.Rejected,
		"duration": st.Duration.String(),
	})
	return st, nil
}

// Session returns an interactive session over the baseline.
func (a *App) Session() *Session {
	s := NewSession(a.Model, a.cfg.Thresholds, a.msgs, a.Sink, logger.New("session"))
	s.Debug = a.cfg.Console.Debug
	return s
}

// Handler serves metrics from the default registry and the baseline
// collector, plus the baseline endpoints.
func (a *App) Handler() http.Handler {
	var g prometheus.Gatherer = prometheus.DefaultGatherer
	if a.registry != nil {
		g = prometheus.Gatherers{prometheus.DefaultGatherer, a.registry}
	}
	return inframetrics.NewRouter(g, a.Model)
}

// Serve runs the metrics HTTP server until ctx is canceled. It returns
// immediately when the server is disabled.
func (a *App) Serve(ctx context.Context) error {
	if !a.cfg.Metrics.Server.Enabled {
		return nil
	}
	return inframetrics.StartPromServer(ctx, a.cfg.Metrics.Server.Addr, a.Handler())
}

// Close releases the sinks.
func (a *App) Close() error {
	if c, ok := a.Sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
