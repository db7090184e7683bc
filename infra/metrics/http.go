package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/trafficwatch/core/model"
	"github.com/kilianp07/trafficwatch/infra/logger"
)

// NewRouter serves /metrics from gatherer, plus /healthz, /baseline and
// /predict backed by src.
func NewRouter(gatherer prometheus.Gatherer, src model.Reader) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "measures": src.Total()})
	}).Methods(http.MethodGet)
	r.HandleFunc("/baseline", func(w http.ResponseWriter, _ *http.Request) {
		snap := src.Snapshot()
		writeJSON(w, http.StatusOK, snap[:])
	}).Methods(http.MethodGet)
	r.HandleFunc("/predict", func(w http.ResponseWriter, req *http.Request) {
		t, err := strconv.ParseFloat(req.URL.Query().Get("t"), 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter t must be a number"})
			return
		}
		v, err := src.Predict(t)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]float64{"t": t, "predicted": v})
	}).Methods(http.MethodGet)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StartPromServer serves handler on addr until ctx is canceled.
func StartPromServer(ctx context.Context, addr string, handler http.Handler) error {
	log := logger.New("metrics-server")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()
	log.Infof("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
