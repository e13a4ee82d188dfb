// Package metrics exports gameplay counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/fold/internal/games/fold/core"
)

const namespace = "fold"

// Collector owns the fold metrics and their registry. It is safe for
// concurrent use, so every SSH session can report into the same one.
type Collector struct {
	registry *prometheus.Registry

	foldsStarted   *prometheus.CounterVec
	foldsCompleted *prometheus.CounterVec
	invalidFolds   *prometheus.CounterVec
	undos          *prometheus.CounterVec
	levelsWon      *prometheus.CounterVec
	levelsSkipped  *prometheus.CounterVec
	levelMoves     *prometheus.HistogramVec
	highestLevel   *prometheus.GaugeVec
	sessions       prometheus.Gauge

	mu      sync.Mutex
	highest map[string]int
}

// NewCollector creates the metrics on a private registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		highest:  make(map[string]int),
		foldsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "folds_started_total",
			Help:      "Folds started, by mode and direction.",
		}, []string{"mode", "direction"}),
		foldsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "folds_completed_total",
			Help:      "Folds that finished animating and committed.",
		}, []string{"mode"}),
		invalidFolds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_folds_total",
			Help:      "Rejected fold attempts.",
		}, []string{"mode"}),
		undos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undos_total",
			Help:      "Successful undo operations.",
		}, []string{"mode"}),
		levelsWon: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_won_total",
			Help:      "Levels completed.",
		}, []string{"mode"}),
		levelsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_skipped_total",
			Help:      "Levels skipped for a penalty.",
		}, []string{"mode"}),
		levelMoves: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "level_moves",
			Help:      "Folds needed to complete a level.",
			Buckets:   []float64{2, 4, 6, 8, 10, 15, 20, 30, 50},
		}, []string{"mode"}),
		highestLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "highest_level_won",
			Help:      "Highest level completed since start.",
		}, []string{"mode"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ssh_sessions_active",
			Help:      "Connected SSH players.",
		}),
	}

	c.registry.MustRegister(
		c.foldsStarted, c.foldsCompleted, c.invalidFolds, c.undos,
		c.levelsWon, c.levelsSkipped, c.levelMoves, c.highestLevel, c.sessions,
	)
	return c
}

// Registry exposes the registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observer returns a core.Observer that reports under the given mode label.
func (c *Collector) Observer(mode string) core.Observer {
	return &modeObserver{c: c, mode: mode}
}

// SessionStarted and SessionEnded track connected SSH players.
func (c *Collector) SessionStarted() { c.sessions.Inc() }
func (c *Collector) SessionEnded()   { c.sessions.Dec() }

// Handler serves the metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", "addr", addr, "path", "/metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

type modeObserver struct {
	c    *Collector
	mode string
}

func (o *modeObserver) FoldStarted(_ int, dir core.Direction) {
	o.c.foldsStarted.WithLabelValues(o.mode, dir.String()).Inc()
}

func (o *modeObserver) FoldCompleted(int) {
	o.c.foldsCompleted.WithLabelValues(o.mode).Inc()
}

func (o *modeObserver) InvalidFold(int) {
	o.c.invalidFolds.WithLabelValues(o.mode).Inc()
}

func (o *modeObserver) Undo(int) {
	o.c.undos.WithLabelValues(o.mode).Inc()
}

func (o *modeObserver) LevelWon(level, _, moves int) {
	o.c.levelsWon.WithLabelValues(o.mode).Inc()
	o.c.levelMoves.WithLabelValues(o.mode).Observe(float64(moves))

	o.c.mu.Lock()
	defer o.c.mu.Unlock()
	if level > o.c.highest[o.mode] {
		o.c.highest[o.mode] = level
		o.c.highestLevel.WithLabelValues(o.mode).Set(float64(level))
	}
}

func (o *modeObserver) LevelSkipped(int) {
	o.c.levelsSkipped.WithLabelValues(o.mode).Inc()
}
