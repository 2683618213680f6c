package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "argolab"

// Collector holds the Prometheus metrics of backtest runs. Every method is safe
// on a nil receiver so collaborators can run without metrics.
type Collector struct {
	registry *prometheus.Registry

	RunsTotal         *prometheus.CounterVec   // labels: outcome
	StageDuration     *prometheus.HistogramVec // labels: stage
	ProposalsTotal    prometheus.Counter
	DroppedProposals  prometheus.Counter
	ReconciledTrades  prometheus.Counter
	CandlesRepaired   prometheus.Counter
	OracleErrorsTotal *prometheus.CounterVec // labels: code
	TickerBroadcasts  prometheus.Counter
	TickerClients     prometheus.Gauge
}

// NewCollector registers every metric on a private registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backtest_runs_total",
			Help:      "Backtest runs by outcome",
		}, []string{"outcome"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backtest_stage_duration_seconds",
			Help:      "Duration of each backtest pipeline stage",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60},
		}, []string{"stage"}),
		ProposalsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backtest_proposals_total",
			Help:      "Trade proposals received from decision oracles",
		}),
		DroppedProposals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backtest_dropped_proposals_total",
			Help:      "Trade proposals dropped for invalid type or indices",
		}),
		ReconciledTrades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backtest_reconciled_trades_total",
			Help:      "Trades whose profit sign contradicted their prices",
		}),
		CandlesRepaired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "series_candles_repaired_total",
			Help:      "Candles dropped or repaired during normalisation",
		}),
		OracleErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_errors_total",
			Help:      "Oracle failures by error code",
		}, []string{"code"}),
		TickerBroadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticker_broadcasts_total",
			Help:      "Ticker snapshots broadcast to websocket clients",
		}),
		TickerClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ticker_clients",
			Help:      "Connected websocket ticker clients",
		}),
	}

	c.registry.MustRegister(
		c.RunsTotal,
		c.StageDuration,
		c.ProposalsTotal,
		c.DroppedProposals,
		c.ReconciledTrades,
		c.CandlesRepaired,
		c.OracleErrorsTotal,
		c.TickerBroadcasts,
		c.TickerClients,
	)

	return c
}

// Registry exposes the private registry for tests and custom exporters.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}

	return c.registry
}

// Handler serves the collector's metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveStage(stage string, elapsed time.Duration) {
	if c == nil {
		return
	}

	c.StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// ObserveRun records the outcome of one run: "success" or "error".
func (c *Collector) ObserveRun(outcome string) {
	if c == nil {
		return
	}

	c.RunsTotal.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveAssembly(proposals, dropped, reconciled int) {
	if c == nil {
		return
	}

	c.ProposalsTotal.Add(float64(proposals))
	c.DroppedProposals.Add(float64(dropped))
	c.ReconciledTrades.Add(float64(reconciled))
}

func (c *Collector) ObserveRepairs(n int) {
	if c == nil || n <= 0 {
		return
	}

	c.CandlesRepaired.Add(float64(n))
}

func (c *Collector) ObserveOracleError(code string) {
	if c == nil {
		return
	}

	c.OracleErrorsTotal.WithLabelValues(code).Inc()
}

func (c *Collector) ObserveBroadcast(clients int) {
	if c == nil {
		return
	}

	c.TickerBroadcasts.Inc()
	c.TickerClients.Set(float64(clients))
}
