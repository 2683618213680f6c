// Package server exposes indicators, backtests, code generation and the
// strategy store over HTTP, plus a websocket ticker stream.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-strategy-lab/internal/backtest"
	"github.com/rxtech-lab/argo-strategy-lab/internal/indicator"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/metrics"
	"github.com/rxtech-lab/argo-strategy-lab/internal/oracle"
	"github.com/rxtech-lab/argo-strategy-lab/internal/store"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"go.uber.org/zap"
)

// BacktestRunner runs one backtest. *backtest.Runner satisfies it.
type BacktestRunner interface {
	Run(ctx context.Context, strategy types.StrategyConfig, callbacks backtest.RunCallbacks) (*types.BacktestResult, error)
}

// Dependencies are the services behind the routes. Generator, Analyzer and
// Hub may be nil; their routes then answer 503 or are not registered.
type Dependencies struct {
	Registry  indicator.IndicatorRegistry
	Runner    BacktestRunner
	Generator oracle.CodeGenerator
	Analyzer  oracle.ChartAnalyzer
	Store     store.StrategyStore
	Metrics   *metrics.Collector
	Hub       *TickerHub
	Defaults  types.IndicatorSettings
}

type Server struct {
	deps   Dependencies
	router *mux.Router
	logger *logger.Logger
}

func NewServer(deps Dependencies, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if deps.Defaults == (types.IndicatorSettings{}) {
		deps.Defaults = types.DefaultIndicatorSettings()
	}

	s := &Server{deps: deps, logger: log}
	s.router = s.routes()

	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/indicators", s.handleListIndicators).Methods(http.MethodGet)
	api.HandleFunc("/indicators/{name}", s.handleComputeIndicator).Methods(http.MethodPost)
	api.HandleFunc("/backtests", s.handleBacktest).Methods(http.MethodPost)
	api.HandleFunc("/bots", s.handleGenerateBot).Methods(http.MethodPost)
	api.HandleFunc("/charts/analyze", s.handleAnalyzeChart).Methods(http.MethodPost)
	api.HandleFunc("/schema/strategy", s.handleStrategySchema).Methods(http.MethodGet)
	api.HandleFunc("/strategies", s.handleListStrategies).Methods(http.MethodGet)
	api.HandleFunc("/strategies", s.handleCreateStrategy).Methods(http.MethodPost)
	api.HandleFunc("/strategies/{id}", s.handleGetStrategy).Methods(http.MethodGet)
	api.HandleFunc("/strategies/{id}", s.handleUpdateStrategy).Methods(http.MethodPut)
	api.HandleFunc("/strategies/{id}", s.handleDeleteStrategy).Methods(http.MethodDelete)

	if s.deps.Metrics != nil {
		router.Handle("/metrics", s.deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	if s.deps.Hub != nil {
		router.Handle("/ws/tickers", s.deps.Hub)
	}

	router.Use(s.logRequests)

	return router
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. The ticker hub runs for the lifetime of the server.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.deps.Hub != nil {
		go s.deps.Hub.Run(ctx)
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}

		return err
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		s.logger.Info("Shutting down HTTP server")

		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
