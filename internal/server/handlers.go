package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-strategy-lab/internal/backtest"
	"github.com/rxtech-lab/argo-strategy-lab/internal/indicator"
	"github.com/rxtech-lab/argo-strategy-lab/internal/oracle"
	"github.com/rxtech-lab/argo-strategy-lab/internal/series"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/internal/version"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"go.uber.org/zap"
)

const maxImageBytes = 10 << 20

type errorResponse struct {
	Error string           `json:"error"`
	Code  errors.ErrorCode `json:"code"`
}

// ComputeIndicatorRequest is the body of POST /api/indicators/{name}.
type ComputeIndicatorRequest struct {
	Candles types.CandleSeries `json:"candles"`
	Params  []any              `json:"params"`
}

type ComputeIndicatorResponse struct {
	Indicator types.IndicatorType `json:"indicator"`
	Output    indicator.Output    `json:"output"`
	Report    series.Report       `json:"report"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}

// statusFor maps error codes onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.HasCode(err, errors.ErrCodeIndicatorNotFound), errors.HasCode(err, errors.ErrCodeStrategyNotFound):
		return http.StatusNotFound
	case errors.HasCode(err, errors.ErrCodeStoreVersion):
		return http.StatusConflict
	case errors.HasCode(err, errors.ErrCodeOracleQuota):
		return http.StatusTooManyRequests
	case errors.HasCode(err, errors.ErrCodeOracleTimeout):
		return http.StatusGatewayTimeout
	case errors.HasCode(err, errors.ErrCodeBacktestMarketData), errors.HasCode(err, errors.ErrCodeBacktestOracle),
		errors.HasCode(err, errors.ErrCodeNoDataFound):
		return http.StatusBadGateway
	}

	code := errors.GetCode(err)
	if code >= 100 && code < 200 {
		return http.StatusBadRequest
	}

	if code >= 800 && code < 900 {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid JSON body", err)
	}

	return nil
}

// decodeStrategy reads a strategy, filling zero indicator settings with the
// server defaults.
func (s *Server) decodeStrategy(r *http.Request) (types.StrategyConfig, error) {
	var strategy types.StrategyConfig
	if err := decodeBody(r, &strategy); err != nil {
		return types.StrategyConfig{}, err
	}

	if strategy.Indicators == (types.IndicatorSettings{}) {
		strategy.Indicators = s.deps.Defaults
	}

	return strategy, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version.GetVersion()})
}

func (s *Server) handleListIndicators(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"indicators": s.deps.Registry.ListIndicators()})
}

func (s *Server) handleComputeIndicator(w http.ResponseWriter, r *http.Request) {
	name := types.IndicatorType(mux.Vars(r)["name"])

	ind, err := s.deps.Registry.GetIndicator(name)
	if err != nil {
		s.writeError(w, err)

		return
	}

	var req ComputeIndicatorRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)

		return
	}

	if len(req.Params) > 0 {
		if err := ind.Config(req.Params...); err != nil {
			s.writeError(w, err)

			return
		}
	}

	clean, report := series.Normalize(req.Candles)

	writeJSON(w, http.StatusOK, ComputeIndicatorResponse{
		Indicator: name,
		Output:    ind.Compute(clean),
		Report:    report,
	})
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	strategy, err := s.decodeStrategy(r)
	if err != nil {
		s.writeError(w, err)

		return
	}

	result, err := s.deps.Runner.Run(r.Context(), strategy, backtest.RunCallbacks{})
	if err != nil {
		s.writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerateBot(w http.ResponseWriter, r *http.Request) {
	if s.deps.Generator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "code generation is not configured", Code: errors.ErrCodeOracleFailed})

		return
	}

	strategy, err := s.decodeStrategy(r)
	if err != nil {
		s.writeError(w, err)

		return
	}

	if err := strategy.Validate(); err != nil {
		s.writeError(w, err)

		return
	}

	bot, err := s.deps.Generator.GenerateBot(r.Context(), strategy)
	if err != nil {
		s.writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, bot)
}

func (s *Server) handleAnalyzeChart(w http.ResponseWriter, r *http.Request) {
	if s.deps.Analyzer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "chart analysis is not configured", Code: errors.ErrCodeOracleFailed})

		return
	}

	image, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidParameter, "failed to read image", err))

		return
	}

	if len(image) > maxImageBytes {
		s.writeError(w, errors.New(errors.ErrCodeInvalidParameter, "image is larger than 10MB"))

		return
	}

	draft, err := s.deps.Analyzer.AnalyzeChart(r.Context(), image, r.Header.Get("Content-Type"))
	if err != nil {
		s.writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleStrategySchema(w http.ResponseWriter, _ *http.Request) {
	schema, err := oracle.StrategySchema()
	if err != nil {
		s.writeError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, schema)
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	strategies, err := s.deps.Store.List(r.Context())
	if err != nil {
		s.writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"strategies": strategies})
}

func (s *Server) handleCreateStrategy(w http.ResponseWriter, r *http.Request) {
	s.saveStrategy(w, r, "", http.StatusCreated)
}

func (s *Server) handleUpdateStrategy(w http.ResponseWriter, r *http.Request) {
	s.saveStrategy(w, r, mux.Vars(r)["id"], http.StatusOK)
}

func (s *Server) saveStrategy(w http.ResponseWriter, r *http.Request, id string, status int) {
	strategy, err := s.decodeStrategy(r)
	if err != nil {
		s.writeError(w, err)

		return
	}

	saved, err := s.deps.Store.Save(r.Context(), id, strategy)
	if err != nil {
		s.writeError(w, err)

		return
	}

	writeJSON(w, status, saved)
}

func (s *Server) handleGetStrategy(w http.ResponseWriter, r *http.Request) {
	strategy, err := s.deps.Store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, strategy)
}

func (s *Server) handleDeleteStrategy(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
