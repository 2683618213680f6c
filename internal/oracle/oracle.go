// Package oracle contains the model-backed collaborators of a backtest: the
// decision oracle that proposes trades, the code generator that writes
// platform source and the chart analyzer that drafts strategies from images.
package oracle

import (
	"context"

	"github.com/rxtech-lab/argo-strategy-lab/internal/backtest"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
)

// OracleType selects the decision oracle implementation.
type OracleType string

const (
	OracleGemini OracleType = "gemini"
	OracleRule   OracleType = "rule"
)

// CodeGenerator turns a strategy into platform source code. The code is never
// parsed or compiled.
type CodeGenerator interface {
	GenerateBot(ctx context.Context, strategy types.StrategyConfig) (types.GeneratedBot, error)
}

// ChartAnalyzer drafts a strategy from a chart image.
type ChartAnalyzer interface {
	AnalyzeChart(ctx context.Context, image []byte, mimeType string) (types.StrategyDraft, error)
}

var (
	_ backtest.DecisionOracle = (*Gemini)(nil)
	_ backtest.DecisionOracle = (*RuleBased)(nil)
	_ CodeGenerator           = (*Gemini)(nil)
	_ ChartAnalyzer           = (*Gemini)(nil)
)
