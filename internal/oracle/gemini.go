package oracle

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-strategy-lab/internal/backtest"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/internal/view"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultModel                  = "gemini-3-pro-preview"
	DefaultThinkingBudget         = 32768
	DefaultBacktestThinkingBudget = 8192
	DefaultTimeout                = 5 * time.Minute
)

// ContentGenerator is the subset of the genai models service used by Gemini.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" json:"apiKey"`
	Model  string `yaml:"model" json:"model"`
	// ThinkingBudget applies to code generation and chart analysis.
	ThinkingBudget int32 `yaml:"thinking_budget" json:"thinkingBudget" validate:"gte=0"`
	// BacktestThinkingBudget is lower to keep simulations fast.
	BacktestThinkingBudget int32         `yaml:"backtest_thinking_budget" json:"backtestThinkingBudget" validate:"gte=0"`
	Timeout                time.Duration `yaml:"timeout" json:"timeout"`
}

func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		Model:                  DefaultModel,
		ThinkingBudget:         DefaultThinkingBudget,
		BacktestThinkingBudget: DefaultBacktestThinkingBudget,
		Timeout:                DefaultTimeout,
	}
}

// Gemini implements the decision oracle, code generator and chart analyzer on
// top of the Gemini API.
type Gemini struct {
	models ContentGenerator
	config GeminiConfig
	log    *logger.Logger
}

// NewGemini creates a Gemini client. The API key is required.
func NewGemini(ctx context.Context, config GeminiConfig, log *logger.Logger) (*Gemini, error) {
	if config.APIKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeOracleFailed, "failed to create gemini client", err)
	}

	return NewGeminiWithGenerator(client.Models, config, log), nil
}

// NewGeminiWithGenerator creates a Gemini oracle over an existing generator.
// Zero config fields fall back to the defaults.
func NewGeminiWithGenerator(models ContentGenerator, config GeminiConfig, log *logger.Logger) *Gemini {
	defaults := DefaultGeminiConfig()

	if config.Model == "" {
		config.Model = defaults.Model
	}

	if config.ThinkingBudget == 0 {
		config.ThinkingBudget = defaults.ThinkingBudget
	}

	if config.BacktestThinkingBudget == 0 {
		config.BacktestThinkingBudget = defaults.BacktestThinkingBudget
	}

	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Gemini{
		models: models,
		config: config,
		log:    log,
	}
}

// ProposeTrades asks the model to simulate strategy over the view. The reply
// is decoded leniently; only transport and model failures are errors.
func (g *Gemini) ProposeTrades(ctx context.Context, v *view.View, strategy string, risk types.RiskParams) (types.OracleResponse, error) {
	schema, err := DecisionSchema()
	if err != nil {
		return types.OracleResponse{}, errors.Wrap(errors.ErrCodeOracleFailed, "failed to build decision schema", err)
	}

	text, err := g.generate(ctx, "backtest simulation", []*genai.Content{
		genai.NewContentFromText(BacktestPrompt(v, strategy, risk, schema), genai.RoleUser),
	}, g.config.BacktestThinkingBudget)
	if err != nil {
		return types.OracleResponse{}, err
	}

	return backtest.DecodeOracleResponse([]byte(text))
}

// GenerateBot asks the model for platform source code.
func (g *Gemini) GenerateBot(ctx context.Context, strategy types.StrategyConfig) (types.GeneratedBot, error) {
	schema, err := BotSchema()
	if err != nil {
		return types.GeneratedBot{}, errors.Wrap(errors.ErrCodeOracleFailed, "failed to build bot schema", err)
	}

	text, err := g.generate(ctx, "bot generation", []*genai.Content{
		genai.NewContentFromText(BotPrompt(strategy, schema), genai.RoleUser),
	}, g.config.ThinkingBudget)
	if err != nil {
		return types.GeneratedBot{}, err
	}

	var bot types.GeneratedBot
	if err := json.Unmarshal([]byte(utils.ExtractJSON(text)), &bot); err != nil {
		return types.GeneratedBot{}, errors.Wrap(errors.ErrCodeOracleNoCandidate, "bot generation returned malformed JSON", err)
	}

	if strings.TrimSpace(bot.Code) == "" {
		return types.GeneratedBot{}, errors.New(errors.ErrCodeOracleNoCandidate, "bot generation returned no code")
	}

	return bot, nil
}

// AnalyzeChart sends the image with an analysis prompt and decodes the draft.
func (g *Gemini) AnalyzeChart(ctx context.Context, image []byte, mimeType string) (types.StrategyDraft, error) {
	if len(image) == 0 {
		return types.StrategyDraft{}, errors.New(errors.ErrCodeMissingParameter, "chart image is empty")
	}

	if mimeType == "" {
		mimeType = "image/png"
	}

	schema, err := DraftSchema()
	if err != nil {
		return types.StrategyDraft{}, errors.Wrap(errors.ErrCodeOracleFailed, "failed to build draft schema", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(ChartPrompt(schema)),
	}

	text, err := g.generate(ctx, "chart analysis", []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}, g.config.ThinkingBudget)
	if err != nil {
		return types.StrategyDraft{}, err
	}

	var draft types.StrategyDraft
	if err := json.Unmarshal([]byte(utils.ExtractJSON(text)), &draft); err != nil {
		return types.StrategyDraft{}, errors.Wrap(errors.ErrCodeOracleNoCandidate, "chart analysis returned malformed JSON", err)
	}

	return draft, nil
}

func (g *Gemini) generate(ctx context.Context, action string, contents []*genai.Content, budget int32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	start := time.Now()

	resp, err := g.models.GenerateContent(ctx, g.config.Model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(budget),
		},
	})
	if err != nil {
		classified := ClassifyError(err, action)
		g.log.Error("Model request failed",
			zap.String("action", action),
			zap.String("model", g.config.Model),
			zap.Error(err),
		)

		return "", classified
	}

	text := ""
	if resp != nil {
		text = resp.Text()
	}

	if strings.TrimSpace(text) == "" {
		return "", errors.Newf(errors.ErrCodeOracleEmptyResponse, "%s: the model returned an empty response", action)
	}

	g.log.Debug("Model request completed",
		zap.String("action", action),
		zap.String("model", g.config.Model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_bytes", len(text)),
	)

	return text, nil
}
