// Package config loads application settings from a YAML file, a .env file and
// the environment, in that order of increasing precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rxtech-lab/argo-strategy-lab/internal/backtest"
	"github.com/rxtech-lab/argo-strategy-lab/internal/marketdata"
	"github.com/rxtech-lab/argo-strategy-lab/internal/oracle"
	"github.com/rxtech-lab/argo-strategy-lab/internal/store"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvPolygonAPIKey = "POLYGON_API_KEY"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvStoreBackend  = "ARGO_LAB_STORE"
	EnvLogLevel      = "ARGO_LAB_LOG_LEVEL"
)

type MarketDataConfig struct {
	Provider                  marketdata.ProviderType `yaml:"provider" json:"provider" validate:"oneof=binance polygon synthetic parquet"`
	Limit                     int                     `yaml:"limit" json:"limit" validate:"gt=0"`
	marketdata.ProviderConfig `yaml:",inline"`
}

type BacktestConfig struct {
	backtest.RunnerConfig `yaml:",inline"`
	Assembler             backtest.AssemblerConfig `yaml:"assembler" json:"assembler"`
}

type OracleConfig struct {
	Type   oracle.OracleType      `yaml:"type" json:"type" validate:"oneof=gemini rule"`
	Gemini oracle.GeminiConfig    `yaml:"gemini" json:"gemini"`
	Rule   oracle.RuleBasedConfig `yaml:"rule" json:"rule"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr" json:"addr" validate:"required"`
	TickerSymbols  []string      `yaml:"ticker_symbols" json:"tickerSymbols"`
	TickerInterval time.Duration `yaml:"ticker_interval" json:"tickerInterval" validate:"gt=0"`
}

type Config struct {
	LogLevel   string                  `yaml:"log_level" json:"logLevel"`
	MarketData MarketDataConfig        `yaml:"market_data" json:"marketData"`
	Indicators types.IndicatorSettings `yaml:"indicators" json:"indicators"`
	Backtest   BacktestConfig          `yaml:"backtest" json:"backtest"`
	Oracle     OracleConfig            `yaml:"oracle" json:"oracle"`
	Store      store.Config            `yaml:"store" json:"store"`
	Server     ServerConfig            `yaml:"server" json:"server"`
}

// DefaultConfig uses synthetic data and the rule-based oracle so the
// application runs without credentials.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		MarketData: MarketDataConfig{
			Provider: marketdata.ProviderSynthetic,
			Limit:    marketdata.DefaultLimit,
			ProviderConfig: marketdata.ProviderConfig{
				SyntheticSeed: 42,
			},
		},
		Indicators: types.DefaultIndicatorSettings(),
		Backtest: BacktestConfig{
			RunnerConfig: backtest.DefaultRunnerConfig(),
			Assembler:    backtest.DefaultAssemblerConfig(),
		},
		Oracle: OracleConfig{
			Type:   oracle.OracleRule,
			Gemini: oracle.DefaultGeminiConfig(),
		},
		Store: store.DefaultConfig(),
		Server: ServerConfig{
			Addr:           ":8080",
			TickerSymbols:  marketdata.DefaultTickerSymbols,
			TickerInterval: 5 * time.Second,
		},
	}
}

// Load reads path over the defaults, then applies .env and environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
		}
	}

	// A missing .env file is not an error; real environment variables win.
	_ = godotenv.Load()

	config.ApplyEnv(os.Getenv)

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// ApplyEnv overrides secrets and backend choices from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if key := getenv(EnvGeminiAPIKey); key != "" {
		c.Oracle.Gemini.APIKey = key
	}

	if key := getenv(EnvPolygonAPIKey); key != "" {
		c.MarketData.PolygonAPIKey = key
	}

	if addr := getenv(EnvRedisAddr); addr != "" {
		c.Store.RedisAddr = addr
	}

	if backend := getenv(EnvStoreBackend); backend != "" {
		c.Store.Backend = store.BackendType(strings.ToLower(backend))
	}

	if level := getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if c.Oracle.Type == oracle.OracleGemini && c.Oracle.Gemini.APIKey == "" {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "the gemini oracle requires %s", EnvGeminiAPIKey)
	}

	if c.MarketData.Provider == marketdata.ProviderPolygon && c.MarketData.PolygonAPIKey == "" {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "the polygon provider requires %s", EnvPolygonAPIKey)
	}

	if c.MarketData.Provider == marketdata.ProviderParquet && c.MarketData.DataPath == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "the parquet provider requires market_data.data_path")
	}

	return nil
}
