package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-strategy-lab/internal/marketdata Provider,TickerFeed
//go:generate mockgen -destination=./mock_decision_oracle.go -package=mocks github.com/rxtech-lab/argo-strategy-lab/internal/backtest DecisionOracle
//go:generate mockgen -destination=./mock_oracle.go -package=mocks github.com/rxtech-lab/argo-strategy-lab/internal/oracle CodeGenerator,ChartAnalyzer
//go:generate mockgen -destination=./mock_strategy_store.go -package=mocks github.com/rxtech-lab/argo-strategy-lab/internal/store StrategyStore
