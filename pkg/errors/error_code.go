package errors

import "strconv"

// ErrorCode identifies a class of failure.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104
	ErrCodeInvalidSettings      ErrorCode = 105
	ErrCodeInvalidWindow        ErrorCode = 106
	ErrCodeInvalidStrategy      ErrorCode = 107

	// Data errors (200-299)
	ErrCodeNoDataFound         ErrorCode = 200
	ErrCodeInvalidCandleSeries ErrorCode = 201

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301

	// Backtest errors (600-699)
	ErrCodeBacktestMarketData ErrorCode = 600
	ErrCodeBacktestOracle     ErrorCode = 601
	ErrCodeBacktestDecode     ErrorCode = 602
	ErrCodeBacktestNoOracle   ErrorCode = 603
	ErrCodeBacktestNoProvider ErrorCode = 604

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 701
	ErrCodeInvalidTimeframe      ErrorCode = 702
	ErrCodeInvalidProvider       ErrorCode = 703
	ErrCodeMarketDataWriteFailed ErrorCode = 704

	// Oracle errors (800-899)
	ErrCodeOracleFailed           ErrorCode = 800
	ErrCodeOracleAuth             ErrorCode = 801
	ErrCodeOracleQuota            ErrorCode = 802
	ErrCodeOracleSafety           ErrorCode = 803
	ErrCodeOracleModelUnavailable ErrorCode = 804
	ErrCodeOracleTimeout          ErrorCode = 805
	ErrCodeOracleNoCandidate      ErrorCode = 806
	ErrCodeOracleEmptyResponse    ErrorCode = 807

	// Store errors (900-999)
	ErrCodeStrategyNotFound    ErrorCode = 900
	ErrCodeStoreFailed         ErrorCode = 901
	ErrCodeStoreVersion        ErrorCode = 902
	ErrCodeInvalidStoreBackend ErrorCode = 903
)

func (c ErrorCode) String() string {
	return strconv.Itoa(int(c))
}
