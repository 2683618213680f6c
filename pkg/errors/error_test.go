package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNew() {
	err := New(ErrCodeInvalidPeriod, "period must be positive")
	suite.Equal(ErrCodeInvalidPeriod, err.Code)
	suite.Equal("period must be positive", err.Message)
	suite.Nil(err.Cause)
	suite.Equal("[103] period must be positive", err.Error())
}

func (suite *ErrorTestSuite) TestNewf() {
	err := Newf(ErrCodeInvalidWindow, "window must be positive, got %d", -1)
	suite.Equal("window must be positive, got -1", err.Message)
}

func (suite *ErrorTestSuite) TestWrap() {
	cause := errors.New("connection reset")
	err := Wrap(ErrCodeMarketDataFetchFailed, "binance klines", cause)
	suite.Equal(cause, err.Unwrap())
	suite.Equal("[700] binance klines: connection reset", err.Error())
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestWrapf() {
	cause := errors.New("boom")
	err := Wrapf(ErrCodeStrategyNotFound, cause, "strategy %s", "abc")
	suite.Equal("strategy abc", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestGetCodeThroughFmtWrap() {
	inner := New(ErrCodeOracleQuota, "quota exceeded")
	err := fmt.Errorf("run failed: %w", inner)

	suite.Equal(ErrCodeOracleQuota, GetCode(err))
	suite.True(HasCode(err, ErrCodeOracleQuota))
	suite.False(HasCode(err, ErrCodeOracleAuth))
}

func (suite *ErrorTestSuite) TestGetCodeOutermostWins() {
	inner := New(ErrCodeOracleTimeout, "timeout")
	err := Wrap(ErrCodeBacktestOracle, "decision oracle failed", inner)

	suite.Equal(ErrCodeBacktestOracle, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeUnknown() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestAs() {
	var target *Error
	suite.True(As(New(ErrCodeStoreFailed, "x"), &target))
	suite.Equal(ErrCodeStoreFailed, target.Code)
}

func (suite *ErrorTestSuite) TestCodeString() {
	suite.Equal("801", ErrCodeOracleAuth.String())
}

func (suite *ErrorTestSuite) TestHasCodeSearchesChain() {
	inner := New(ErrCodeOracleQuota, "quota exceeded")
	err := fmt.Errorf("run: %w", Wrap(ErrCodeBacktestOracle, "decision oracle failed", inner))

	suite.True(HasCode(err, ErrCodeBacktestOracle))
	suite.True(HasCode(err, ErrCodeOracleQuota))
	suite.False(HasCode(err, ErrCodeOracleAuth))
	suite.False(HasCode(nil, ErrCodeUnknown))
}
