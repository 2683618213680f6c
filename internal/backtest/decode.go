package backtest

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/utils"
)

// DecodeOracleResponse parses the JSON object returned by a decision oracle:
//
//	{"trades": [{"type", "entryIndex", "exitIndex", "entryPrice", "exitPrice", "profit"}],
//	 "metrics": {"winRate", "netProfit", "profitFactor", "maxDrawdown"}}
//
// Text around the outermost object is ignored. Numbers may arrive as numeric
// strings. Missing or malformed fields decode as None and are left to the
// assembler; only a payload that is not a JSON object at all is an error.
func DecodeOracleResponse(data []byte) (types.OracleResponse, error) {
	var raw map[string]any

	decoder := json.NewDecoder(bytes.NewReader([]byte(utils.ExtractJSON(string(data)))))
	decoder.UseNumber()

	if err := decoder.Decode(&raw); err != nil {
		return types.OracleResponse{}, errors.Wrap(errors.ErrCodeBacktestDecode, "oracle response is not a JSON object", err)
	}

	response := types.OracleResponse{
		Trades: []types.TradeProposal{},
	}

	if trades, ok := raw["trades"].([]any); ok {
		for _, item := range trades {
			fields, _ := item.(map[string]any)
			response.Trades = append(response.Trades, decodeProposal(fields))
		}
	}

	if metrics, ok := raw["metrics"].(map[string]any); ok {
		response.Metrics = types.MetricHints{
			WinRate:      number(metrics["winRate"]),
			NetProfit:    number(metrics["netProfit"]),
			ProfitFactor: number(metrics["profitFactor"]),
			MaxDrawdown:  number(metrics["maxDrawdown"]),
		}
	}

	return response, nil
}

func decodeProposal(fields map[string]any) types.TradeProposal {
	return types.TradeProposal{
		Type:       tradeType(fields["type"]),
		EntryIndex: index(fields["entryIndex"]),
		ExitIndex:  index(fields["exitIndex"]),
		EntryPrice: number(fields["entryPrice"]),
		ExitPrice:  number(fields["exitPrice"]),
		Profit:     number(fields["profit"]),
	}
}

func tradeType(value any) optional.Option[types.TradeType] {
	s, ok := value.(string)
	if !ok {
		return optional.None[types.TradeType]()
	}

	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "LONG":
		return optional.Some(types.TradeTypeBuy)
	case "SELL", "SHORT":
		return optional.Some(types.TradeTypeSell)
	default:
		return optional.None[types.TradeType]()
	}
}

func index(value any) optional.Option[int] {
	i, ok := utils.ParseIndex(value)
	if !ok {
		return optional.None[int]()
	}

	return optional.Some(i)
}

func number(value any) optional.Option[float64] {
	f, ok := utils.ParseNumber(value)
	if !ok {
		return optional.None[float64]()
	}

	return optional.Some(f)
}
