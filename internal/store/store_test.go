package store

import (
	"context"
	"sync"
	"testing"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/internal/version"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// fakeHash is an in-memory RedisHash.
type fakeHash struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func newFakeHash() *fakeHash {
	return &fakeHash{data: make(map[string]map[string]string)}
}

func (f *fakeHash) HSet(_ context.Context, key string, values ...interface{}) *goredis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.data[key] == nil {
		f.data[key] = make(map[string]string)
	}

	var added int64

	for i := 0; i+1 < len(values); i += 2 {
		field := values[i].(string)
		if _, ok := f.data[key][field]; !ok {
			added++
		}

		f.data[key][field] = values[i+1].(string)
	}

	return goredis.NewIntResult(added, nil)
}

func (f *fakeHash) HGet(_ context.Context, key, field string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key][field]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}

	return goredis.NewStringResult(value, nil)
}

func (f *fakeHash) HGetAll(_ context.Context, key string) *goredis.StringStringMapCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.data[key]))
	for k, v := range f.data[key] {
		out[k] = v
	}

	return goredis.NewStringStringMapResult(out, nil)
}

func (f *fakeHash) HDel(_ context.Context, key string, fields ...string) *goredis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	var removed int64

	for _, field := range fields {
		if _, ok := f.data[key][field]; ok {
			delete(f.data[key], field)
			removed++
		}
	}

	return goredis.NewIntResult(removed, nil)
}

// StoreContractTestSuite runs the same behaviour checks against every backend.
type StoreContractTestSuite struct {
	suite.Suite
	newStore func(clock func() time.Time) StrategyStore
	store    StrategyStore
	now      time.Time
	ctx      context.Context
}

func (suite *StoreContractTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	suite.store = suite.newStore(func() time.Time { return suite.now })
}

func (suite *StoreContractTestSuite) TearDownTest() {
	suite.NoError(suite.store.Close())
}

func testStrategy(name string) types.StrategyConfig {
	return types.StrategyConfig{
		Name:        name,
		Category:    "Swing",
		Platform:    types.PlatformMT4,
		Symbol:      "EURUSD",
		Timeframe:   types.TimeframeH1,
		LotSize:     0.1,
		StopLoss:    20,
		TakeProfit:  40,
		Description: "Buy RSI dips above the EMA.",
		Indicators:  types.DefaultIndicatorSettings(),
	}
}

func (suite *StoreContractTestSuite) TestSaveAssignsIDAndVersion() {
	saved, err := suite.store.Save(suite.ctx, "", testStrategy("Dip Buyer"))
	suite.Require().NoError(err)

	suite.NotEmpty(saved.ID)
	suite.Equal(version.SchemaVersion, saved.SchemaVersion)
	suite.True(saved.CreatedAt.Equal(suite.now))
	suite.True(saved.UpdatedAt.Equal(suite.now))

	loaded, err := suite.store.Get(suite.ctx, saved.ID)
	suite.Require().NoError(err)
	suite.Equal(saved.Config, loaded.Config)
	suite.True(saved.CreatedAt.Equal(loaded.CreatedAt))
}

func (suite *StoreContractTestSuite) TestSaveWithIDUpdatesAndKeepsCreationTime() {
	first, err := suite.store.Save(suite.ctx, "alpha", testStrategy("Alpha"))
	suite.Require().NoError(err)
	suite.Equal("alpha", first.ID)

	suite.now = suite.now.Add(time.Hour)

	updatedConfig := testStrategy("Alpha v2")
	updatedConfig.TakeProfit = 60

	second, err := suite.store.Save(suite.ctx, "alpha", updatedConfig)
	suite.Require().NoError(err)
	suite.True(second.CreatedAt.Equal(first.CreatedAt))
	suite.True(second.UpdatedAt.Equal(suite.now))

	loaded, err := suite.store.Get(suite.ctx, "alpha")
	suite.Require().NoError(err)
	suite.Equal("Alpha v2", loaded.Config.Name)
	suite.InDelta(60, loaded.Config.TakeProfit, 1e-9)

	all, err := suite.store.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 1)
}

func (suite *StoreContractTestSuite) TestSaveRejectsInvalidConfig() {
	invalid := testStrategy("")

	_, err := suite.store.Save(suite.ctx, "", invalid)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStrategy))
}

func (suite *StoreContractTestSuite) TestListOrdersByCreationTime() {
	_, err := suite.store.Save(suite.ctx, "b", testStrategy("B"))
	suite.Require().NoError(err)

	suite.now = suite.now.Add(time.Minute)
	_, err = suite.store.Save(suite.ctx, "a", testStrategy("A"))
	suite.Require().NoError(err)

	all, err := suite.store.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal("b", all[0].ID)
	suite.Equal("a", all[1].ID)
}

func (suite *StoreContractTestSuite) TestListEmpty() {
	all, err := suite.store.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(all)
}

func (suite *StoreContractTestSuite) TestDelete() {
	saved, err := suite.store.Save(suite.ctx, "", testStrategy("Temp"))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.store.Delete(suite.ctx, saved.ID))

	_, err = suite.store.Get(suite.ctx, saved.ID)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))

	err = suite.store.Delete(suite.ctx, saved.ID)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func (suite *StoreContractTestSuite) TestGetMissing() {
	_, err := suite.store.Get(suite.ctx, "missing")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StoreContractTestSuite{
		newStore: func(clock func() time.Time) StrategyStore {
			s := NewMemoryStore()
			s.now = clock

			return s
		},
	})
}

func TestDuckDBStoreSuite(t *testing.T) {
	suite.Run(t, &StoreContractTestSuite{
		newStore: func(clock func() time.Time) StrategyStore {
			s, err := NewDuckDBStore("", nil)
			if err != nil {
				t.Fatalf("open duckdb: %v", err)
			}

			s.now = clock

			return s
		},
	})
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, &StoreContractTestSuite{
		newStore: func(clock func() time.Time) StrategyStore {
			s := NewRedisStoreWithClient(newFakeHash(), "", nil)
			s.now = clock

			return s
		},
	})
}
