package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/profit-solver/profit/internal/mapgrid"
	"github.com/profit-solver/profit/internal/simulate"
)

func simpleTask(t *testing.T) (*mapgrid.Map, map[int]*simulate.Product) {
	t.Helper()
	m := mapgrid.New(15, 15)
	_, err := m.PlaceDeposit(0, 100, 0, 0, 2, 2)
	require.NoError(t, err)

	products := map[int]*simulate.Product{
		0: {ID: 0, Resources: [8]int{1}, Points: 3},
	}
	return m, products
}

func TestRunAlwaysReturnsASolution(t *testing.T) {
	m, products := simpleTask(t)
	sol := Run(m, products, 50, Options{
		TimeBudget: 150 * time.Millisecond,
		Cores:      2,
		Seed:       42,
		Config:     testConfig(),
	})
	require.NotNil(t, sol.Map)
}

func TestRunFindsAPositiveScoreGivenEnoughTime(t *testing.T) {
	m, products := simpleTask(t)
	sol := Run(m, products, 50, Options{
		TimeBudget: 400 * time.Millisecond,
		Cores:      4,
		Seed:       7,
		Config:     testConfig(),
	})
	require.Greater(t, sol.Score, 0)
}

func TestRunRespectsTimeBudget(t *testing.T) {
	m, products := simpleTask(t)
	start := time.Now()
	Run(m, products, 50, Options{
		TimeBudget: 200 * time.Millisecond,
		Cores:      4,
		Seed:       1,
		Config:     testConfig(),
	})
	require.Less(t, time.Since(start), 1500*time.Millisecond)
}

func TestRunIsDeterministicForAPinnedSeed(t *testing.T) {
	m, products := simpleTask(t)
	opts := Options{TimeBudget: 150 * time.Millisecond, Cores: 4, Seed: 99, Config: testConfig()}

	a := Run(m, products, 50, opts)
	b := Run(m, products, 50, opts)
	require.Equal(t, a.Score, b.Score)
	require.Equal(t, a.BestRound, b.BestRound)
}

func TestRunOnEmptyMapScoresZero(t *testing.T) {
	m := mapgrid.New(10, 10)
	sol := Run(m, map[int]*simulate.Product{}, 50, Options{
		TimeBudget: 50 * time.Millisecond,
		Cores:      2,
		Seed:       3,
		Config:     testConfig(),
	})
	require.Equal(t, 0, sol.Score)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DeadlineSafetyMarginSeconds = 0.02
	return cfg
}
