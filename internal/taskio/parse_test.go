package taskio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/profit-solver/profit/internal/mapgrid"
)

func TestParseBuildsMapAndProducts(t *testing.T) {
	raw := []byte(`{
		"width": 10, "height": 10, "turns": 50, "time": 5,
		"objects": [
			{"type": "deposit", "subtype": 0, "x": 0, "y": 0, "width": 2, "height": 2},
			{"type": "mine", "subtype": 0, "x": 2, "y": 0}
		],
		"products": [
			{"subtype": 0, "resources": [1, 0, 0, 0, 0, 0, 0, 0], "points": 3}
		]
	}`)

	task, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, 10, task.Width)
	require.Equal(t, 10, task.Height)
	require.Equal(t, 50, task.Turns)
	require.Equal(t, 5.0, task.TimeBudget)
	require.Len(t, task.Products, 1)
	require.Equal(t, 3, task.Products[0].Points)
	require.Equal(t, 2, task.BaseObjectCount)
}

func TestParseDefaultsTimeBudget(t *testing.T) {
	raw := []byte(`{"width": 5, "height": 5, "turns": 10, "objects": [], "products": []}`)
	task, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, 20.0, task.TimeBudget)
}

func TestParseRejectsOutOfRangeDimensions(t *testing.T) {
	raw := []byte(`{"width": 0, "height": 5, "turns": 10, "objects": [], "products": []}`)
	_, err := Parse(raw)
	require.Error(t, err)
}

func TestParseRejectsInvalidPlacement(t *testing.T) {
	raw := []byte(`{
		"width": 5, "height": 5, "turns": 10,
		"objects": [
			{"type": "factory", "subtype": 0, "x": 0, "y": 0},
			{"type": "factory", "subtype": 1, "x": 1, "y": 1}
		],
		"products": []
	}`)
	_, err := Parse(raw)
	require.Error(t, err)
}

func TestParseRejectsNonObjectInput(t *testing.T) {
	_, err := Parse([]byte(`[1,2,3]`))
	require.Error(t, err)
}

func TestFormatSolutionSkipsBaseObjects(t *testing.T) {
	m := mapgrid.New(10, 10)
	_, err := m.PlaceDeposit(0, 10, 0, 0, 1, 1)
	require.NoError(t, err)
	base := len(m.Objects)

	_, err = m.PlaceBuilding(mapgrid.KindMine, 0, 1, 0)
	require.NoError(t, err)

	records := FormatSolution(m, base)
	require.Len(t, records, 1)
	require.Equal(t, KindMine, records[0].Type)
	require.Equal(t, 1, records[0].X)
	require.Equal(t, 0, records[0].Y)
}
