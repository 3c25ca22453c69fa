package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	crops, err := LoadCropRules("")
	require.NoError(t, err)

	tests := []struct {
		name       string
		soilType   string
		location   string
		waterLevel string
		expected   []string
	}{
		{"location wildcard", "clay", "east", "high", []string{"Rice"}},
		{"listed location", "black", "central", "low", []string{"Chickpea"}},
		{"several matches", "sandy", "south", "low", []string{"Millet", "Groundnut"}},
		{"water level must match", "sandy", "south", "high", []string{}},
		{"unknown soil", "peat", "north", "medium", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := []string{}
			for _, c := range crops.Suggest(tt.soilType, tt.location, tt.waterLevel) {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestEstimate(t *testing.T) {
	water, err := LoadWaterRules("")
	require.NoError(t, err)

	rec, err := water.Estimate("Rice", 2)
	require.NoError(t, err)
	assert.Equal(t, "Rice", rec.Crop)
	assert.Equal(t, "Flood", rec.IrrigationMethod)
	assert.EqualValues(t, 60, rec.Efficiency)
	assert.EqualValues(t, 1200, rec.WaterRequirement)
	assert.EqualValues(t, 40000000, rec.TotalWater)
	assert.EqualValues(t, 20000000, rec.WaterPerHectare)

	rec, err = water.Estimate("Cotton", 1.5)
	require.NoError(t, err)
	assert.EqualValues(t, 11666667, rec.TotalWater)
	assert.EqualValues(t, 7777778, rec.WaterPerHectare)
}

func TestEstimate_Errors(t *testing.T) {
	water, err := LoadWaterRules("")
	require.NoError(t, err)

	_, err = water.Estimate("Rice", 0)
	assert.ErrorIs(t, err, ErrInvalidArea)

	_, err = water.Estimate("Rice", -3)
	assert.ErrorIs(t, err, ErrInvalidArea)

	_, err = water.Estimate("Banana", 1)
	assert.ErrorIs(t, err, ErrUnknownCrop)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "water.json")
	doc := `{"crops":[{"name":"Maize","waterRequirement":500,"irrigationMethod":"Drip","efficiency":0.8}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	water, err := LoadWaterRules(path)
	require.NoError(t, err)
	rec, err := water.Estimate("Maize", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 6250000, rec.TotalWater)

	_, err = LoadWaterRules(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadCropRules(bad)
	assert.Error(t, err)
}
