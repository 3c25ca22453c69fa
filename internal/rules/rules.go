// Package rules holds the static lookup tables behind the crop suggestion
// and water calculator forms. The tables are plain JSON documents; built-in
// copies are used unless a file path is configured.
package rules

import (
	"embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"farm-advisory/internal/model"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed data/*.json
var builtin embed.FS

var (
	ErrUnknownCrop = errors.New("crop not found")
	ErrInvalidArea = errors.New("area must be positive")
)

// CropRule describes the conditions a crop is suggested for
type CropRule struct {
	Name        string   `json:"name"`
	SoilTypes   []string `json:"soilTypes"`
	Locations   []string `json:"locations"`
	WaterLevel  string   `json:"waterLevel"`
	Season      string   `json:"season,omitempty"`
	Description string   `json:"description"`
}

// CropRules is the crop suggestion table
type CropRules struct {
	Crops []CropRule `json:"crops"`
}

// Suggest returns the crops whose soil types include soilType, whose
// locations include location or "all", and whose water level matches.
func (r *CropRules) Suggest(soilType, location, waterLevel string) []CropRule {
	out := []CropRule{}
	for _, crop := range r.Crops {
		soilMatch := contains(crop.SoilTypes, soilType)
		locationMatch := contains(crop.Locations, location) || contains(crop.Locations, "all")
		if soilMatch && locationMatch && crop.WaterLevel == waterLevel {
			out = append(out, crop)
		}
	}
	return out
}

// WaterRule is the seasonal water need of a crop
type WaterRule struct {
	Name             string  `json:"name"`
	WaterRequirement float64 `json:"waterRequirement"` // mm per season
	IrrigationMethod string  `json:"irrigationMethod"`
	Efficiency       float64 `json:"efficiency"` // fraction of applied water reaching the crop
}

// WaterRules is the water calculator table
type WaterRules struct {
	Crops []WaterRule `json:"crops"`
}

// Find looks a crop up by exact name
func (r *WaterRules) Find(crop string) (WaterRule, bool) {
	for _, rule := range r.Crops {
		if rule.Name == crop {
			return rule, true
		}
	}
	return WaterRule{}, false
}

// Estimate computes the water needed to irrigate area hectares of crop.
// One millimetre over one hectare is 10,000 litres, scaled up by the
// irrigation method's losses.
func (r *WaterRules) Estimate(crop string, area float64) (model.WaterUsageRecord, error) {
	if !(area > 0) {
		return model.WaterUsageRecord{}, ErrInvalidArea
	}
	rule, ok := r.Find(crop)
	if !ok {
		return model.WaterUsageRecord{}, fmt.Errorf("%w: %s", ErrUnknownCrop, crop)
	}
	if rule.Efficiency <= 0 {
		return model.WaterUsageRecord{}, fmt.Errorf("rules: crop %s has no irrigation efficiency", crop)
	}

	waterNeeded := rule.WaterRequirement * 10000 * area / rule.Efficiency
	return model.WaterUsageRecord{
		Crop:             rule.Name,
		Area:             model.Number(area),
		WaterRequirement: model.Number(rule.WaterRequirement),
		IrrigationMethod: rule.IrrigationMethod,
		Efficiency:       model.Number(math.Round(rule.Efficiency * 100)),
		TotalWater:       model.Number(math.Round(waterNeeded)),
		WaterPerHectare:  model.Number(math.Round(waterNeeded / area)),
	}, nil
}

// LoadCropRules reads the crop table from path, or the built-in table when
// path is empty.
func LoadCropRules(path string) (*CropRules, error) {
	var r CropRules
	if err := load(path, "data/cropRules.json", &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadWaterRules reads the water table from path, or the built-in table
// when path is empty.
func LoadWaterRules(path string) (*WaterRules, error) {
	var r WaterRules
	if err := load(path, "data/waterUsageRules.json", &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func load(path, fallback string, dst any) error {
	var (
		data []byte
		err  error
	)
	if strings.TrimSpace(path) == "" {
		data, err = builtin.ReadFile(fallback)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("rules: read %s: %w", sourceName(path, fallback), err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("rules: decode %s: %w", sourceName(path, fallback), err)
	}
	return nil
}

func sourceName(path, fallback string) string {
	if path != "" {
		return path
	}
	return "built-in " + fallback
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
