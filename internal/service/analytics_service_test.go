package service

import (
	"testing"
	"time"

	"farm-advisory/internal/model"
)

type staticWaterRecords []model.WaterUsageRecord

func (s staticWaterRecords) GetAll() []model.WaterUsageRecord {
	return s
}

func waterRecord(crop, method string, area, total, efficiency float64, createdAt time.Time) model.WaterUsageRecord {
	rec := model.WaterUsageRecord{
		Crop:             crop,
		IrrigationMethod: method,
		Area:             model.Number(area),
		TotalWater:       model.Number(total),
		Efficiency:       model.Number(efficiency),
	}
	rec.Init(crop, createdAt)
	return rec
}

// TestCalculateRatio tests the calculateRatio function
func TestCalculateRatio(t *testing.T) {
	service := &analyticsService{}

	tests := []struct {
		name           string
		part           float64
		whole          float64
		expectedResult float64
	}{
		{"equal values", 100.0, 100.0, 1.0},
		{"water per hectare", 40000000.0, 2.0, 20000000.0},
		{"lower ratio", 80.0, 100.0, 0.8},
		{"whole is zero", 100.0, 0.0, 0.0},
		{"both zero", 0.0, 0.0, 0.0},
		{"part is zero", 0.0, 100.0, 0.0},
		{"rounds to 4 decimal places", 100.123456, 100.0, 1.0012},
		{"small values", 0.001, 0.01, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.calculateRatio(tt.part, tt.whole)
			if result != tt.expectedResult {
				t.Errorf("calculateRatio(%f, %f) = %f, expected %f",
					tt.part, tt.whole, result, tt.expectedResult)
			}
		})
	}
}

// TestCalculateChangePercent tests the calculateChangePercent function
func TestCalculateChangePercent(t *testing.T) {
	service := &analyticsService{}

	tests := []struct {
		name           string
		current        float64
		previous       float64
		expectedResult float64
		description    string
	}{
		{
			name:           "positive change",
			current:        110.0,
			previous:       100.0,
			expectedResult: 10.0,
			description:    "10% increase from 100 to 110",
		},
		{
			name:           "negative change",
			current:        90.0,
			previous:       100.0,
			expectedResult: -10.0,
			description:    "10% decrease from 100 to 90",
		},
		{
			name:           "no change",
			current:        100.0,
			previous:       100.0,
			expectedResult: 0.0,
			description:    "No change, should return 0.0",
		},
		{
			name:           "doubled",
			current:        200.0,
			previous:       100.0,
			expectedResult: 100.0,
			description:    "100% increase",
		},
		{
			name:           "previous and current zero",
			current:        0.0,
			previous:       0.0,
			expectedResult: 0.0,
			description:    "Both zero, no change",
		},
		{
			name:           "previous zero, current positive",
			current:        40000000.0,
			previous:       0.0,
			expectedResult: 100.0,
			description:    "Growth from nothing is reported as 100",
		},
		{
			name:           "current zero, previous positive",
			current:        0.0,
			previous:       100.0,
			expectedResult: -100.0,
			description:    "Complete decrease",
		},
		{
			name:           "rounds to 2 decimal places",
			current:        111.111,
			previous:       100.0,
			expectedResult: 11.11,
			description:    "Should round to 2 decimal places",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.calculateChangePercent(tt.current, tt.previous)
			if result != tt.expectedResult {
				t.Errorf("calculateChangePercent(%f, %f) = %f, expected %f. %s",
					tt.current, tt.previous, result, tt.expectedResult, tt.description)
			}
		})
	}
}

func TestGetWaterAnalytics(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	records := staticWaterRecords{
		// previous window: 1 May to 1 June
		waterRecord("Rice", "Flood", 1, 20000000, 60, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)),
		// current window
		waterRecord("Rice", "Flood", 2, 40000000, 60, start),
		waterRecord("Cotton", "Drip", 1.5, 11666667, 90, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
		waterRecord("Wheat", "Sprinkler", 4, 24000000, 0, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)),
		// end bound is exclusive
		waterRecord("Rice", "Flood", 3, 60000000, 60, end),
	}

	service := NewAnalyticsService(records)
	resp, err := service.GetWaterAnalytics(&start, &end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Summary.RecordCount != 3 {
		t.Errorf("expected 3 records in window, got %d", resp.Summary.RecordCount)
	}
	if resp.Summary.TotalArea != 7.5 {
		t.Errorf("expected total area 7.5, got %f", resp.Summary.TotalArea)
	}
	if resp.Summary.TotalWater != 75666667 {
		t.Errorf("expected total water 75666667, got %f", resp.Summary.TotalWater)
	}
	// the Wheat record has no efficiency and is left out of the average
	if resp.Summary.AverageEfficiency != 75 {
		t.Errorf("expected average efficiency 75, got %f", resp.Summary.AverageEfficiency)
	}

	if len(resp.CropBreakdown) != 3 {
		t.Fatalf("expected 3 crops, got %d", len(resp.CropBreakdown))
	}
	if resp.CropBreakdown[0].Name != "Cotton" || resp.CropBreakdown[2].Name != "Wheat" {
		t.Errorf("expected crops sorted by name, got %+v", resp.CropBreakdown)
	}
	if len(resp.MethodBreakdown) != 3 || resp.MethodBreakdown[0].Name != "Drip" {
		t.Errorf("unexpected method breakdown %+v", resp.MethodBreakdown)
	}

	cmp := resp.PeriodComparison
	if cmp == nil {
		t.Fatal("expected a period comparison")
	}
	if !cmp.Period.StartDate.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected previous window to start 30 days earlier, got %v", cmp.Period.StartDate)
	}
	if cmp.RecordCount != 1 {
		t.Errorf("expected 1 record in previous window, got %d", cmp.RecordCount)
	}
	if cmp.RecordsChangePercent != 200 {
		t.Errorf("expected records change 200%%, got %f", cmp.RecordsChangePercent)
	}
	if cmp.EfficiencyChangePercent != 25 {
		t.Errorf("expected efficiency change 25%%, got %f", cmp.EfficiencyChangePercent)
	}
}

func TestGetWaterAnalytics_OpenPeriod(t *testing.T) {
	records := staticWaterRecords{
		waterRecord("Rice", "Flood", 2, 40000000, 60, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
	}
	service := NewAnalyticsService(records)

	resp, err := service.GetWaterAnalytics(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Summary.RecordCount != 1 {
		t.Errorf("expected 1 record, got %d", resp.Summary.RecordCount)
	}
	if resp.Summary.WaterPerHectare != 20000000 {
		t.Errorf("expected 20000000 litres per hectare, got %f", resp.Summary.WaterPerHectare)
	}
	if resp.PeriodComparison != nil {
		t.Errorf("expected no comparison for an open period, got %+v", resp.PeriodComparison)
	}
}

func TestGetWaterAnalytics_EmptyAndInvalid(t *testing.T) {
	service := NewAnalyticsService(staticWaterRecords{})

	resp, err := service.GetWaterAnalytics(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Summary.RecordCount != 0 || resp.Summary.WaterPerHectare != 0 {
		t.Errorf("expected empty summary, got %+v", resp.Summary)
	}
	if resp.CropBreakdown == nil || len(resp.CropBreakdown) != 0 {
		t.Errorf("expected empty crop breakdown, got %v", resp.CropBreakdown)
	}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := service.GetWaterAnalytics(&start, &start); err != ErrInvalidPeriod {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}
