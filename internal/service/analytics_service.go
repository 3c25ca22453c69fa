package service

import (
	"errors"
	"math"
	"sort"
	"time"

	"farm-advisory/internal/model"
)

// ErrInvalidPeriod is returned when an analytics window ends before it starts
var ErrInvalidPeriod = errors.New("end date must be after start date")

// WaterUsageSource provides the stored water-usage records
type WaterUsageSource interface {
	GetAll() []model.WaterUsageRecord
}

// AnalyticsService defines the interface for water-usage analytics
type AnalyticsService interface {
	GetWaterAnalytics(startDate, endDate *time.Time) (*AnalyticsResponse, error)
}

// AnalyticsResponse represents the water analytics response
type AnalyticsResponse struct {
	Period           PeriodInfo       `json:"period"`
	Summary          AnalyticsSummary `json:"summary"`
	CropBreakdown    []Breakdown      `json:"crop_breakdown"`
	MethodBreakdown  []Breakdown      `json:"method_breakdown"`
	PeriodComparison *PeriodMetrics   `json:"period_comparison,omitempty"`
}

// PeriodInfo contains date range information. A nil bound is open.
type PeriodInfo struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// AnalyticsSummary contains summary statistics
type AnalyticsSummary struct {
	RecordCount       int     `json:"record_count"`
	TotalArea         float64 `json:"total_area"`         // hectares
	TotalWater        float64 `json:"total_water"`        // litres
	WaterPerHectare   float64 `json:"water_per_hectare"`  // total_water / total_area
	AverageEfficiency float64 `json:"average_efficiency"` // percent
}

// Breakdown contains the summary of one crop or irrigation method
type Breakdown struct {
	Name string `json:"name"`
	AnalyticsSummary
}

// PeriodMetrics contains the previous window's metrics with percentage changes
type PeriodMetrics struct {
	Period                  PeriodInfo `json:"period"`
	TotalWater              float64    `json:"total_water"`
	RecordCount             int        `json:"record_count"`
	AverageEfficiency       float64    `json:"average_efficiency"`
	WaterChangePercent      float64    `json:"water_change_percent"`
	RecordsChangePercent    float64    `json:"records_change_percent"`
	EfficiencyChangePercent float64    `json:"efficiency_change_percent"`
}

// analyticsService implements AnalyticsService
type analyticsService struct {
	records WaterUsageSource
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(records WaterUsageSource) AnalyticsService {
	return &analyticsService{records: records}
}

// GetWaterAnalytics summarizes the water-usage records created in
// [startDate, endDate). When both bounds are given the result also compares
// against the window of the same length just before startDate.
func (s *analyticsService) GetWaterAnalytics(startDate, endDate *time.Time) (*AnalyticsResponse, error) {
	if startDate != nil && endDate != nil && !endDate.After(*startDate) {
		return nil, ErrInvalidPeriod
	}

	all := s.records.GetAll()
	current := filterByPeriod(all, startDate, endDate)

	resp := &AnalyticsResponse{
		Period:          PeriodInfo{StartDate: startDate, EndDate: endDate},
		Summary:         s.calculateSummary(current),
		CropBreakdown:   s.calculateBreakdown(current, func(r model.WaterUsageRecord) string { return r.Crop }),
		MethodBreakdown: s.calculateBreakdown(current, func(r model.WaterUsageRecord) string { return r.IrrigationMethod }),
	}

	if startDate != nil && endDate != nil {
		resp.PeriodComparison = s.calculatePeriodComparison(all, *startDate, *endDate, resp.Summary)
	}
	return resp, nil
}

func filterByPeriod(records []model.WaterUsageRecord, startDate, endDate *time.Time) []model.WaterUsageRecord {
	out := make([]model.WaterUsageRecord, 0, len(records))
	for _, r := range records {
		if startDate != nil && r.CreatedAt.Before(*startDate) {
			continue
		}
		if endDate != nil && !r.CreatedAt.Before(*endDate) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// calculateRatio returns part / whole rounded to 4 decimal places, or 0 when
// whole is 0
func (s *analyticsService) calculateRatio(part, whole float64) float64 {
	if whole == 0 {
		return 0.0
	}
	return math.Round(part/whole*10000) / 10000
}

// calculateSummary computes summary statistics. Records without an
// efficiency do not count towards the average.
func (s *analyticsService) calculateSummary(records []model.WaterUsageRecord) AnalyticsSummary {
	var totalArea, totalWater, totalEfficiency float64
	var efficiencyCount int

	for _, r := range records {
		totalArea += r.Area.Float64()
		totalWater += r.TotalWater.Float64()
		if eff := r.Efficiency.Float64(); eff > 0 {
			totalEfficiency += eff
			efficiencyCount++
		}
	}

	avgEfficiency := 0.0
	if efficiencyCount > 0 {
		avgEfficiency = totalEfficiency / float64(efficiencyCount)
	}

	return AnalyticsSummary{
		RecordCount:       len(records),
		TotalArea:         math.Round(totalArea*100) / 100,
		TotalWater:        math.Round(totalWater*100) / 100,
		WaterPerHectare:   s.calculateRatio(totalWater, totalArea),
		AverageEfficiency: math.Round(avgEfficiency*100) / 100,
	}
}

// calculateBreakdown groups records by key and summarizes each group,
// sorted by name
func (s *analyticsService) calculateBreakdown(records []model.WaterUsageRecord, key func(model.WaterUsageRecord) string) []Breakdown {
	groups := make(map[string][]model.WaterUsageRecord)
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r)
	}

	breakdowns := make([]Breakdown, 0, len(groups))
	for name, group := range groups {
		breakdowns = append(breakdowns, Breakdown{
			Name:             name,
			AnalyticsSummary: s.calculateSummary(group),
		})
	}
	sort.Slice(breakdowns, func(i, j int) bool {
		return breakdowns[i].Name < breakdowns[j].Name
	})
	return breakdowns
}

// calculatePeriodComparison computes the previous window's metrics with
// percentage changes for water, record count and efficiency
func (s *analyticsService) calculatePeriodComparison(all []model.WaterUsageRecord, startDate, endDate time.Time, currentSummary AnalyticsSummary) *PeriodMetrics {
	prevStart := startDate.Add(-endDate.Sub(startDate))
	prevSummary := s.calculateSummary(filterByPeriod(all, &prevStart, &startDate))

	return &PeriodMetrics{
		Period: PeriodInfo{
			StartDate: &prevStart,
			EndDate:   &startDate,
		},
		TotalWater:              prevSummary.TotalWater,
		RecordCount:             prevSummary.RecordCount,
		AverageEfficiency:       prevSummary.AverageEfficiency,
		WaterChangePercent:      s.calculateChangePercent(currentSummary.TotalWater, prevSummary.TotalWater),
		RecordsChangePercent:    s.calculateChangePercent(float64(currentSummary.RecordCount), float64(prevSummary.RecordCount)),
		EfficiencyChangePercent: s.calculateChangePercent(currentSummary.AverageEfficiency, prevSummary.AverageEfficiency),
	}
}

// calculateChangePercent calculates percentage change between two values
// Handles division by zero and missing data gracefully
func (s *analyticsService) calculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0.0
		}
		// growth from nothing is reported as 100%
		return 100.0
	}
	change := ((current - previous) / previous) * 100
	return math.Round(change*100) / 100 // Round to 2 decimal places
}
