package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"farm-advisory/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsController handles analytics-related HTTP requests
type AnalyticsController struct {
	analyticsService service.AnalyticsService
	logger           *slog.Logger
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(analyticsService service.AnalyticsService, logger *slog.Logger) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		logger:           logger.With("controller", "analytics"),
	}
}

// GetWaterAnalytics handles GET /v1/water-usage/analytics
// Query parameters:
//   - start_date (optional): Start date in ISO 8601 format (RFC3339 or YYYY-MM-DD)
//   - end_date (optional): End date, exclusive, in the same format
//
// The comparison with the preceding period is only present when both
// dates are given.
func (c *AnalyticsController) GetWaterAnalytics(ctx *gin.Context) {
	startTime := time.Now()

	startDate, ok := c.dateParam(ctx, "start_date")
	if !ok {
		return
	}
	endDate, ok := c.dateParam(ctx, "end_date")
	if !ok {
		return
	}

	analytics, err := c.analyticsService.GetWaterAnalytics(startDate, endDate)
	if errors.Is(err, service.ErrInvalidPeriod) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date range",
			"message": "end_date must be after start_date",
		})
		return
	}
	if err != nil {
		c.logger.Error("failed to retrieve analytics",
			"error", err.Error(),
			"latency_ms", time.Since(startTime).Milliseconds(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to retrieve analytics data",
		})
		return
	}

	c.logger.Info("analytics request completed",
		"records", analytics.Summary.RecordCount,
		"crops", len(analytics.CropBreakdown),
		"latency_ms", time.Since(startTime).Milliseconds(),
	)
	ctx.JSON(http.StatusOK, analytics)
}

// dateParam parses an optional date query parameter. On a malformed value
// it writes the 400 response and returns ok=false.
func (c *AnalyticsController) dateParam(ctx *gin.Context, name string) (*time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := parseISO8601Date(raw)
	if err != nil {
		c.logger.Warn("invalid "+name,
			name, raw,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid " + name,
			"message": name + " must be in ISO 8601 format (RFC3339 or YYYY-MM-DD)",
		})
		return nil, false
	}
	return &t, true
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseISO8601Date parses a date in one of isoLayouts. Values without an
// offset are taken as UTC.
func parseISO8601Date(dateStr string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse ISO 8601 date: %s (expected RFC3339 or YYYY-MM-DD format)", dateStr)
}
