package controller

import (
	"log/slog"
	"net/http"

	"farm-advisory/internal/model"
	"farm-advisory/internal/service"
	"farm-advisory/internal/validation"

	"github.com/gin-gonic/gin"
)

// WeatherController handles the weather history routes
type WeatherController struct {
	history *service.WeatherHistoryLog
	logger  *slog.Logger
}

// NewWeatherController creates a new weather controller
func NewWeatherController(history *service.WeatherHistoryLog, logger *slog.Logger) *WeatherController {
	return &WeatherController{history: history, logger: logger.With("controller", "weather")}
}

// List handles GET /v1/weather-history
// Query parameters:
//   - city (optional): only snapshots for this city, ignoring case
func (c *WeatherController) List(ctx *gin.Context) {
	if city := ctx.Query("city"); validation.IsNotEmpty(city) {
		ctx.JSON(http.StatusOK, c.history.GetByCity(city))
		return
	}
	ctx.JSON(http.StatusOK, c.history.GetAll())
}

// Add handles POST /v1/weather-history. The body is a weather provider
// snapshot; it is stored as is with a timestamp added.
func (c *WeatherController) Add(ctx *gin.Context) {
	var snapshot map[string]any
	if err := ctx.ShouldBindJSON(&snapshot); err != nil {
		respondInvalid(ctx, c.logger, err)
		return
	}
	if snapshot == nil {
		respondInvalid(ctx, c.logger, validation.Errors{{Field: "body", Message: "must be a JSON object"}})
		return
	}
	delete(snapshot, "timestamp")

	entry := c.history.Add(model.WeatherEntry{Snapshot: snapshot})
	c.logger.Info("weather snapshot recorded", "city", entry.City())
	ctx.JSON(http.StatusCreated, entry)
}

// DeleteAll handles DELETE /v1/weather-history
func (c *WeatherController) DeleteAll(ctx *gin.Context) {
	c.history.DeleteAll()
	c.logger.Info("weather history deleted")
	ctx.Status(http.StatusNoContent)
}
