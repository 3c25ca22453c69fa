package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"farm-advisory/internal/model"
	"farm-advisory/internal/rules"
	"farm-advisory/internal/validation"

	"github.com/gin-gonic/gin"
)

// AdvisoryController answers the crop suggestion and water calculator forms
type AdvisoryController struct {
	crops  *rules.CropRules
	water  *rules.WaterRules
	usage  RecordStore[model.WaterUsageRecord]
	logger *slog.Logger
}

// NewAdvisoryController creates a new advisory controller. Water estimates
// are persisted into usage.
func NewAdvisoryController(crops *rules.CropRules, water *rules.WaterRules, usage RecordStore[model.WaterUsageRecord], logger *slog.Logger) *AdvisoryController {
	return &AdvisoryController{
		crops:  crops,
		water:  water,
		usage:  usage,
		logger: logger.With("controller", "advisory"),
	}
}

// SuggestCrops handles GET /v1/crops/suggestions
// Query parameters:
//   - soilType (required): e.g. clay, black, sandy
//   - location (required): region of the farm
//   - waterLevel (required): low, medium or high
func (c *AdvisoryController) SuggestCrops(ctx *gin.Context) {
	soilType := ctx.Query("soilType")
	location := ctx.Query("location")
	waterLevel := ctx.Query("waterLevel")

	var v validation.Checker
	v.Check(validation.IsNotEmpty(soilType), "soilType", "is required")
	v.Check(validation.IsNotEmpty(location), "location", "is required")
	v.Check(validation.IsNotEmpty(waterLevel), "waterLevel", "is required")
	if err := v.Err(); err != nil {
		respondInvalid(ctx, c.logger, err)
		return
	}

	suggestions := c.crops.Suggest(soilType, location, waterLevel)
	c.logger.Info("crop suggestions computed",
		"soil_type", soilType,
		"location", location,
		"water_level", waterLevel,
		"matches", len(suggestions),
	)
	ctx.JSON(http.StatusOK, suggestions)
}

type estimateRequest struct {
	Crop string       `json:"crop" binding:"notblank"`
	Area model.Number `json:"area" binding:"positive"`
}

// EstimateWater handles POST /v1/water-usage/estimate. The estimate is
// stored in the water-usage history and returned.
func (c *AdvisoryController) EstimateWater(ctx *gin.Context) {
	var req estimateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalid(ctx, c.logger, err)
		return
	}

	rec, err := c.water.Estimate(req.Crop, req.Area.Float64())
	switch {
	case errors.Is(err, rules.ErrInvalidArea):
		respondInvalid(ctx, c.logger, validation.Errors{{Field: "area", Message: "must be greater than 0"}})
		return
	case errors.Is(err, rules.ErrUnknownCrop):
		respondInvalid(ctx, c.logger, validation.Errors{{Field: "crop", Message: "no water data for " + req.Crop}})
		return
	case err != nil:
		c.logger.Error("failed to estimate water", "crop", req.Crop, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to estimate water usage",
		})
		return
	}

	added := c.usage.Add(rec)
	c.logger.Info("water usage estimated",
		"crop", added.Crop,
		"area", added.Area,
		"total_water", added.TotalWater,
	)
	ctx.JSON(http.StatusCreated, added)
}
