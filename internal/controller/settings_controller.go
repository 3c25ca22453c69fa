package controller

import (
	"log/slog"
	"net/http"

	"farm-advisory/internal/model"
	"farm-advisory/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingsController handles the farm settings routes
type SettingsController struct {
	settings *service.FarmSettingsDocument
	logger   *slog.Logger
}

// NewSettingsController creates a new settings controller
func NewSettingsController(settings *service.FarmSettingsDocument, logger *slog.Logger) *SettingsController {
	return &SettingsController{settings: settings, logger: logger.With("controller", "settings")}
}

// Get handles GET /v1/settings
func (c *SettingsController) Get(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.settings.Get())
}

// Update handles PATCH /v1/settings
func (c *SettingsController) Update(ctx *gin.Context) {
	var patch model.FarmSettingsPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		respondInvalid(ctx, c.logger, err)
		return
	}
	settings := c.settings.Update(patch)
	c.logger.Info("settings updated")
	ctx.JSON(http.StatusOK, settings)
}

// Reset handles DELETE /v1/settings
func (c *SettingsController) Reset(ctx *gin.Context) {
	c.settings.Reset()
	c.logger.Info("settings reset")
	ctx.JSON(http.StatusOK, c.settings.Get())
}

// FarmerProfileRequest is the farmer registration form
type FarmerProfileRequest struct {
	FarmerName   string `json:"farmerName"   binding:"notblank"`
	FatherName   string `json:"fatherName"`
	Village      string `json:"village"      binding:"notblank"`
	City         string `json:"city"         binding:"notblank"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"      binding:"omitempty,len=6,numeric"`
	BirthDate    string `json:"birthDate"`
	AadharNumber string `json:"aadharNumber" binding:"aadhaar"`
	PhoneNumber  string `json:"phoneNumber"  binding:"omitempty,farm_phone"`
	Email        string `json:"email"        binding:"omitempty,farm_email"`
	CropType     string `json:"cropType"`
	FarmArea     string `json:"farmArea"`
}

func (r FarmerProfileRequest) toMap() map[string]any {
	return map[string]any{
		"farmerName":   r.FarmerName,
		"fatherName":   r.FatherName,
		"village":      r.Village,
		"city":         r.City,
		"state":        r.State,
		"pincode":      r.Pincode,
		"birthDate":    r.BirthDate,
		"aadharNumber": r.AadharNumber,
		"phoneNumber":  r.PhoneNumber,
		"email":        r.Email,
		"cropType":     r.CropType,
		"farmArea":     r.FarmArea,
	}
}

// UpdateProfile handles PUT /v1/settings/profile. The validated form
// replaces the stored farmer profile as a whole.
func (c *SettingsController) UpdateProfile(ctx *gin.Context) {
	var req FarmerProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalid(ctx, c.logger, err)
		return
	}
	settings := c.settings.Update(model.FarmSettingsPatch{FarmerProfile: req.toMap()})
	c.logger.Info("farmer profile saved")
	ctx.JSON(http.StatusOK, settings)
}
