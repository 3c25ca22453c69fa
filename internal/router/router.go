// Package router assembles the gin engine serving the farm advisory API.
package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"farm-advisory/internal/controller"
	"farm-advisory/internal/middleware"
	"farm-advisory/internal/model"
	"farm-advisory/internal/rules"
	"farm-advisory/internal/service"
	"farm-advisory/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Deps are the collaborators the routes are served from
type Deps struct {
	Records      *service.RecordManager
	Crops        *rules.CropRules
	Water        *rules.WaterRules
	Seeder       *service.Seeder // nil disables POST /v1/seed
	Metrics      *middleware.Metrics
	Logger       *slog.Logger
	MaxBodyBytes int64
}

// New builds the engine with the middleware chain and every route mounted
func New(d Deps) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.Register(v); err != nil {
			return nil, fmt.Errorf("register validators: %w", err)
		}
	}
	if d.Metrics == nil {
		d.Metrics = middleware.NewMetrics()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.StructuredLoggingMiddleware(d.Logger, d.Metrics),
		middleware.Recovery(d.Logger),
	)
	if d.MaxBodyBytes > 0 {
		r.Use(middleware.BodyLimit(d.MaxBodyBytes))
	}

	r.GET("/health", health(time.Now()))
	r.GET("/metrics", middleware.MetricsHandler(d.Metrics))

	rm := d.Records
	v1 := r.Group("/v1")
	{
		crops := controller.NewRecordController[model.CropRecommendation, model.CropRecommendationPatch](
			"crop recommendation", rm.CropRecommendations, controller.ValidateCropRecommendation, d.Logger)
		crops.Register(v1.Group("/crop-recommendations"))

		advisory := controller.NewAdvisoryController(d.Crops, d.Water, rm.WaterUsage, d.Logger)
		v1.GET("/crops/suggestions", advisory.SuggestCrops)

		analytics := controller.NewAnalyticsController(service.NewAnalyticsService(rm.WaterUsage), d.Logger)
		water := v1.Group("/water-usage")
		water.POST("/estimate", advisory.EstimateWater)
		water.GET("/analytics", analytics.GetWaterAnalytics)
		controller.NewRecordController[model.WaterUsageRecord, model.WaterUsagePatch](
			"water usage", rm.WaterUsage, controller.ValidateWaterUsage, d.Logger).Register(water)

		posts := v1.Group("/community-posts")
		controller.NewRecordController[model.CommunityPost, model.CommunityPostPatch](
			"community post", rm.CommunityPosts, controller.ValidateCommunityPost, d.Logger).Register(posts)
		community := controller.NewCommunityController(rm.CommunityPosts, d.Logger)
		posts.POST("/:id/replies", community.AddReply)
		posts.POST("/:id/like", community.Like)

		// the generic List is replaced by one honouring ?unread=true
		notifications := controller.NewNotificationController(rm.Notifications, d.Logger)
		notificationCRUD := controller.NewRecordController[model.Notification, model.NotificationPatch](
			"notification", rm.Notifications, controller.ValidateNotification, d.Logger)
		ng := v1.Group("/notifications")
		ng.GET("", notifications.List)
		ng.POST("", notificationCRUD.Create)
		ng.DELETE("", notificationCRUD.DeleteAll)
		ng.GET("/:id", notificationCRUD.Get)
		ng.PATCH("/:id", notificationCRUD.Update)
		ng.DELETE("/:id", notificationCRUD.Delete)
		ng.POST("/:id/read", notifications.MarkAsRead)

		weather := controller.NewWeatherController(rm.WeatherHistory, d.Logger)
		v1.GET("/weather-history", weather.List)
		v1.POST("/weather-history", weather.Add)
		v1.DELETE("/weather-history", weather.DeleteAll)

		settings := controller.NewSettingsController(rm.FarmSettings, d.Logger)
		v1.GET("/settings", settings.Get)
		v1.PATCH("/settings", settings.Update)
		v1.DELETE("/settings", settings.Reset)
		v1.PUT("/settings/profile", settings.UpdateProfile)

		data := controller.NewDataController(rm, d.Seeder, d.Logger)
		v1.GET("/export", data.Export)
		v1.POST("/import", data.Import)
		v1.GET("/statistics", data.Statistics)
		v1.DELETE("/data", data.DeleteAll)
		v1.POST("/seed", data.Seed)
	}

	return r, nil
}

func health(startedAt time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
		})
	}
}
