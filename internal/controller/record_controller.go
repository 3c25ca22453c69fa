package controller

import (
	"log/slog"
	"net/http"
	"time"

	"farm-advisory/internal/model"
	"farm-advisory/internal/validation"

	"github.com/gin-gonic/gin"
)

// RecordStore is a per-id collection of records of type T
type RecordStore[T any] interface {
	Add(rec T) T
	GetAll() []T
	GetByID(id string) (T, bool)
	Update(id string, patch model.Patch[T]) (T, bool)
	Delete(id string)
	DeleteAll()
}

// RecordController serves the CRUD routes of one collection. T is the
// record type and P its partial update.
type RecordController[T any, P model.Patch[T]] struct {
	kind    string
	store   RecordStore[T]
	prepare func(rec *T) error
	logger  *slog.Logger
}

// NewRecordController creates a controller for store. kind names the record
// in log lines and error messages; prepare validates, and may fill in
// defaults on, every record before it is created.
func NewRecordController[T any, P model.Patch[T]](kind string, store RecordStore[T], prepare func(rec *T) error, logger *slog.Logger) *RecordController[T, P] {
	return &RecordController[T, P]{
		kind:    kind,
		store:   store,
		prepare: prepare,
		logger:  logger.With("controller", kind),
	}
}

// Register mounts the collection routes on g
func (c *RecordController[T, P]) Register(g *gin.RouterGroup) {
	g.GET("", c.List)
	g.POST("", c.Create)
	g.DELETE("", c.DeleteAll)
	g.GET("/:id", c.Get)
	g.PATCH("/:id", c.Update)
	g.DELETE("/:id", c.Delete)
}

// List handles GET /
func (c *RecordController[T, P]) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.store.GetAll())
}

// Create handles POST /
func (c *RecordController[T, P]) Create(ctx *gin.Context) {
	startTime := time.Now()

	var rec T
	if err := ctx.ShouldBindJSON(&rec); err != nil {
		respondInvalid(ctx, c.logger, err)
		return
	}
	if c.prepare != nil {
		if err := c.prepare(&rec); err != nil {
			respondInvalid(ctx, c.logger, err)
			return
		}
	}

	added := c.store.Add(rec)
	c.logger.Info(c.kind+" created",
		"latency_ms", time.Since(startTime).Milliseconds(),
	)
	ctx.JSON(http.StatusCreated, added)
}

// Get handles GET /:id
func (c *RecordController[T, P]) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	rec, ok := c.store.GetByID(id)
	if !ok {
		respondNotFound(ctx, c.logger, c.kind, id)
		return
	}
	ctx.JSON(http.StatusOK, rec)
}

// Update handles PATCH /:id. Only the fields present in the body change.
func (c *RecordController[T, P]) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var patch P
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		respondInvalid(ctx, c.logger, err)
		return
	}

	updated, ok := c.store.Update(id, patch)
	if !ok {
		respondNotFound(ctx, c.logger, c.kind, id)
		return
	}
	c.logger.Info(c.kind+" updated", "id", id)
	ctx.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /:id. Deleting an unknown id succeeds.
func (c *RecordController[T, P]) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	c.store.Delete(id)
	c.logger.Info(c.kind+" deleted", "id", id)
	ctx.Status(http.StatusNoContent)
}

// DeleteAll handles DELETE /
func (c *RecordController[T, P]) DeleteAll(ctx *gin.Context) {
	c.store.DeleteAll()
	c.logger.Info("all " + c.kind + " records deleted")
	ctx.Status(http.StatusNoContent)
}

// ValidateCropRecommendation checks the fields the crop form requires
func ValidateCropRecommendation(rec *model.CropRecommendation) error {
	var v validation.Checker
	v.Check(validation.IsNotEmpty(rec.Crop), "crop", "is required")
	v.Check(validation.IsNotEmpty(rec.SoilType), "soilType", "is required")
	v.Check(validation.IsNotEmpty(rec.Location), "location", "is required")
	v.Check(validation.IsNotEmpty(rec.WaterLevel), "waterLevel", "is required")
	return v.Err()
}

// ValidateWaterUsage checks a water-usage record
func ValidateWaterUsage(rec *model.WaterUsageRecord) error {
	var v validation.Checker
	v.Check(validation.IsNotEmpty(rec.Crop), "crop", "is required")
	v.Check(validation.IsPositive(rec.Area.Float64()), "area", "must be greater than 0")
	v.Check(validation.IsInRange(rec.Efficiency.Float64(), 0, 100), "efficiency", "must be between 0 and 100")
	v.Check(rec.TotalWater >= 0, "totalWater", "must not be negative")
	return v.Err()
}

// ValidateCommunityPost checks a new forum post. A post without an author
// is attributed to "Anonymous".
func ValidateCommunityPost(post *model.CommunityPost) error {
	if !validation.IsNotEmpty(post.Name) {
		post.Name = anonymousName
	}
	var v validation.Checker
	v.Check(validation.IsNotEmpty(post.Title), "title", "is required")
	v.Check(validation.IsNotEmpty(post.Content), "content", "is required")
	return v.Err()
}

// ValidateNotification checks a new notification
func ValidateNotification(n *model.Notification) error {
	var v validation.Checker
	v.Check(validation.IsNotEmpty(n.Title), "title", "is required")
	v.Check(validation.IsNotEmpty(n.Message), "message", "is required")
	return v.Err()
}
