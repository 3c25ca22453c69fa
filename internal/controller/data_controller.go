package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"farm-advisory/internal/model"
	"farm-advisory/internal/service"

	"github.com/gin-gonic/gin"
)

// DataStore is the whole-store surface of the record manager
type DataStore interface {
	ExportAll() model.ExportDocument
	ImportAll(data []byte) error
	GetStatistics() model.Statistics
	DeleteAllData()
}

// DataController handles backup, restore and statistics requests
type DataController struct {
	store  DataStore
	seeder *service.Seeder
	logger *slog.Logger
}

// NewDataController creates a new data controller. seeder may be nil, in
// which case the seed route reports 404.
func NewDataController(store DataStore, seeder *service.Seeder, logger *slog.Logger) *DataController {
	return &DataController{
		store:  store,
		seeder: seeder,
		logger: logger.With("controller", "data"),
	}
}

// Export handles GET /v1/export
func (c *DataController) Export(ctx *gin.Context) {
	doc := c.store.ExportAll()
	ctx.Header("Content-Disposition",
		`attachment; filename="farm-advisory-`+doc.ExportedAt.Format("2006-01-02")+`.json"`)
	ctx.JSON(http.StatusOK, doc)
}

// Import handles POST /v1/import. The body is a document produced by
// Export; fields absent from it are left untouched.
func (c *DataController) Import(ctx *gin.Context) {
	startTime := time.Now()

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":   "Payload too large",
				"message": "import document exceeds the size limit",
			})
			return
		}
		c.logger.Error("failed to read import body", "error", err.Error())
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": "could not read request body",
		})
		return
	}

	if err := c.store.ImportAll(body); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMalformedDocument) {
			status = http.StatusBadRequest
		}
		c.logger.Warn("import failed",
			"error", err.Error(),
			"latency_ms", time.Since(startTime).Milliseconds(),
		)
		ctx.JSON(status, gin.H{
			"error":   "Import failed",
			"message": err.Error(),
		})
		return
	}

	stats := c.store.GetStatistics()
	c.logger.Info("data imported",
		"bytes", len(body),
		"latency_ms", time.Since(startTime).Milliseconds(),
	)
	ctx.JSON(http.StatusOK, stats)
}

// Statistics handles GET /v1/statistics
func (c *DataController) Statistics(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.store.GetStatistics())
}

// DeleteAll handles DELETE /v1/data
func (c *DataController) DeleteAll(ctx *gin.Context) {
	c.store.DeleteAllData()
	c.logger.Info("all data deleted")
	ctx.Status(http.StatusNoContent)
}

// Seed handles POST /v1/seed. It replaces everything with the demo dataset.
func (c *DataController) Seed(ctx *gin.Context) {
	if c.seeder == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": "seeding is disabled",
		})
		return
	}
	stats, err := c.seeder.Seed()
	if err != nil {
		c.logger.Error("failed to seed data", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to seed demo data",
		})
		return
	}
	ctx.JSON(http.StatusCreated, stats)
}
