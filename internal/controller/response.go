package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"farm-advisory/internal/validation"

	"github.com/gin-gonic/gin"
)

// respondInvalid writes a 400 listing the offending fields
func respondInvalid(ctx *gin.Context, logger *slog.Logger, err error) {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		fields = validation.FromError(err)
	}
	logger.Warn("invalid request",
		"path", ctx.FullPath(),
		"error", fields.Error(),
	)
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request",
		"message": fields.Error(),
		"fields":  fields,
	})
}

// respondNotFound writes a 404 for a missing record
func respondNotFound(ctx *gin.Context, logger *slog.Logger, kind, id string) {
	logger.Warn(kind+" not found", "id", id)
	ctx.JSON(http.StatusNotFound, gin.H{
		"error":   "Not found",
		"message": fmt.Sprintf("%s with ID %s does not exist", kind, id),
	})
}
