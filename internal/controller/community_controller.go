package controller

import (
	"log/slog"
	"net/http"

	"farm-advisory/internal/model"
	"farm-advisory/internal/service"
	"farm-advisory/internal/validation"

	"github.com/gin-gonic/gin"
)

const anonymousName = "Anonymous"

// CommunityController handles the forum routes beyond plain CRUD
type CommunityController struct {
	posts  *service.CommunityPostCollection
	logger *slog.Logger
}

// NewCommunityController creates a new community controller
func NewCommunityController(posts *service.CommunityPostCollection, logger *slog.Logger) *CommunityController {
	return &CommunityController{posts: posts, logger: logger.With("controller", "community")}
}

type replyRequest struct {
	Name    string `json:"name"`
	Content string `json:"content" binding:"notblank"`
}

// AddReply handles POST /v1/community-posts/:id/replies
func (c *CommunityController) AddReply(ctx *gin.Context) {
	id := ctx.Param("id")

	var req replyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalid(ctx, c.logger, err)
		return
	}
	if !validation.IsNotEmpty(req.Name) {
		req.Name = anonymousName
	}

	post, ok := c.posts.AddReply(id, model.Reply{Name: req.Name, Content: req.Content})
	if !ok {
		respondNotFound(ctx, c.logger, "community post", id)
		return
	}
	c.logger.Info("reply added", "post_id", id, "replies", len(post.Replies))
	ctx.JSON(http.StatusCreated, post)
}

// Like handles POST /v1/community-posts/:id/like
func (c *CommunityController) Like(ctx *gin.Context) {
	id := ctx.Param("id")
	post, ok := c.posts.Like(id)
	if !ok {
		respondNotFound(ctx, c.logger, "community post", id)
		return
	}
	ctx.JSON(http.StatusOK, post)
}
