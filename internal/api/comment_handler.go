package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/article-comments-api/internal/service"
	"github.com/article-comments-api/internal/validation"
)

// DefaultPerPage is the page size used when per_page is not supplied
const DefaultPerPage = 10

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// List handles GET /api/articles/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	articleID := c.Param("id")

	if _, err := h.services.Article.Get(ctx, articleID); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to look up article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Unparsable values come out as 0 and get clamped by the service,
	// like everything else out of range.
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))

	result, err := h.services.Comment.List(ctx, articleID, page, perPage)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", articleID).Msg("Failed to list comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Create handles POST /api/articles/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	// A malformed body is equivalent to a missing content field.
	_ = c.ShouldBindJSON(&req)

	if errs := validation.ValidateComment(req.Content); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	commentID, err := h.services.Comment.Submit(c.Request.Context(), c.Param("id"), user.ID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to submit comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"comment_id": commentID,
		"message":    "Comment submitted for moderation",
	})
}
