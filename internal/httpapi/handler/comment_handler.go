package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/service"
)

type CommentHandler struct {
	commentService service.CommentService
	guard          *middleware.Guard
}

func NewCommentHandler(commentService service.CommentService, guard *middleware.Guard) *CommentHandler {
	return &CommentHandler{commentService: commentService, guard: guard}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/cartoon-comment")
	{
		comments.GET("/cartoon/:cartoonId", h.ListByCartoon)
		comments.GET("/parent/:parentCommentId", h.ListReplies)
		comments.GET("/:id", h.Get)

		authed := comments.Group("")
		authed.Use(h.guard.Authenticate())
		{
			authed.POST("/cartoon/:cartoonId", h.Create)
			authed.PUT("/:id", h.Update)
			authed.DELETE("/:id", h.Delete)
		}
	}
}

// Create posts a comment or reply on a cartoon
// POST /api/cartoon-comment/cartoon/:cartoonId
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.CurrentActor(c), c.Param("cartoonId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListByCartoon returns a cartoon's top-level comments page by page
// GET /api/cartoon-comment/cartoon/:cartoonId?page=1&limit=10
func (h *CommentHandler) ListByCartoon(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.commentService.FindByCartoonPaginated(c.Request.Context(), c.Param("cartoonId"), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListReplies returns a comment's replies oldest-first
// GET /api/cartoon-comment/parent/:parentCommentId
func (h *CommentHandler) ListReplies(c *gin.Context) {
	replies, err := h.commentService.FindReplies(c.Request.Context(), c.Param("parentCommentId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, replies)
}

// Get returns one comment
// GET /api/cartoon-comment/:id
func (h *CommentHandler) Get(c *gin.Context) {
	comment, err := h.commentService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Update edits the acting user's comment
// PUT /api/cartoon-comment/:id
func (h *CommentHandler) Update(c *gin.Context) {
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete soft-deletes a comment
// DELETE /api/cartoon-comment/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.commentService.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
