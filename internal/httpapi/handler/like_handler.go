package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/service"
)

type LikeHandler struct {
	likeService service.LikeService
	guard       *middleware.Guard
}

func NewLikeHandler(likeService service.LikeService, guard *middleware.Guard) *LikeHandler {
	return &LikeHandler{likeService: likeService, guard: guard}
}

func (h *LikeHandler) RegisterRoutes(router *gin.RouterGroup) {
	likes := router.Group("/cartoon-like")
	{
		likes.GET("/cartoon/:cartoonId/count", h.Count)
		likes.GET("/cartoon/:cartoonId/users", h.ListByCartoon)

		authed := likes.Group("")
		authed.Use(h.guard.Authenticate())
		{
			authed.POST("/cartoon/:cartoonId", h.Toggle)
			authed.GET("/cartoon/:cartoonId/is-liked", h.IsLiked)
		}
	}
}

// Toggle flips the acting user's like for a cartoon
// POST /api/cartoon-like/cartoon/:cartoonId
func (h *LikeHandler) Toggle(c *gin.Context) {
	liked, err := h.likeService.Toggle(c.Request.Context(), middleware.CurrentActor(c), c.Param("cartoonId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToggleLikeResponse{Liked: liked})
}

// IsLiked reports whether the acting user likes a cartoon
// GET /api/cartoon-like/cartoon/:cartoonId/is-liked
func (h *LikeHandler) IsLiked(c *gin.Context) {
	liked, err := h.likeService.IsLiked(c.Request.Context(), middleware.CurrentActor(c), c.Param("cartoonId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IsLikedResponse{IsLiked: liked})
}

// Count returns a cartoon's like count
// GET /api/cartoon-like/cartoon/:cartoonId/count
func (h *LikeHandler) Count(c *gin.Context) {
	count, err := h.likeService.Count(c.Request.Context(), c.Param("cartoonId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeCountResponse{Count: count})
}

// ListByCartoon returns who liked a cartoon
// GET /api/cartoon-like/cartoon/:cartoonId/users
func (h *LikeHandler) ListByCartoon(c *gin.Context) {
	likes, err := h.likeService.FindByCartoon(c.Request.Context(), c.Param("cartoonId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}
