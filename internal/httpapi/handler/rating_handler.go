package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/service"
)

type RatingHandler struct {
	ratingService service.RatingService
	guard         *middleware.Guard
}

func NewRatingHandler(ratingService service.RatingService, guard *middleware.Guard) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, guard: guard}
}

func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	ratings := router.Group("/cartoon-rating")
	{
		ratings.GET("/cartoon/:cartoonId", h.ListByCartoon)

		authed := ratings.Group("")
		authed.Use(h.guard.Authenticate())
		{
			authed.POST("/cartoon/:cartoonId", h.Rate)
			authed.GET("/cartoon/:cartoonId/my-rating", h.MyRating)
			authed.DELETE("/:id", h.Delete)
		}
	}
}

// Rate creates or updates the acting user's rating
// POST /api/cartoon-rating/cartoon/:cartoonId
func (h *RatingHandler) Rate(c *gin.Context) {
	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratingService.RateCartoon(c.Request.Context(), middleware.CurrentActor(c), c.Param("cartoonId"), *req.Rating)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// ListByCartoon returns a cartoon's ratings page by page
// GET /api/cartoon-rating/cartoon/:cartoonId?page=1&limit=10
func (h *RatingHandler) ListByCartoon(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.ratingService.FindByCartoonPaginated(c.Request.Context(), c.Param("cartoonId"), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// MyRating returns the acting user's rating for a cartoon
// GET /api/cartoon-rating/cartoon/:cartoonId/my-rating
func (h *RatingHandler) MyRating(c *gin.Context) {
	rating, err := h.ratingService.MyRating(c.Request.Context(), middleware.CurrentActor(c), c.Param("cartoonId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// Delete removes a rating and recomputes the cartoon's mean
// DELETE /api/cartoon-rating/:id
func (h *RatingHandler) Delete(c *gin.Context) {
	if err := h.ratingService.DeleteRating(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rating deleted"})
}
