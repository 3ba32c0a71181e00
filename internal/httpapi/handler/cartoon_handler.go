package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/service"
)

type CartoonHandler struct {
	cartoonService service.CartoonService
	guard          *middleware.Guard
}

func NewCartoonHandler(cartoonService service.CartoonService, guard *middleware.Guard) *CartoonHandler {
	return &CartoonHandler{cartoonService: cartoonService, guard: guard}
}

func (h *CartoonHandler) RegisterRoutes(router *gin.RouterGroup) {
	cartoons := router.Group("/cartoon")
	{
		cartoons.GET("", h.List)
		cartoons.GET("/:id", h.Get)
		cartoons.GET("/chain/:chainId", h.ListByChain)

		authed := cartoons.Group("")
		authed.Use(h.guard.Authenticate(), middleware.RequireRoles(models.RoleCreator, models.RoleAdmin))
		{
			authed.POST("/chain/:chainId", h.Create)
			authed.PUT("/:id", h.Update)
			authed.DELETE("/:id", h.Delete)
		}
	}
}

// List returns cartoons page by page
// GET /api/cartoon?page=1&limit=10
func (h *CartoonHandler) List(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.cartoonService.FindAllPaginated(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns one cartoon
// GET /api/cartoon/:id
func (h *CartoonHandler) Get(c *gin.Context) {
	cartoon, err := h.cartoonService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cartoon)
}

// ListByChain returns a chain's cartoons page by page
// GET /api/cartoon/chain/:chainId?page=1&limit=10
func (h *CartoonHandler) ListByChain(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.cartoonService.FindByChainPaginated(c.Request.Context(), c.Param("chainId"), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create adds a cartoon to a chain
// POST /api/cartoon/chain/:chainId
func (h *CartoonHandler) Create(c *gin.Context) {
	var req dto.CreateCartoonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cartoon, err := h.cartoonService.Create(c.Request.Context(), middleware.CurrentActor(c), c.Param("chainId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cartoon)
}

// Update edits a cartoon
// PUT /api/cartoon/:id
func (h *CartoonHandler) Update(c *gin.Context) {
	var req dto.UpdateCartoonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cartoon, err := h.cartoonService.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cartoon)
}

// Delete soft-deletes a cartoon
// DELETE /api/cartoon/:id
func (h *CartoonHandler) Delete(c *gin.Context) {
	if err := h.cartoonService.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cartoon deleted"})
}
