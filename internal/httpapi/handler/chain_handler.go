package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/service"
)

type ChainHandler struct {
	chainService service.ChainService
	guard        *middleware.Guard
}

func NewChainHandler(chainService service.ChainService, guard *middleware.Guard) *ChainHandler {
	return &ChainHandler{chainService: chainService, guard: guard}
}

func (h *ChainHandler) RegisterRoutes(router *gin.RouterGroup) {
	chains := router.Group("/chain")
	{
		chains.GET("", h.List)
		chains.GET("/:id", h.Get)
		chains.GET("/company/:companyId", h.GetByCompany)

		authed := chains.Group("")
		authed.Use(h.guard.Authenticate())
		{
			authed.GET("/my-chain", middleware.RequireRoles(models.RoleCreator), h.MyChain)
			authed.POST("", middleware.RequireRoles(models.RoleCreator), h.Create)
			authed.PUT("/:id", middleware.RequireRoles(models.RoleCreator, models.RoleAdmin), h.Update)
			authed.DELETE("/:id", middleware.RequireRoles(models.RoleCreator, models.RoleAdmin), h.Delete)
		}
	}
}

// List returns chains page by page
// GET /api/chain?page=1&limit=10
func (h *ChainHandler) List(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.chainService.FindAllPaginated(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns one chain
// GET /api/chain/:id
func (h *ChainHandler) Get(c *gin.Context) {
	chain, err := h.chainService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chain)
}

// GetByCompany returns a company's chain
// GET /api/chain/company/:companyId
func (h *ChainHandler) GetByCompany(c *gin.Context) {
	chain, err := h.chainService.FindByCompany(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chain)
}

// MyChain returns the acting creator's chain
// GET /api/chain/my-chain
func (h *ChainHandler) MyChain(c *gin.Context) {
	chain, err := h.chainService.MyChain(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chain)
}

// Create adds the acting creator's chain
// POST /api/chain
func (h *ChainHandler) Create(c *gin.Context) {
	var req dto.CreateChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chain, err := h.chainService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, chain)
}

// Update edits a chain
// PUT /api/chain/:id
func (h *ChainHandler) Update(c *gin.Context) {
	var req dto.UpdateChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chain, err := h.chainService.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chain)
}

// Delete soft-deletes a chain
// DELETE /api/chain/:id
func (h *ChainHandler) Delete(c *gin.Context) {
	if err := h.chainService.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chain deleted"})
}
