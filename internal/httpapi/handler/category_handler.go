package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	guard           *middleware.Guard
}

func NewCategoryHandler(categoryService service.CategoryService, guard *middleware.Guard) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, guard: guard}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/category-cartoon")
	{
		categories.GET("", h.List)
		categories.GET("/:id", h.Get)

		admin := categories.Group("")
		admin.Use(h.guard.Authenticate(), middleware.RequireRoles(models.RoleAdmin))
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// List returns all categories
// GET /api/category-cartoon
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Get returns one category
// GET /api/category-cartoon/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categoryService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create adds a category
// POST /api/category-cartoon
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update edits a category
// PUT /api/category-cartoon/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete soft-deletes a category
// DELETE /api/category-cartoon/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
