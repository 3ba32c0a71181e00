package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/service"
)

type RegistrationHandler struct {
	registrationService service.RegistrationService
	guard               *middleware.Guard
	limiter             *middleware.RateLimiter
}

func NewRegistrationHandler(
	registrationService service.RegistrationService,
	guard *middleware.Guard,
	limiter *middleware.RateLimiter,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		guard:               guard,
		limiter:             limiter,
	}
}

func (h *RegistrationHandler) RegisterRoutes(router *gin.RouterGroup) {
	registrations := router.Group("/company-registration")
	{
		// Public entry point for companies applying to join.
		registrations.POST("", h.limiter.Middleware(), h.Create)

		admin := registrations.Group("")
		admin.Use(h.guard.Authenticate(), middleware.RequireRoles(models.RoleAdmin))
		{
			admin.POST("/direct", h.CreateDirect)
			admin.GET("", h.List)
			admin.GET("/status/:status", h.ListByStatus)
			admin.GET("/:id", h.Get)
			admin.PATCH("/:id", h.Update)
			admin.POST("/:id/review", h.Review)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// Create files a registration request
// POST /api/company-registration
func (h *RegistrationHandler) Create(c *gin.Context) {
	var req dto.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.registrationService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// CreateDirect creates a company and its creator account without review
// POST /api/company-registration/direct
func (h *RegistrationHandler) CreateDirect(c *gin.Context) {
	var req dto.CreateCompanyDirectlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.registrationService.CreateCompanyDirectly(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// List returns registration requests page by page
// GET /api/company-registration?page=1&limit=10
func (h *RegistrationHandler) List(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.registrationService.FindAllPaginated(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListByStatus filters requests by state
// GET /api/company-registration/status/:status?page=1&limit=10
func (h *RegistrationHandler) ListByStatus(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.registrationService.FindByStatusPaginated(c.Request.Context(), c.Param("status"), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns one registration request
// GET /api/company-registration/:id
func (h *RegistrationHandler) Get(c *gin.Context) {
	request, err := h.registrationService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// Update edits a pending request
// PATCH /api/company-registration/:id
func (h *RegistrationHandler) Update(c *gin.Context) {
	var req dto.UpdateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.registrationService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// Review approves or rejects a pending request
// POST /api/company-registration/:id/review
func (h *RegistrationHandler) Review(c *gin.Context) {
	var req dto.ReviewRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.registrationService.Review(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// Delete removes a pending or rejected request
// DELETE /api/company-registration/:id
func (h *RegistrationHandler) Delete(c *gin.Context) {
	if err := h.registrationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registration request deleted"})
}
