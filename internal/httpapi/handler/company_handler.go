package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/service"
)

type CompanyHandler struct {
	companyService service.CompanyService
	guard          *middleware.Guard
}

func NewCompanyHandler(companyService service.CompanyService, guard *middleware.Guard) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, guard: guard}
}

func (h *CompanyHandler) RegisterRoutes(router *gin.RouterGroup) {
	companies := router.Group("/company")
	companies.Use(h.guard.Authenticate(), middleware.RequireRoles(models.RoleAdmin))
	{
		companies.GET("", h.List)
		companies.GET("/:id", h.Get)
	}
}

// List returns companies page by page
// GET /api/company?page=1&limit=10
func (h *CompanyHandler) List(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.companyService.FindAllPaginated(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns one company
// GET /api/company/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}
