package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/service"
)

type UserHandler struct {
	userService service.UserService
	guard       *middleware.Guard
	limiter     *middleware.RateLimiter
}

func NewUserHandler(userService service.UserService, guard *middleware.Guard, limiter *middleware.RateLimiter) *UserHandler {
	return &UserHandler{userService: userService, guard: guard, limiter: limiter}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/user")
	{
		// Public: signup and email verification.
		users.POST("", h.Create)
		users.POST("/verify-email", h.limiter.Middleware(), h.VerifyEmail)
		users.POST("/resend-verification", h.limiter.Middleware(), h.ResendVerification)

		authed := users.Group("")
		authed.Use(h.guard.Authenticate())
		{
			authed.GET("", middleware.RequireRoles(models.RoleAdmin), h.List)
			authed.GET("/paginated", middleware.RequireRoles(models.RoleAdmin), h.ListPaginated)
			authed.GET("/:id", h.Get)
			authed.PATCH("/:id", h.Update)
			authed.DELETE("/:id", h.Delete)
			authed.PATCH("/:id/lock", middleware.RequireRoles(models.RoleAdmin), h.SetLocked)
		}
	}
}

// Create signs up a new account
// POST /api/user
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// VerifyEmail consumes the emailed verification code
// POST /api/user/verify-email
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.VerifyEmail(c.Request.Context(), req); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// ResendVerification reissues the verification code
// POST /api/user/resend-verification
func (h *UserHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "a new verification code has been sent"})
}

// List returns all users
// GET /api/user
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListPaginated returns users page by page
// GET /api/user/paginated?page=1&limit=10
func (h *UserHandler) ListPaginated(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.userService.FindAllPaginated(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns one user
// GET /api/user/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update edits a profile (own profile, or any as admin)
// PATCH /api/user/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete soft-deletes an account
// DELETE /api/user/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// SetLocked locks or unlocks an account
// PATCH /api/user/:id/lock
func (h *UserHandler) SetLocked(c *gin.Context) {
	var req dto.LockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.SetLocked(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), *req.Locked)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
