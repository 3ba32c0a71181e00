package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cartoonhub/internal/auth"
	"cartoonhub/internal/config"
	"cartoonhub/internal/httpapi/dto"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/models"
	"cartoonhub/internal/httpapi/repository"
	"cartoonhub/internal/httpapi/service"
	"cartoonhub/internal/mailer"
)

type guardFixture struct {
	db          *gorm.DB
	authService service.AuthService
	guard       *middleware.Guard
	router      *gin.Engine
	user        *models.User
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.PasswordReset{}, &models.EmailVerification{}))

	hashed, err := auth.HashPassword("secret-password")
	require.NoError(t, err)
	user := &models.User{
		Email:      "one@example.com",
		Password:   hashed,
		FirstName:  "Test",
		Role:       models.RoleUser,
		IsVerified: true,
	}
	require.NoError(t, db.Create(user).Error)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	userRepo := repository.NewUserRepository(db)
	otpService := service.NewOTPService(
		repository.NewPasswordResetRepository(db),
		repository.NewEmailVerificationRepository(db),
		15*time.Minute,
	)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour, ResetTokenTTL: 15 * time.Minute}
	authService := service.NewAuthService(userRepo, otpService, &mailer.LogSender{Logger: logger}, cfg, logger)
	guard := middleware.NewGuard(authService, userRepo)

	router := gin.New()
	protected := router.Group("/protected", guard.Authenticate())
	protected.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": middleware.CurrentActor(c).Email})
	})
	protected.GET("/admin", middleware.RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return &guardFixture{db: db, authService: authService, guard: guard, router: router, user: user}
}

func (f *guardFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *guardFixture) login(t *testing.T) string {
	t.Helper()
	resp, err := f.authService.Login(context.Background(), dto.LoginRequest{
		Email:    "one@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	return resp.AccessToken
}

func TestGuardRejectsMissingOrBadToken(t *testing.T) {
	f := newGuardFixture(t)

	assert.Equal(t, http.StatusUnauthorized, f.get("/protected", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.get("/protected", "garbage").Code)
}

func TestGuardAcceptsValidToken(t *testing.T) {
	f := newGuardFixture(t)
	token := f.login(t)

	assert.Equal(t, http.StatusOK, f.get("/protected", token).Code)
}

func TestGuardLockBitesImmediately(t *testing.T) {
	f := newGuardFixture(t)
	token := f.login(t)

	require.Equal(t, http.StatusOK, f.get("/protected", token).Code)

	// Lock the account; the still-valid token must stop working now.
	require.NoError(t, f.db.Model(f.user).Update("is_locked", true).Error)
	assert.Equal(t, http.StatusUnauthorized, f.get("/protected", token).Code)
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	f := newGuardFixture(t)
	token := f.login(t)

	assert.Equal(t, http.StatusForbidden, f.get("/protected/admin", token).Code)
}
