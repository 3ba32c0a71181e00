package service

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cartoonhub/internal/auth"
	"cartoonhub/internal/httpapi/models"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Chain{},
		&models.CategoryCartoon{},
		&models.Cartoon{},
		&models.CartoonRating{},
		&models.CartoonLike{},
		&models.CartoonComment{},
		&models.CompanyRegistrationRequest{},
		&models.PasswordReset{},
		&models.EmailVerification{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hashed, err := auth.HashPassword("secret-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Email:      email,
		Password:   hashed,
		FirstName:  "Test",
		LastName:   "User",
		Role:       role,
		IsVerified: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCompany(t *testing.T, db *gorm.DB, email string) *models.Company {
	t.Helper()

	company := &models.Company{
		Name:     "Acme Animation",
		Address:  "1 Studio Way",
		Email:    email,
		IsActive: true,
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return company
}

func seedChain(t *testing.T, db *gorm.DB, companyID string) *models.Chain {
	t.Helper()

	chain := &models.Chain{
		Name:        "Acme Channel",
		Description: "All the cartoons",
		CompanyID:   &companyID,
	}
	if err := db.Create(chain).Error; err != nil {
		t.Fatalf("seed chain: %v", err)
	}
	return chain
}

func seedCartoon(t *testing.T, db *gorm.DB, chainID string) *models.Cartoon {
	t.Helper()

	cartoon := &models.Cartoon{
		Title:    "Space Cats",
		VideoURL: "https://cdn.example.com/space-cats.mp4",
		ChainID:  chainID,
	}
	if err := db.Create(cartoon).Error; err != nil {
		t.Fatalf("seed cartoon: %v", err)
	}
	return cartoon
}

func actorFor(user *models.User) Actor {
	return Actor{ID: user.ID, Email: user.Email, Role: user.Role}
}

var testOTPTTL = 15 * time.Minute
