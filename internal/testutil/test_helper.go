package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/noteduco342/storyline-backend/internal/models"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const TestJWTSecret = "test-secret-key-for-testing-only"

// TestHelper provides utility functions for tests
type TestHelper struct {
	t    *testing.T
	base time.Time
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{
		t:    t,
		base: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// At returns a fixed instant offset from the helper's base time.
func (h *TestHelper) At(offset time.Duration) time.Time {
	return h.base.Add(offset)
}

// CreateTestUser builds a user with default values
func (h *TestHelper) CreateTestUser(id, username string, role models.Role) *models.User {
	if id == "" {
		id = "u1"
	}
	if username == "" {
		username = "user_" + id
	}
	if role == "" {
		role = models.RoleReader
	}
	return &models.User{
		ID:        id,
		Username:  username,
		Email:     username + "@example.com",
		Role:      role,
		Avatar:    "https://example.com/" + id + ".png",
		Bio:       "Test user " + id,
		CreatedAt: h.base,
		UpdatedAt: h.base,
	}
}

// CreateTestPost builds a post created offset after the helper's base time
func (h *TestHelper) CreateTestPost(id string, author *models.User, published bool, offset time.Duration) *models.Post {
	created := h.At(offset)
	return &models.Post{
		ID:         id,
		AuthorID:   author.ID,
		AuthorName: author.Username,
		Title:      "Post " + id,
		Excerpt:    "Excerpt " + id,
		Content:    "Content of post " + id,
		Category:   "General",
		ReadTime:   "3 min read",
		Published:  published,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

// NewTestDB opens a migrated SQLite database private to the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	// SQLite allows one writer; a single connection serialises transactions.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Follow{},
		&models.Like{},
		&models.Bookmark{},
		&models.ReadingHistory{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// Seed inserts the given rows, failing the test on error.
func Seed(t *testing.T, db *gorm.DB, rows ...interface{}) {
	t.Helper()
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}
}

// Token signs an HS256 access token the auth middleware accepts.
func Token(t *testing.T, userID string, role models.Role, username string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":      userID,
		"role":     string(role),
		"username": username,
		"email":    username + "@example.com",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// Bearer formats a token for the Authorization header.
func Bearer(token string) string {
	return fmt.Sprintf("Bearer %s", token)
}
