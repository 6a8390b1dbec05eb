package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"newsroom/internal/config"
	"newsroom/internal/db"
	"newsroom/internal/models"
	"newsroom/internal/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestPassword is the plain password of every fixture user.
const TestPassword = "password123"

// SetupTestDB opens a fresh sqlite database in the test's temp dir with the
// full schema. A single connection keeps writers serialized.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "newsroom.db")
	conn, err := gorm.Open(sqlite.Open(db.SQLiteDSN(path)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() config.Config {
	return config.Config{
		Port:           3318,
		DatabaseType:   config.DatabaseSQLite,
		DatabaseURL:    "file::memory:",
		JWTSecretKey:   "test-jwt-secret",
		TokenIssuer:    "newsroom-test",
		TokenTTL:       time.Hour,
		SessionSecret:  "test-session-secret",
		RequestTimeout: 5 * time.Second,
		MaxPageSize:    100,
	}
}

// CreateTestUser creates a user whose password is TestPassword.
func CreateTestUser(t *testing.T, conn *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{
		Username: username,
		Password: hash,
		Name:     username,
	}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

// CreateTestPost creates a post authored by userID.
func CreateTestPost(t *testing.T, conn *gorm.DB, userID uint, title string) *models.Post {
	t.Helper()
	return CreateTestPostAt(t, conn, userID, title, time.Now())
}

// CreateTestPostAt creates a post with a fixed creation time.
func CreateTestPostAt(t *testing.T, conn *gorm.DB, userID uint, title string, at time.Time) *models.Post {
	t.Helper()

	post := models.Post{
		UserID:    userID,
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := conn.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return &post
}

// CreateTestPosts creates n posts one minute apart, oldest first, titled
// "post 1" .. "post n".
func CreateTestPosts(t *testing.T, conn *gorm.DB, userID uint, n int) []*models.Post {
	t.Helper()

	base := time.Now().Add(-time.Duration(n) * time.Minute)
	posts := make([]*models.Post, 0, n)
	for i := 1; i <= n; i++ {
		posts = append(posts, CreateTestPostAt(t, conn, userID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute)))
	}
	return posts
}

func CreateTestComment(t *testing.T, conn *gorm.DB, userID, postID uint, content string) *models.Comment {
	t.Helper()

	comment := models.Comment{UserID: userID, PostID: postID, Content: content}
	if err := conn.Create(&comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
	return &comment
}

func CreateTestLike(t *testing.T, conn *gorm.DB, userID, postID uint) *models.Like {
	t.Helper()

	like := models.Like{UserID: userID, PostID: postID}
	if err := conn.Create(&like).Error; err != nil {
		t.Fatalf("Failed to create test like: %v", err)
	}
	return &like
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
