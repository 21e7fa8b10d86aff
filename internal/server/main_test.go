package server

import (
	"testing"

	"smash/internal/config"
	"smash/internal/models"
	"smash/internal/notifications"
	"smash/internal/repository"
	"smash/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Interaction{},
		&models.Report{},
		&models.Ad{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newTestServer wires a Server against in-memory sqlite with no Redis.
// It builds the struct directly so tests do not re-register the
// Prometheus collectors.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	db := setupServerTestDB(t)

	notifier := notifications.NewNotifier(nil)
	s := &Server{
		config: &config.Config{
			JWTSecret: "test-secret-that-is-long-enough-1234",
			Port:      "8080",
		},
		db:              db,
		userRepo:        repository.NewUserRepository(db),
		postRepo:        repository.NewPostRepository(db),
		commentRepo:     repository.NewCommentRepository(db),
		interactionRepo: repository.NewInteractionRepository(db),
		reportRepo:      repository.NewReportRepository(db),
		adRepo:          repository.NewAdRepository(db),
		notifier:        notifier,
	}

	s.userService = service.NewUserService(s.userRepo)
	s.postService = service.NewPostService(s.postRepo, s.isStaffByUserID)
	s.commentService = service.NewCommentService(s.commentRepo, s.postRepo, notifier, s.isStaffByUserID)
	s.interactionService = service.NewInteractionService(db, notifier)
	s.reportService = service.NewReportService(db, s.reportRepo, notifier)
	s.adService = service.NewAdService(s.adRepo)

	return s
}

func createUser(t *testing.T, db *gorm.DB, username, password string, staff bool) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		IsStaff:  staff,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Title: title, Content: "some padel content"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

// withUser registers handler with the authenticated user preset, the way
// AuthRequired would have left it.
func withUser(userID uint, handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return handler(c)
	}
}
