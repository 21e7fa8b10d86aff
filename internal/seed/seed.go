// Package seed populates the database with realistic development data.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"smash/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account gets.
const DefaultPassword = "Padel4Life!2024"

var (
	skillLevels = []models.SkillLevel{
		models.SkillBeginner, models.SkillIntermediate, models.SkillAdvanced, models.SkillPro,
	}
	courtSides = []models.CourtSide{
		models.CourtSideLeft, models.CourtSideRight, models.CourtSideBoth,
	}
	reportReasons = []models.ReportReason{
		models.ReasonHarassment, models.ReasonSpam, models.ReasonInappropriate, models.ReasonOther,
	}
	postTopics = []string{
		"Best padel rackets for %s players",
		"Match recap: %s open",
		"Looking for a %s-side partner this weekend",
		"Drills that fixed my %s",
		"Court review: %s",
	}
)

// Seeder seeds the database.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll truncates all application tables.
func (s *Seeder) ClearAll() error {
	tables := []string{"interactions", "reports", "comments", "posts", "ads", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds users, posts, comments, reactions, reports, and ads.
// Counters are written consistently with the ledger rows.
func (s *Seeder) Run(numUsers, numPosts int) error {
	users, err := s.seedUsers(numUsers)
	if err != nil {
		return err
	}
	posts, err := s.seedPosts(users, numPosts)
	if err != nil {
		return err
	}
	comments, err := s.seedComments(users, posts)
	if err != nil {
		return err
	}
	if err := s.seedReactions(users, posts, comments); err != nil {
		return err
	}
	if err := s.seedReports(users, posts, comments); err != nil {
		return err
	}
	if err := s.seedAds(); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d posts, %d comments", len(users), len(posts), len(comments))
	return nil
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n+1)

	admin := &models.User{
		Username:    "admin",
		Email:       "admin@smash.local",
		Password:    string(hash),
		IsStaff:     true,
		DisplayName: "Site Admin",
		SkillLevel:  models.SkillAdvanced,
		CourtSide:   models.CourtSideBoth,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	users = append(users, admin)

	for i := 0; i < n; i++ {
		user := &models.User{
			Username:    fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:       fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			Password:    string(hash),
			DisplayName: gofakeit.Name(),
			Bio:         gofakeit.Sentence(12),
			SkillLevel:  skillLevels[rand.Intn(len(skillLevels))],
			CourtSide:   courtSides[rand.Intn(len(courtSides))],
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedPosts(users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		topic := postTopics[rand.Intn(len(postTopics))]
		post := &models.Post{
			Title:   fmt.Sprintf(topic, gofakeit.Word()),
			Content: gofakeit.Paragraph(2, 4, 12, "\n"),
			UserID:  author.ID,
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("seed post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedComments(users []*models.User, posts []*models.Post) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, post := range posts {
		count := rand.Intn(5)
		for i := 0; i < count; i++ {
			comment := &models.Comment{
				PostID:  post.ID,
				UserID:  users[rand.Intn(len(users))].ID,
				Content: gofakeit.Sentence(10),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return nil, fmt.Errorf("seed comment: %w", err)
			}
			comments = append(comments, comment)

			// Occasionally reply to the comment just created.
			if rand.Intn(3) == 0 {
				reply := &models.Comment{
					PostID:   post.ID,
					UserID:   users[rand.Intn(len(users))].ID,
					ParentID: &comment.ID,
					Content:  gofakeit.Sentence(8),
				}
				if err := s.db.Create(reply).Error; err != nil {
					return nil, fmt.Errorf("seed reply: %w", err)
				}
				comments = append(comments, reply)
			}
		}
		if err := s.db.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("comments_count", countComments(comments, post.ID)).Error; err != nil {
			return nil, err
		}
	}
	return comments, nil
}

func countComments(comments []*models.Comment, postID uint) int {
	n := 0
	for _, c := range comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

func (s *Seeder) seedReactions(users []*models.User, posts []*models.Post, comments []*models.Comment) error {
	for _, user := range users {
		for i := 0; i < rand.Intn(8); i++ {
			kind := models.ReactionLike
			if rand.Intn(4) == 0 {
				kind = models.ReactionDislike
			}

			var targetType models.TargetType
			var targetID uint
			if len(comments) > 0 && rand.Intn(2) == 0 {
				targetType = models.TargetComment
				targetID = comments[rand.Intn(len(comments))].ID
			} else {
				targetType = models.TargetPost
				targetID = posts[rand.Intn(len(posts))].ID
			}

			interaction := &models.Interaction{
				UserID:     user.ID,
				TargetType: targetType,
				TargetID:   targetID,
				Kind:       kind,
			}
			// The unique index rejects a second reaction on the same
			// target; skip those.
			if err := s.db.Create(interaction).Error; err != nil {
				continue
			}

			column := "likes_count"
			if kind == models.ReactionDislike {
				column = "dislikes_count"
			}
			table := "posts"
			if targetType == models.TargetComment {
				table = "comments"
			}
			if err := s.db.Table(table).Where("id = ?", targetID).
				UpdateColumn(column, gorm.Expr(column+" + 1")).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedReports(users []*models.User, posts []*models.Post, comments []*models.Comment) error {
	for i := 0; i < len(posts)/10+1; i++ {
		post := posts[rand.Intn(len(posts))]

		// Pick a reporter who is not the author.
		var reporter *models.User
		for _, u := range users {
			if u.ID != post.UserID {
				reporter = u
				break
			}
		}
		if reporter == nil {
			continue
		}

		report := &models.Report{
			ReporterID:  reporter.ID,
			TargetType:  models.TargetPost,
			TargetID:    post.ID,
			Reason:      reportReasons[rand.Intn(len(reportReasons))],
			Description: gofakeit.Sentence(12),
			Status:      models.ReportStatusPending,
		}
		if err := s.db.Create(report).Error; err != nil {
			// Duplicate open report on the same target, skip.
			continue
		}
	}
	return nil
}

func (s *Seeder) seedAds() error {
	now := time.Now()
	weekFromNow := now.AddDate(0, 0, 7)

	ads := []*models.Ad{
		{
			Title:    "Pro Carbon Racket Sale",
			ImageURL: "https://cdn.smash.local/ads/racket.png",
			LinkURL:  "https://shop.example.com/rackets",
			Slot:     models.AdSlotBanner,
			Active:   true,
			Weight:   3,
		},
		{
			Title:    "Court Booking App",
			ImageURL: "https://cdn.smash.local/ads/booking.png",
			LinkURL:  "https://courts.example.com",
			Slot:     models.AdSlotSidebar,
			Active:   true,
			Weight:   1,
		},
		{
			Title:    "Summer Tournament",
			ImageURL: "https://cdn.smash.local/ads/tournament.png",
			LinkURL:  "https://tournaments.example.com/summer",
			Slot:     models.AdSlotFeed,
			Active:   true,
			StartsAt: &now,
			EndsAt:   &weekFromNow,
			Weight:   2,
		},
	}
	for _, ad := range ads {
		if err := s.db.Create(ad).Error; err != nil {
			return fmt.Errorf("seed ad: %w", err)
		}
	}
	return nil
}
