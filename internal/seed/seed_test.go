package seed

import (
	"testing"

	"smash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Interaction{},
		&models.Report{},
		&models.Ad{},
	))
	return db
}

func TestSeederRun(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Run(5, 10))

	var users, posts, ads int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Ad{}).Count(&ads)

	// 5 fake users plus the admin account.
	assert.Equal(t, int64(6), users)
	assert.Equal(t, int64(10), posts)
	assert.Equal(t, int64(3), ads)

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsStaff)

	t.Run("comment counters match the rows", func(t *testing.T) {
		var seededPosts []models.Post
		require.NoError(t, db.Find(&seededPosts).Error)
		for _, post := range seededPosts {
			var count int64
			db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
			assert.EqualValues(t, count, post.CommentsCount,
				"post %d counter disagrees with its comments", post.ID)
		}
	})

	t.Run("reaction counters match the ledger", func(t *testing.T) {
		var seededPosts []models.Post
		require.NoError(t, db.Find(&seededPosts).Error)
		for _, post := range seededPosts {
			var likes int64
			db.Model(&models.Interaction{}).
				Where("target_type = ? AND target_id = ? AND kind = ?",
					models.TargetPost, post.ID, models.ReactionLike).
				Count(&likes)
			assert.EqualValues(t, likes, post.LikesCount,
				"post %d likes counter disagrees with the ledger", post.ID)
		}
	})

	t.Run("no self reports", func(t *testing.T) {
		var reports []models.Report
		require.NoError(t, db.Find(&reports).Error)
		for _, report := range reports {
			var post models.Post
			require.NoError(t, db.First(&post, report.TargetID).Error)
			assert.NotEqual(t, post.UserID, report.ReporterID)
		}
	})
}

func TestSeederClearAll(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Run(3, 5))
	require.NoError(t, seeder.ClearAll())

	for _, model := range []any{
		&models.User{}, &models.Post{}, &models.Comment{},
		&models.Interaction{}, &models.Report{}, &models.Ad{},
	} {
		var count int64
		db.Unscoped().Model(model).Count(&count)
		assert.Zero(t, count)
	}
}
