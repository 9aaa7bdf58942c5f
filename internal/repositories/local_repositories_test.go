package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skincache/internal/models"
	"skincache/internal/repositories"
)

var localDBCounter int

func setupLocalDB(t *testing.T) *gorm.DB {
	t.Helper()
	localDBCounter++
	dsn := fmt.Sprintf("file:localtest%d?mode=memory&cache=shared", localDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Review{}))
	return db
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupLocalDB(t))

	require.NoError(t, repo.Create(&models.User{Name: "Ana", Email: "a@x.com"}))

	err := repo.Create(&models.User{Name: "Other Ana", Email: "a@x.com"})
	assert.ErrorIs(t, err, repositories.ErrEmailTaken)

	user, err := repo.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	_, err = repo.GetByEmail("nobody@x.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestReviewRepository_NewestFirst(t *testing.T) {
	repo := repositories.NewGORMReviewRepository(setupLocalDB(t))

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(&models.Review{
			Name:  "Ana",
			Title: fmt.Sprintf("Review %d", i),
		}))
	}

	reviews, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "Review 3", reviews[0].Title)
	assert.Equal(t, "Review 1", reviews[2].Title)
}

func TestReviewRepository_ExistsByTitleAndName(t *testing.T) {
	repo := repositories.NewGORMReviewRepository(setupLocalDB(t))

	require.NoError(t, repo.Create(&models.Review{Name: "Ana", Title: "Finally works"}))

	exists, err := repo.ExistsByTitleAndName("Finally works", "Ana")
	require.NoError(t, err)
	assert.True(t, exists)

	// Same title by a different author is a different review.
	exists, err = repo.ExistsByTitleAndName("Finally works", "Bea")
	require.NoError(t, err)
	assert.False(t, exists)
}
