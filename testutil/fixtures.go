package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/utils"
)

// CreateTestUser inserts a user with the given roles. The password is "testpass123".
func CreateTestUser(t *testing.T, db *gorm.DB, email string, roles ...models.UserRole) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("testpass123")
	require.NoError(t, err)
	user := &models.User{FullName: email, Email: email, Password: hash, Roles: roles}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateTestProgram inserts a program with a slug derived from title.
func CreateTestProgram(t *testing.T, db *gorm.DB, title string, category *models.Category, owner *models.User) *models.Program {
	t.Helper()
	program := &models.Program{
		Title:   title,
		Slug:    utils.Slugify(title),
		Summary: fmt.Sprintf("Summary of %s", title),
	}
	program.SetCategory(category)
	program.SetOwner(owner)
	require.NoError(t, db.Omit(clause.Associations).Create(program).Error)
	return program
}

func CreateTestSeason(t *testing.T, db *gorm.DB, program *models.Program, number int) *models.Season {
	t.Helper()
	season := &models.Season{Number: number, Year: 2010 + number, Description: fmt.Sprintf("Season %d", number)}
	season.SetProgram(program)
	require.NoError(t, db.Omit(clause.Associations).Create(season).Error)
	return season
}

func CreateTestEpisode(t *testing.T, db *gorm.DB, season *models.Season, number int, title string) *models.Episode {
	t.Helper()
	episode := &models.Episode{Number: number, Title: title, Slug: utils.Slugify(title), Summary: title}
	episode.SetSeason(season)
	require.NoError(t, db.Omit(clause.Associations).Create(episode).Error)
	return episode
}
