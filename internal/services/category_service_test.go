package services

import (
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCategoryTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.Category{})
	db.AutoMigrate(&models.Category{})

	database.DB = db
}

func TestCreateCategory(t *testing.T) {
	setupCategoryTestDB()

	created, err := CreateCategory("Games", "games", "Game keys")
	assert.NoError(t, err)
	assert.Equal(t, "Games", created.Name)

	// Duplicate name
	_, err = CreateCategory("Games", "games-2", "")
	assert.ErrorIs(t, err, ErrCategoryAlreadyExists)

	// Duplicate slug
	_, err = CreateCategory("Games 2", "games", "")
	assert.ErrorIs(t, err, ErrCategoryAlreadyExists)
}

func TestFindCategories_SortedByName(t *testing.T) {
	setupCategoryTestDB()

	CreateCategory("Software", "software", "")
	CreateCategory("Games", "games", "")
	CreateCategory("Music", "music", "")

	categories, err := FindCategories()
	assert.NoError(t, err)
	assert.Len(t, categories, 3)
	assert.Equal(t, "Games", categories[0].Name)
	assert.Equal(t, "Music", categories[1].Name)
	assert.Equal(t, "Software", categories[2].Name)
}
