package services

import (
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.User{}, &models.Category{}, &models.Product{}, &models.CartItem{})
	db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.CartItem{})

	database.DB = db
}

func seedCartProduct(active, sold bool) models.Product {
	category := models.Category{Name: "Software", Slug: "software"}
	database.DB.Create(&category)

	product := models.Product{
		Title:       "Editor License",
		Description: "desc",
		Price:       50.0,
		CategoryID:  category.ID,
		IsActive:    active,
		IsSold:      sold,
		LicenseKey:  "KEY-1234",
	}
	database.DB.Create(&product)
	return product
}

func TestAddToCart_UpsertsQuantity(t *testing.T) {
	setupCartTestDB()
	product := seedCartProduct(true, false)

	user := models.User{Username: "cartuser", Email: "cart@test.com", Password: "x"}
	database.DB.Create(&user)

	item, err := AddToCart(user.ID, product.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	// Adding the same product again increments the existing line
	item, err = AddToCart(user.ID, product.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	var count int64
	database.DB.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	summary, err := GetCart(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, summary.Total)
	assert.Equal(t, 1, summary.Count)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	setupCartTestDB()
	product := seedCartProduct(true, false)

	user := models.User{Username: "qtyuser", Email: "qty@test.com", Password: "x"}
	database.DB.Create(&user)

	item, err := AddToCart(user.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Nil(t, item)
}

func TestAddToCart_UnavailableProduct(t *testing.T) {
	setupCartTestDB()

	user := models.User{Username: "unavail", Email: "unavail@test.com", Password: "x"}
	database.DB.Create(&user)

	// Sold
	sold := seedCartProduct(true, true)
	item, err := AddToCart(user.ID, sold.ID, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.Nil(t, item)

	// Inactive
	inactive := seedCartProduct(false, false)
	item, err = AddToCart(user.ID, inactive.ID, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.Nil(t, item)

	// Nonexistent
	item, err = AddToCart(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.Nil(t, item)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	setupCartTestDB()
	product := seedCartProduct(true, false)

	user := models.User{Username: "upd", Email: "upd@test.com", Password: "x"}
	database.DB.Create(&user)
	other := models.User{Username: "other", Email: "other@test.com", Password: "x"}
	database.DB.Create(&other)

	item, err := AddToCart(user.ID, product.ID, 1)
	assert.NoError(t, err)

	updated, err := UpdateCartItemQuantity(user.ID, item.ID, 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	// Quantity below 1 rejected
	_, err = UpdateCartItemQuantity(user.ID, item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Another user's line looks like a missing line
	_, err = UpdateCartItemQuantity(other.ID, item.ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveCartItem(t *testing.T) {
	setupCartTestDB()
	product := seedCartProduct(true, false)

	user := models.User{Username: "rm", Email: "rm@test.com", Password: "x"}
	database.DB.Create(&user)
	other := models.User{Username: "rmother", Email: "rmother@test.com", Password: "x"}
	database.DB.Create(&other)

	item, err := AddToCart(user.ID, product.ID, 1)
	assert.NoError(t, err)

	err = RemoveCartItem(other.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	err = RemoveCartItem(user.ID, item.ID)
	assert.NoError(t, err)

	err = RemoveCartItem(user.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}
