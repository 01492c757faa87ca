package services

import (
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.User{}, &models.Category{}, &models.Product{},
		&models.CartItem{}, &models.Order{})
	db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{},
		&models.CartItem{}, &models.Order{})

	database.DB = db
}

func seedProductCatalog() (models.Category, models.Category) {
	games := models.Category{Name: "Games", Slug: "games"}
	software := models.Category{Name: "Software", Slug: "software"}
	database.DB.Create(&games)
	database.DB.Create(&software)

	database.DB.Create(&models.Product{
		Title: "Cheap Game", Description: "fun", Price: 10.0,
		CategoryID: games.ID, IsActive: true, LicenseKey: "K1",
	})
	database.DB.Create(&models.Product{
		Title: "Pricey Game", Description: "epic adventure", Price: 90.0,
		CategoryID: games.ID, IsActive: true, IsFeatured: true, LicenseKey: "K2",
	})
	database.DB.Create(&models.Product{
		Title: "Editor", Description: "writes code", Price: 50.0,
		CategoryID: software.ID, IsActive: true, LicenseKey: "K3",
	})
	database.DB.Create(&models.Product{
		Title: "Hidden", Description: "inactive", Price: 5.0,
		CategoryID: software.ID, IsActive: false, LicenseKey: "K4",
	})
	return games, software
}

func TestFindActiveProducts_Filters(t *testing.T) {
	setupProductTestDB()
	seedProductCatalog()

	// Inactive products are excluded
	products, err := FindActiveProducts(ProductFilter{})
	assert.NoError(t, err)
	assert.Len(t, products, 3)

	// Category filter, case-insensitive
	products, err = FindActiveProducts(ProductFilter{Category: "GAMES"})
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	// "all" means no category filter
	products, err = FindActiveProducts(ProductFilter{Category: "all"})
	assert.NoError(t, err)
	assert.Len(t, products, 3)

	// Search over title and description
	products, err = FindActiveProducts(ProductFilter{Search: "epic"})
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Pricey Game", products[0].Title)

	// Price range
	min, max := 20.0, 100.0
	products, err = FindActiveProducts(ProductFilter{MinPrice: &min, MaxPrice: &max})
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	// Sort by price ascending
	products, err = FindActiveProducts(ProductFilter{SortBy: SortPriceLow})
	assert.NoError(t, err)
	assert.Equal(t, "Cheap Game", products[0].Title)

	products, err = FindActiveProducts(ProductFilter{SortBy: SortPriceHigh})
	assert.NoError(t, err)
	assert.Equal(t, "Pricey Game", products[0].Title)

	// Featured first
	products, err = FindActiveProducts(ProductFilter{SortBy: SortFeatured})
	assert.NoError(t, err)
	assert.Equal(t, "Pricey Game", products[0].Title)
}

func TestGetActiveProduct(t *testing.T) {
	setupProductTestDB()
	seedProductCatalog()

	var hidden models.Product
	database.DB.Where("title = ?", "Hidden").First(&hidden)

	_, err := GetActiveProduct(hidden.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	var visible models.Product
	database.DB.Where("title = ?", "Editor").First(&visible)

	product, err := GetActiveProduct(visible.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Software", product.Category.Name)
}

func TestProduct_ExplicitInactiveSurvivesInsert(t *testing.T) {
	setupProductTestDB()
	games, _ := seedProductCatalog()

	created := models.Product{
		Title: "Delisted", Description: "d", Price: 5.0,
		CategoryID: games.ID, IsActive: false, LicenseKey: "KEY-OFF",
	}
	assert.NoError(t, database.DB.Create(&created).Error)

	var reloaded models.Product
	database.DB.First(&reloaded, created.ID)
	assert.False(t, reloaded.IsActive)
}

func TestCreateProduct(t *testing.T) {
	setupProductTestDB()
	games, _ := seedProductCatalog()

	product, err := CreateProduct(CreateProductInput{
		Title:       "New Game",
		Description: "brand new",
		Price:       25.0,
		CategoryID:  games.ID,
		LicenseKey:  "K-NEW",
	})
	assert.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.False(t, product.IsSold)
	assert.Equal(t, "Games", product.Category.Name)

	_, err = CreateProduct(CreateProductInput{
		Title: "Orphan", Description: "x", Price: 1.0, CategoryID: 9999, LicenseKey: "K",
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateProduct_Partial(t *testing.T) {
	setupProductTestDB()
	seedProductCatalog()

	var product models.Product
	database.DB.Where("title = ?", "Cheap Game").First(&product)

	newPrice := 15.0
	inactive := false
	updated, err := UpdateProduct(product.ID, ProductUpdate{
		Price:    &newPrice,
		IsActive: &inactive,
	})
	assert.NoError(t, err)
	assert.Equal(t, 15.0, updated.Price)
	assert.False(t, updated.IsActive)
	// Untouched fields survive
	assert.Equal(t, "Cheap Game", updated.Title)
	assert.Equal(t, "K1", updated.LicenseKey)

	_, err = UpdateProduct(9999, ProductUpdate{Price: &newPrice})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct_RestrictedWhenOrdered(t *testing.T) {
	setupProductTestDB()
	seedProductCatalog()

	user := models.User{Username: "del", Email: "del@test.com", Password: "x"}
	database.DB.Create(&user)

	var ordered models.Product
	database.DB.Where("title = ?", "Pricey Game").First(&ordered)

	database.DB.Create(&models.Order{
		ID: "order1", UserID: user.ID, ProductID: ordered.ID,
		Amount: 90.0, Status: models.OrderStatusCompleted, PaymentMethod: "balance",
	})

	err := DeleteProduct(ordered.ID)
	assert.ErrorIs(t, err, ErrProductReferenced)

	var stillThere models.Product
	assert.NoError(t, database.DB.First(&stillThere, ordered.ID).Error)
}

func TestDeleteProduct_RemovesCartLines(t *testing.T) {
	setupProductTestDB()
	seedProductCatalog()

	user := models.User{Username: "cartdel", Email: "cartdel@test.com", Password: "x"}
	database.DB.Create(&user)

	var product models.Product
	database.DB.Where("title = ?", "Cheap Game").First(&product)

	database.DB.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})

	err := DeleteProduct(product.ID)
	assert.NoError(t, err)

	var cartCount int64
	database.DB.Model(&models.CartItem{}).Where("product_id = ?", product.ID).Count(&cartCount)
	assert.Equal(t, int64(0), cartCount)

	err = DeleteProduct(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
