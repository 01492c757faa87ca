package checkout_test

import (
	"bytes"
	"encoding/json"
	"keyshop-backend/internal/api/v1/checkout"
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.User{}, &models.Category{}, &models.Product{},
		&models.CartItem{}, &models.Order{}, &models.BalanceTransaction{})
	err = db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{},
		&models.CartItem{}, &models.Order{}, &models.BalanceTransaction{})
	if err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
}

func setupTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func TestCheckoutHandler(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	gin.SetMode(gin.TestMode)

	// Seed data
	category := models.Category{Name: "Games", Slug: "games"}
	database.DB.Create(&category)
	product := models.Product{
		Title: "Game Key", Description: "d", Price: 60.0,
		CategoryID: category.ID, IsActive: true, LicenseKey: "KEY-XYZ",
	}
	database.DB.Create(&product)

	buyer := models.User{Username: "buyer", Email: "buyer@test.com", Password: "x", Balance: 100.0, Version: 1}
	database.DB.Create(&buyer)
	broke := models.User{Username: "broke", Email: "broke@test.com", Password: "x", Balance: 1.0, Version: 1}
	database.DB.Create(&broke)

	database.DB.Create(&models.CartItem{UserID: buyer.ID, ProductID: product.ID, Quantity: 1})
	database.DB.Create(&models.CartItem{UserID: broke.ID, ProductID: product.ID, Quantity: 1})

	tests := []struct {
		name           string
		user           models.User
		reqBody        interface{}
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "Missing payment method",
			user:           buyer,
			reqBody:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unsupported payment method",
			user:           buyer,
			reqBody:        map[string]string{"payment_method": "card"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Insufficient balance",
			user:           broke,
			reqBody:        map[string]string{"payment_method": "balance"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Insufficient balance",
		},
		{
			name:           "Successful checkout",
			user:           buyer,
			reqBody:        map[string]string{"payment_method": "balance"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Empty cart after checkout",
			user:           buyer,
			reqBody:        map[string]string{"payment_method": "balance"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Cart is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			body, _ := json.Marshal(tt.reqBody)
			req, _ := http.NewRequest("POST", "/checkout", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			c.Request = req

			// Set user in context (mock middleware)
			c.Set("user", tt.user)

			checkout.Checkout(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedMsg != "" {
				var resp struct {
					Message string `json:"message"`
				}
				json.Unmarshal(w.Body.Bytes(), &resp)
				assert.Contains(t, resp.Message, tt.expectedMsg)
			}

			if tt.name == "Successful checkout" {
				var resp struct {
					Data checkout.CheckoutResponse `json:"data"`
				}
				json.Unmarshal(w.Body.Bytes(), &resp)
				assert.Equal(t, 60.0, resp.Data.TotalAmount)
				assert.Len(t, resp.Data.Orders, 1)
				assert.Equal(t, models.OrderStatusCompleted, resp.Data.Orders[0].Status)
				// License key disclosed on the completed order
				assert.Equal(t, "KEY-XYZ", resp.Data.Orders[0].LicenseKey)
			}
		})
	}
}
