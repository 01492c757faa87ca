package services

import (
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTopUpTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.User{}, &models.BalanceTransaction{},
		&models.PaymentConfig{}, &models.TopUpOrder{})
	db.AutoMigrate(&models.User{}, &models.BalanceTransaction{},
		&models.PaymentConfig{}, &models.TopUpOrder{})

	database.DB = db
}

func setupTopUpTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func TestCompleteTopUpOrder(t *testing.T) {
	setupTopUpTestDB()
	mr := setupTopUpTestRedis()
	defer mr.Close()

	user := models.User{Username: "topup", Email: "topup@test.com", Password: "x", Balance: 5.0, Version: 1}
	database.DB.Create(&user)

	order, err := CreateTopUpOrder(user.ID, 95.0, "cfg-uuid")
	assert.NoError(t, err)
	assert.Equal(t, models.TopUpStatusPending, order.Status)

	err = CompleteTopUpOrder(order.ID)
	assert.NoError(t, err)

	var updatedOrder models.TopUpOrder
	database.DB.First(&updatedOrder, "id = ?", order.ID)
	assert.Equal(t, models.TopUpStatusPaid, updatedOrder.Status)
	assert.NotNil(t, updatedOrder.CompletedAt)

	var updatedUser models.User
	database.DB.First(&updatedUser, user.ID)
	assert.Equal(t, 100.0, updatedUser.Balance)

	var trans models.BalanceTransaction
	database.DB.Last(&trans)
	assert.Equal(t, 95.0, trans.Amount)
	assert.Equal(t, models.TransactionTypeDeposit, trans.Type)

	// Gateway replays of the same notify must not credit twice
	err = CompleteTopUpOrder(order.ID)
	assert.ErrorIs(t, err, ErrTopUpAlreadyPaid)

	database.DB.First(&updatedUser, user.ID)
	assert.Equal(t, 100.0, updatedUser.Balance)

	var transCount int64
	database.DB.Model(&models.BalanceTransaction{}).Count(&transCount)
	assert.Equal(t, int64(1), transCount)
}

func TestCompleteTopUpOrder_Cancelled(t *testing.T) {
	setupTopUpTestDB()
	mr := setupTopUpTestRedis()
	defer mr.Close()

	user := models.User{Username: "cancel", Email: "cancel@test.com", Password: "x", Version: 1}
	database.DB.Create(&user)

	order, err := CreateTopUpOrder(user.ID, 50.0, "cfg-uuid")
	assert.NoError(t, err)

	err = CancelTopUpOrder(order.ID)
	assert.NoError(t, err)

	err = CompleteTopUpOrder(order.ID)
	assert.ErrorIs(t, err, ErrTopUpCancelled)

	var updatedUser models.User
	database.DB.First(&updatedUser, user.ID)
	assert.Equal(t, 0.0, updatedUser.Balance)
}

func TestCancelTopUpOrder_OnlyPending(t *testing.T) {
	setupTopUpTestDB()
	mr := setupTopUpTestRedis()
	defer mr.Close()

	user := models.User{Username: "pend", Email: "pend@test.com", Password: "x", Version: 1}
	database.DB.Create(&user)

	order, err := CreateTopUpOrder(user.ID, 10.0, "cfg-uuid")
	assert.NoError(t, err)

	err = CompleteTopUpOrder(order.ID)
	assert.NoError(t, err)

	err = CancelTopUpOrder(order.ID)
	assert.ErrorIs(t, err, ErrInvalidTopUpStatus)

	err = CancelTopUpOrder("missing")
	assert.ErrorIs(t, err, ErrTopUpNotFound)
}

func TestCreateTopUpOrder_InvalidAmount(t *testing.T) {
	setupTopUpTestDB()
	mr := setupTopUpTestRedis()
	defer mr.Close()

	user := models.User{Username: "inv", Email: "inv@test.com", Password: "x", Version: 1}
	database.DB.Create(&user)

	order, err := CreateTopUpOrder(user.ID, 0, "cfg-uuid")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Nil(t, order)
}

func TestPaymentConfigCRUD(t *testing.T) {
	setupTopUpTestDB()
	mr := setupTopUpTestRedis()
	defer mr.Close()

	cfg, err := CreatePaymentConfig("Main Gateway", "epay", map[string]interface{}{
		"url": "https://pay.example.com",
		"pid": "1001",
		"key": "secret",
	}, true)
	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.UUID)

	disabled, err := CreatePaymentConfig("Disabled Gateway", "epay", map[string]interface{}{}, false)
	assert.NoError(t, err)

	// Only enabled configs are offered as payment methods
	methods, err := GetPaymentMethods()
	assert.NoError(t, err)
	assert.Len(t, methods, 1)
	assert.Equal(t, "Main Gateway", methods[0].Name)

	all, err := GetAllPaymentConfigs()
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	enable := true
	_, err = UpdatePaymentConfig(disabled.ID, "Second Gateway", nil, &enable)
	assert.NoError(t, err)

	methods, err = GetPaymentMethods()
	assert.NoError(t, err)
	assert.Len(t, methods, 2)

	err = DeletePaymentConfig(disabled.ID)
	assert.NoError(t, err)

	all, err = GetAllPaymentConfigs()
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}
