package services

import (
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.User{})
	db.AutoMigrate(&models.User{})

	database.DB = db
}

func setupUserTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func TestFindUserByID_Caches(t *testing.T) {
	setupUserTestDB()
	mr := setupUserTestRedis()
	defer mr.Close()

	user := models.User{Username: "cached", Email: "cached@test.com", Password: "x", Balance: 7.0, Version: 1}
	database.DB.Create(&user)

	found, err := FindUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "cached", found.Username)

	// Second read is served from cache even if the row changes underneath
	database.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("username", "renamed")

	found, err = FindUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "cached", found.Username)

	// Invalidation drops the stale entry
	InvalidateUserCache(user.ID)

	found, err = FindUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "renamed", found.Username)

	_, err = FindUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_OptimisticLock(t *testing.T) {
	setupUserTestDB()
	mr := setupUserTestRedis()
	defer mr.Close()

	user := models.User{Username: "locked", Email: "locked@test.com", Password: "x", Version: 1}
	database.DB.Create(&user)

	// Each successful update bumps the version
	updated, err := UpdateUser(user.ID, map[string]interface{}{"username": "locked2"})
	assert.NoError(t, err)
	assert.Equal(t, "locked2", updated.Username)
	assert.Equal(t, 2, updated.Version)

	updated, err = UpdateUser(user.ID, map[string]interface{}{"username": "locked3"})
	assert.NoError(t, err)
	assert.Equal(t, 3, updated.Version)

	_, err = UpdateUser(9999, map[string]interface{}{"username": "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_BalanceImmutable(t *testing.T) {
	setupUserTestDB()
	mr := setupUserTestRedis()
	defer mr.Close()

	user := models.User{Username: "rich", Email: "rich@test.com", Password: "x", Balance: 500.0, Version: 1}
	database.DB.Create(&user)

	// Balance in the update map is silently dropped; it only moves through
	// ledger operations.
	updated, err := UpdateUser(user.ID, map[string]interface{}{
		"balance":  999999.0,
		"username": "still-rich",
	})
	assert.NoError(t, err)
	assert.Equal(t, "still-rich", updated.Username)
	assert.Equal(t, 500.0, updated.Balance)
}

func TestUpdateUser_HashesPassword(t *testing.T) {
	setupUserTestDB()
	mr := setupUserTestRedis()
	defer mr.Close()

	user := models.User{Username: "pw", Email: "pw@test.com", Password: "old", Version: 1}
	database.DB.Create(&user)

	updated, err := UpdateUser(user.ID, map[string]interface{}{"password": "newsecret"})
	assert.NoError(t, err)
	assert.NotEqual(t, "newsecret", updated.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newsecret")))
}

func TestFindUsers_Pagination(t *testing.T) {
	setupUserTestDB()
	mr := setupUserTestRedis()
	defer mr.Close()

	for i := 0; i < 5; i++ {
		database.DB.Create(&models.User{
			Username: "user" + string(rune('a'+i)),
			Email:    "user" + string(rune('a'+i)) + "@test.com",
			Password: "x",
		})
	}

	users, total, err := FindUsers(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, users, 2)

	users, _, err = FindUsers(3, 2)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}
