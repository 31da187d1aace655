package db

import (
	"fmt"
	"testing"

	"github.com/ecosenseai/ecosense/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database, migrates the schema and
// closes the connection when the test finishes.
func newTestDB(t *testing.T) *GormDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.WasteReport{},
		&models.Reward{},
		&models.RewardRedemption{},
		&models.PointTransaction{},
		&models.Hotspot{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return &GormDB{DB: gormDB}
}

func createTestUser(t *testing.T, gormDB *GormDB, email string, balance int) *models.User {
	t.Helper()

	user := &models.User{
		Email:          email,
		HashedPassword: "x",
		FullName:       "Test User",
		Role:           models.RoleCitizen,
		PointsBalance:  balance,
		IsActive:       true,
	}
	if err := gormDB.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
