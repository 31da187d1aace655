package services

import (
	"fmt"
	"testing"

	"github.com/ecosenseai/ecosense/config"
	"github.com/ecosenseai/ecosense/db"
	"github.com/ecosenseai/ecosense/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *db.GormDB {
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

	return &db.GormDB{DB: gormDB}
}

func f64(v float64) *float64 { return &v }

func testConfig() *config.Config {
	return &config.Config{
		PointsPerReport:         10,
		PointsPerVerifiedReport: 25,
	}
}

func createUser(t *testing.T, gormDB *db.GormDB, email, role string, balance int) *models.User {
	t.Helper()

	user := &models.User{
		Email:          email,
		HashedPassword: "x",
		FullName:       "Test User",
		Role:           role,
		PointsBalance:  balance,
		IsActive:       true,
	}
	if err := gormDB.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createReward(t *testing.T, gormDB *db.GormDB, cost, quantity int, active bool) *models.Reward {
	t.Helper()

	reward := &models.Reward{
		Title:             fmt.Sprintf("Reward %d", cost),
		PointsCost:        cost,
		QuantityAvailable: quantity,
		IsActive:          active,
	}
	if err := gormDB.DB.Create(reward).Error; err != nil {
		t.Fatalf("failed to create reward: %v", err)
	}
	// gorm replaces a zero-valued bool with the column's default:true on
	// insert, so an inactive fixture must be flipped after the fact.
	if !active {
		if err := gormDB.DB.Model(reward).UpdateColumn("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate reward: %v", err)
		}
	}
	return reward
}

func newReportService(gormDB *db.GormDB) WasteReportService {
	return NewWasteReportService(gormDB, db.NewWasteReportRepo(gormDB), db.NewLedgerRepo(gormDB), testConfig())
}

func newRewardService(gormDB *db.GormDB) RewardService {
	return NewRewardService(gormDB, db.NewRewardRepo(gormDB), db.NewLedgerRepo(gormDB), db.NewAuthRepo(gormDB), nil, testConfig())
}
