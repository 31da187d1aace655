package db

import (
	"fmt"
	"log"

	"github.com/ecosenseai/ecosense/config"
	"github.com/ecosenseai/ecosense/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d TimeZone=Africa/Nairobi",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

// LockForUpdate takes a row-level exclusive lock on the selected rows.
// SQLite (tests) serialises writers on its own and rejects the FOR
// UPDATE syntax, so the clause is only added for postgres.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.WasteReport{},
		&models.Reward{},
		&models.RewardRedemption{},
		&models.PointTransaction{},
		&models.Hotspot{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedUsers(db); err != nil {
		return fmt.Errorf("seeding users error: %v", err)
	}
	if err := SeedRewards(db); err != nil {
		return fmt.Errorf("seeding rewards error: %v", err)
	}

	return nil
}

// SeedUsers creates the default admin and field agent accounts.
func SeedUsers(db *gorm.DB) error {
	users := []struct {
		Email    string
		Password string
		FullName string
		Phone    string
		Role     string
	}{
		{"admin@ecosense.co.ke", "admin123", "EcoSense Admin", "+254700000000", models.RoleAdmin},
		{"agent@ecosense.co.ke", "agent123", "David Oduor", "+254722222222", models.RoleFieldAgent},
		{"citizen@ecosense.co.ke", "citizen123", "Wanjiku Kamau", "+254711111111", models.RoleCitizen},
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Email:          u.Email,
			HashedPassword: string(hash),
			FullName:       u.FullName,
			Phone:          u.Phone,
			Role:           u.Role,
			IsActive:       true,
		}
		if err := db.FirstOrCreate(&user, models.User{Email: u.Email}).Error; err != nil {
			return err
		}
	}

	return nil
}

// SeedRewards inserts the starter reward catalogue.
func SeedRewards(db *gorm.DB) error {
	rewards := []models.Reward{
		{Title: "M-PESA Airtime KES 50", Description: "Redeem for KES 50 Safaricom airtime", PointsCost: 100, Category: "airtime", QuantityAvailable: 1000, IsActive: true},
		{Title: "Naivas Shopping Voucher KES 200", Description: "Shopping voucher for Naivas Supermarket", PointsCost: 400, Category: "voucher", QuantityAvailable: 500, IsActive: true},
		{Title: "EcoSense T-Shirt", Description: "Branded EcoSense AI t-shirt", PointsCost: 250, Category: "merchandise", QuantityAvailable: 200, IsActive: true},
	}

	for _, reward := range rewards {
		if err := db.FirstOrCreate(&reward, models.Reward{Title: reward.Title}).Error; err != nil {
			return err
		}
	}

	return nil
}
