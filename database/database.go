package database

import (
	"fmt"
	"log"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Member{},
		&models.WalletTransaction{},
		&models.Investment{},
		&models.Package{},
		&models.PVHistory{},
		&models.Deposit{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedRoot creates the tree root (userid 1, the default sponsor) and the admin
// account on first boot. Both are no-ops when the rows already exist.
func SeedRoot() {
	var count int64
	if err := DB.Model(&models.Member{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check members table: %v", err)
	}
	if count == 0 {
		root := models.Member{
			Username:      "company",
			FirstName:     "Company",
			LastName:      "Root",
			WalletAddress: "0x0000000000000000000000000000000000000001",
			RefCode:       "ROOT0001",
			ProfileID:     "D00001",
			SponsorID:     0,
			ParentID:      0,
			Side:          models.SideNone,
		}
		if err := DB.Create(&root).Error; err != nil {
			log.Fatalf("🔥 Failed to seed root member: %v", err)
		}
		log.Println("✅ Root member seeded successfully")
	}

	adminWallet := config.Config("ADMIN_WALLET_ADDRESS")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminWallet == "" || adminPassword == "" {
		return
	}

	if err := DB.Model(&models.Member{}).Where("wallet_address = ?", adminWallet).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for admin member: %v", err)
	}
	if count > 0 {
		log.Println("Admin member already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	admin := models.Member{
		Username:      "admin",
		FirstName:     "Platform",
		LastName:      "Admin",
		WalletAddress: adminWallet,
		RefCode:       "ADMIN001",
		ProfileID:     "A00001",
		SponsorID:     0,
		ParentID:      0,
		Side:          models.SideNone,
		IsAdmin:       true,
		Password:      string(hashedPassword),
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin member: %v", err)
	}
	log.Println("✅ Admin member seeded successfully")
}
