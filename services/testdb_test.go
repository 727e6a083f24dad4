package services

import (
	"testing"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Member{},
		&models.WalletTransaction{},
		&models.Investment{},
		&models.Package{},
		&models.PVHistory{},
		&models.Deposit{},
	)
	if err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func testSettings() config.Settings {
	return config.DefaultSettings()
}

func seedRoot(t *testing.T, db *gorm.DB) models.Member {
	t.Helper()
	root := models.Member{
		Username:      "company",
		FirstName:     "Company",
		LastName:      "Root",
		WalletAddress: "0x0000000000000000000000000000000000000001",
		RefCode:       "ROOT0001",
		ProfileID:     "D00001",
	}
	if err := db.Create(&root).Error; err != nil {
		t.Fatalf("seeding root: %v", err)
	}
	return root
}

func seedMember(t *testing.T, db *gorm.DB, wallet, refCode string, sponsorID, parentID uint, side string) models.Member {
	t.Helper()
	m := models.Member{
		Username:      wallet,
		FirstName:     "Test",
		LastName:      "Member",
		WalletAddress: wallet,
		RefCode:       refCode,
		SponsorID:     sponsorID,
		ParentID:      parentID,
		Side:          side,
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seeding member %s: %v", wallet, err)
	}
	return m
}

func approvedEntry(t *testing.T, db *gorm.DB, memberID uint, tranType string, in, out float64) {
	t.Helper()
	entry := models.WalletTransaction{
		MemberID:    memberID,
		TranType:    tranType,
		InAmount:    in,
		OutAmount:   out,
		AdminStatus: models.StatusApproved,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("creating ledger entry: %v", err)
	}
}
