package services

import (
	"errors"
	"testing"

	"github.com/babydan/binary_backend/models"
	"gorm.io/gorm"
)

func fixedPrice(p float64) PriceLookup {
	return func() (float64, error) { return p, nil }
}

func seedPackage(t *testing.T, db *gorm.DB, usd float64) models.Package {
	t.Helper()
	pkg := models.Package{
		Name:         "Starter",
		PercentYield: 1.0,
		PeriodDays:   120,
		USDAmount:    usd,
		IsEnabled:    true,
	}
	if err := db.Create(&pkg).Error; err != nil {
		t.Fatalf("seeding package: %v", err)
	}
	return pkg
}

func TestBuyPackageHappyPath(t *testing.T) {
	db := newTestDB(t)
	cfg := testSettings()

	root := seedRoot(t, db)
	buyer := seedMember(t, db, "0x00000000000000000000000000000000000000a1", "BUYER001", root.ID, root.ID, models.SideLeft)
	pkg := seedPackage(t, db, 100)

	// 100 USD at 0.5 USD/DAN = 200 DAN invested.
	inv, err := BuyPackage(db, cfg, fixedPrice(0.5), buyer.ID, pkg.ID, false)
	if err != nil {
		t.Fatalf("BuyPackage: %v", err)
	}
	if inv.InvAmount != 200 {
		t.Errorf("inv amount = %v, want 200", inv.InvAmount)
	}
	if inv.Status != models.InvestmentActive {
		t.Errorf("status = %q, want ACTIVE", inv.Status)
	}
	if !inv.RoiNextAt.After(inv.InvDate) {
		t.Errorf("next yield date must be after purchase date")
	}

	// Referral bonus: 10% of 200 DAN to the direct sponsor.
	var bonus models.WalletTransaction
	err = db.Where("member_id = ? AND tran_type = ?", root.ID, models.TranReferralBonus).First(&bonus).Error
	if err != nil {
		t.Fatalf("loading referral bonus: %v", err)
	}
	if bonus.InAmount != 20 {
		t.Errorf("referral bonus = %v, want 20", bonus.InAmount)
	}

	// PV propagated to the sponsor's left leg and the buyer's self volume.
	var gotRoot, gotBuyer models.Member
	db.First(&gotRoot, root.ID)
	db.First(&gotBuyer, buyer.ID)
	if gotBuyer.SelfPV != 200 {
		t.Errorf("buyer self PV = %v, want 200", gotBuyer.SelfPV)
	}
	if gotRoot.LeftPV != 200 {
		t.Errorf("root left PV = %v, want 200", gotRoot.LeftPV)
	}
}

func TestBuyPackageSettlesBuyerPairs(t *testing.T) {
	db := newTestDB(t)
	cfg := testSettings()

	root := seedRoot(t, db)
	buyer := seedMember(t, db, "0x00000000000000000000000000000000000000a2", "BUYER002", root.ID, root.ID, models.SideLeft)
	// Pre-existing volume on both of the buyer's legs gets settled by the purchase.
	db.Model(&models.Member{}).Where("id = ?", buyer.ID).
		Updates(map[string]interface{}{"left_pv": 100.0, "right_pv": 80.0})
	pkg := seedPackage(t, db, 50)

	if _, err := BuyPackage(db, cfg, fixedPrice(1), buyer.ID, pkg.ID, false); err != nil {
		t.Fatalf("BuyPackage: %v", err)
	}

	var gotBuyer models.Member
	db.First(&gotBuyer, buyer.ID)
	min := gotBuyer.LeftPV
	if gotBuyer.RightPV < min {
		min = gotBuyer.RightPV
	}
	if min != 0 {
		t.Errorf("after purchase settlement min(L,R) = %v, want 0", min)
	}

	var binaryCount int64
	db.Model(&models.WalletTransaction{}).
		Where("member_id = ? AND tran_type = ?", buyer.ID, models.TranBinary).
		Count(&binaryCount)
	if binaryCount != 1 {
		t.Errorf("binary bonus entries = %d, want 1", binaryCount)
	}
}

func TestBuyPackageUnknownPackage(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)

	_, err := BuyPackage(db, testSettings(), fixedPrice(1), root.ID, 777, false)
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("err = %v, want ErrPackageNotFound", err)
	}
}

func TestBuyPackageDisabledPackage(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)
	pkg := seedPackage(t, db, 100)
	db.Model(&models.Package{}).Where("id = ?", pkg.ID).Update("is_enabled", false)

	_, err := BuyPackage(db, testSettings(), fixedPrice(1), root.ID, pkg.ID, false)
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("err = %v, want ErrPackageNotFound", err)
	}
}

func TestBuyPackagePriceUnavailable(t *testing.T) {
	db := newTestDB(t)
	root := seedRoot(t, db)
	pkg := seedPackage(t, db, 100)

	_, err := BuyPackage(db, testSettings(), fixedPrice(0), root.ID, pkg.ID, false)
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("err = %v, want ErrPriceUnavailable", err)
	}

	var invCount int64
	db.Model(&models.Investment{}).Count(&invCount)
	if invCount != 0 {
		t.Errorf("investments = %d, want 0", invCount)
	}
}

// A failure inside PV propagation (step 5) must roll back the entire purchase:
// no investment row, no ledger entries, no tree mutation.
func TestBuyPackageAtomicRollback(t *testing.T) {
	db := newTestDB(t)
	cfg := testSettings()
	cfg.MaxTreeDepth = 20

	root := seedRoot(t, db)
	buyer := seedMember(t, db, "0x00000000000000000000000000000000000000a3", "BUYER003", root.ID, root.ID, models.SideLeft)
	// Corrupt the ancestor chain so AddPV fails after the investment and the
	// referral bonus were already written inside the transaction.
	db.Model(&models.Member{}).Where("id = ?", root.ID).
		Updates(map[string]interface{}{"parent_id": buyer.ID, "side": models.SideLeft})
	pkg := seedPackage(t, db, 100)

	_, err := BuyPackage(db, cfg, fixedPrice(1), buyer.ID, pkg.ID, false)
	if !errors.Is(err, ErrCorruptTree) {
		t.Fatalf("err = %v, want ErrCorruptTree", err)
	}

	var invCount, ledgerCount, auditCount int64
	db.Model(&models.Investment{}).Count(&invCount)
	db.Model(&models.WalletTransaction{}).Count(&ledgerCount)
	db.Model(&models.PVHistory{}).Count(&auditCount)
	if invCount != 0 || ledgerCount != 0 || auditCount != 0 {
		t.Errorf("rows after rollback = (%d inv, %d ledger, %d audit), want all 0",
			invCount, ledgerCount, auditCount)
	}

	var gotBuyer models.Member
	db.First(&gotBuyer, buyer.ID)
	if gotBuyer.SelfPV != 0 {
		t.Errorf("buyer self PV = %v, want 0 after rollback", gotBuyer.SelfPV)
	}
}
