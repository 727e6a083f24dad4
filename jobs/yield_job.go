package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/babydan/binary_backend/models"
	"gorm.io/gorm"
)

// RunYieldPayouts credits the daily APR for every ACTIVE investment whose next
// yield date has passed, advances the date by 24h and completes the investment
// once it has paid out for its package period. Per-investment transactions keep
// one bad row from blocking the rest of the run.
func RunYieldPayouts(db *gorm.DB) {
	log.Println("Running job: RunYieldPayouts...")
	now := time.Now()

	var due []models.Investment
	err := db.Preload("Package").
		Where("status = ? AND roi_next_at <= ?", models.InvestmentActive, now).
		Find(&due).Error
	if err != nil {
		log.Printf("🔥 Error listing due investments: %v", err)
		return
	}

	paid := 0
	for _, inv := range due {
		if err := payYield(db, inv, now); err != nil {
			log.Printf("🔥 Yield payout failed for investment %d: %v", inv.ID, err)
			continue
		}
		paid++
	}
	if paid > 0 {
		log.Printf("✅ Yield payouts credited for %d investments", paid)
	}
}

func payYield(db *gorm.DB, inv models.Investment, now time.Time) error {
	yield := inv.InvAmount * inv.Package.PercentYield / 100
	if yield <= 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		entry := models.WalletTransaction{
			MemberID:      inv.MemberID,
			TranType:      models.TranAPR,
			InAmount:      yield,
			Detail:        fmt.Sprintf("Daily yield for package %d", inv.PackageID),
			AdminStatus:   models.StatusApproved,
			AdminUsername: "System",
			AdminMsg:      fmt.Sprintf("APR payout %d/%d", inv.RoiPaidCount+1, inv.Package.PeriodDays),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"roi_next_at":    inv.RoiNextAt.Add(24 * time.Hour),
			"roi_paid_count": inv.RoiPaidCount + 1,
		}
		if inv.RoiPaidCount+1 >= inv.Package.PeriodDays {
			updates["status"] = models.InvestmentCompleted
		}
		return tx.Model(&models.Investment{}).Where("id = ?", inv.ID).Updates(updates).Error
	})
}
