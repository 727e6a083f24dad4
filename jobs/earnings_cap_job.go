package jobs

import (
	"fmt"
	"log"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/models"
	"github.com/babydan/binary_backend/services"
	"gorm.io/gorm"
)

// CapSweepResult is the end-of-sweep report: per-member failures are collected
// here instead of aborting the run.
type CapSweepResult struct {
	TotalChecked      int      `json:"total_checked"`
	ExceededLimit     int      `json:"exceeded_limit"`
	Processed         int      `json:"processed"`
	TotalExcess       float64  `json:"total_excess_removed"`
	PackagesCompleted int64    `json:"packages_completed"`
	Errors            []string `json:"errors"`
}

// RunEarningsCapCheck sweeps every member holding investments and enforces the
// earnings cap: when the ledger balance exceeds CapMultiplier times the
// THB-converted USD investment total, the excess is deducted with an
// Earnings Cap Adjustment entry and all ACTIVE investments are closed. Each
// member gets its own transaction so one failure cannot poison the others. The
// sweep is idempotent: once the balance sits at the limit a re-run deducts
// nothing.
func RunEarningsCapCheck(db *gorm.DB, cfg config.Settings) CapSweepResult {
	log.Println("Running job: RunEarningsCapCheck...")
	result := CapSweepResult{}

	var memberIDs []uint
	err := db.Model(&models.Investment{}).
		Distinct("member_id").
		Where("status IN ?", []string{models.InvestmentActive, models.InvestmentCompleted}).
		Order("member_id").
		Pluck("member_id", &memberIDs).Error
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("listing members: %v", err))
		return result
	}

	for _, memberID := range memberIDs {
		result.TotalChecked++

		excess, err := capExcess(db, cfg, memberID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("member %d: %v", memberID, err))
			continue
		}
		if excess <= 0 {
			continue
		}
		result.ExceededLimit++

		completed, err := enforceCap(db, memberID, excess)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("member %d: %v", memberID, err))
			continue
		}
		result.Processed++
		result.TotalExcess += excess
		result.PackagesCompleted += completed
		log.Printf("✅ Earnings cap enforced for member %d: %v DAN removed, %d packages completed", memberID, excess, completed)
	}

	log.Printf("Earnings cap sweep done: %d checked, %d over limit, %d processed, %d errors",
		result.TotalChecked, result.ExceededLimit, result.Processed, len(result.Errors))
	return result
}

// capExcess compares the member's ledger balance against the cap. The limit is
// computed from package USD prices converted to THB; the balance stays in DAN —
// the two unit systems are intentionally not unified, matching the dashboard's
// separate earned figure.
func capExcess(db *gorm.DB, cfg config.Settings, memberID uint) (float64, error) {
	totalInvUSD, err := services.TotalInvestmentUSD(db, memberID)
	if err != nil {
		return 0, err
	}
	limit := float64(services.USDToTHB(totalInvUSD, cfg)) * cfg.CapMultiplier

	balance, err := services.Balance(db, memberID)
	if err != nil {
		return 0, err
	}

	if balance <= limit {
		return 0, nil
	}
	return balance - limit, nil
}

func enforceCap(db *gorm.DB, memberID uint, excess float64) (int64, error) {
	var completed int64
	err := db.Transaction(func(tx *gorm.DB) error {
		entry := models.WalletTransaction{
			MemberID:      memberID,
			TranType:      models.TranCapAdjustment,
			OutAmount:     excess,
			Detail:        "Earnings cap adjustment - excess removed (3x investment limit)",
			AdminStatus:   models.StatusApproved,
			AdminUsername: "System",
			AdminMsg:      fmt.Sprintf("Excess earnings removed: %v DAN", excess),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Investment{}).
			Where("member_id = ? AND status = ?", memberID, models.InvestmentActive).
			Update("status", models.InvestmentCompleted)
		if res.Error != nil {
			return res.Error
		}
		completed = res.RowsAffected
		return nil
	})
	return completed, err
}
