package services

import (
	"fmt"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/models"
	"gorm.io/gorm"
)

// AwardReferralBonus credits the sponsor with a share of the invested token
// amount. Only level 1 (the direct sponsor) is ever paid by the purchase flow;
// the level parameter is kept for the audit detail and future unilevel payouts.
// A missing sponsor or a zero bonus is a no-op, not an error.
func AwardReferralBonus(tx *gorm.DB, cfg config.Settings, sponsorID uint, fromUsername string, level int, baseAmount float64) error {
	bonus := baseAmount * cfg.ReferralRate
	if sponsorID == 0 || bonus <= 0 {
		return nil
	}

	detail := fmt.Sprintf("Referral bonus level %d from %s", level, fromUsername)
	entry := models.WalletTransaction{
		MemberID:      sponsorID,
		TranType:      models.TranReferralBonus,
		InAmount:      bonus,
		Detail:        detail,
		AdminStatus:   models.StatusApproved,
		AdminUsername: "System",
		AdminMsg:      detail,
	}
	return tx.Create(&entry).Error
}
