package services

import (
	"errors"
	"fmt"
	"time"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/models"
	"gorm.io/gorm"
)

// SettleBinary matches the member's left and right PV, credits a binary bonus of
// matched * PairingRate and deducts the matched volume from both legs. Only this
// member is settled; ancestors realize their pairs when they are settled
// themselves. With no matchable volume the call is a no-op.
func SettleBinary(tx *gorm.DB, cfg config.Settings, memberID uint) error {
	var member models.Member
	err := lockForUpdate(tx).Select("id", "left_pv", "right_pv").First(&member, "id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	matched := member.LeftPV
	if member.RightPV < matched {
		matched = member.RightPV
	}
	if matched <= 0 {
		return nil
	}

	bonus := matched * cfg.PairingRate
	entry := models.WalletTransaction{
		MemberID:      member.ID,
		TranType:      models.TranBinary,
		InAmount:      bonus,
		Detail:        "Binary bonus received",
		AdminStatus:   models.StatusApproved,
		AdminUsername: "System",
		AdminMsg:      fmt.Sprintf("Matched PV: %v", matched),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	if err := deductMatchedVolume(tx, member.ID, matched); err != nil {
		return err
	}

	audit := models.PVHistory{
		LeftPV:   -matched,
		RightPV:  -matched,
		FromID:   member.ID,
		ToID:     0,
		SaveDate: time.Now(),
	}
	return tx.Create(&audit).Error
}

// deductMatchedVolume removes the matched amount from both leg counters with
// relative expressions. Volume credited to a leg between the settlement read
// and this write must survive, so the counters are never written as absolutes.
func deductMatchedVolume(tx *gorm.DB, memberID uint, matched float64) error {
	return tx.Model(&models.Member{}).Where("id = ?", memberID).
		UpdateColumns(map[string]interface{}{
			"left_pv":  gorm.Expr("left_pv - ?", matched),
			"right_pv": gorm.Expr("right_pv - ?", matched),
		}).Error
}
