package services

import (
	"errors"
	"time"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/models"
	"gorm.io/gorm"
)

// AddPV credits the full pv amount to every ancestor on the path from the
// originating member to the root: the origin's own SelfPV first, then the
// matching side counter of each parent on the way up. No decay per level. Each
// credit writes an mlmpvhistory row linked back to the origin.
//
// The ascent is a bounded loop rather than recursion; blowing the depth ceiling
// means the parent chain is cyclic or detached and fails hard with
// ErrCorruptTree so the surrounding transaction rolls back.
func AddPV(tx *gorm.DB, cfg config.Settings, memberID uint, pv float64, originID uint) error {
	now := time.Now()
	currentID := memberID

	for hops := 0; ; hops++ {
		if hops >= cfg.MaxTreeDepth {
			return ErrCorruptTree
		}

		var member models.Member
		err := tx.Select("id", "parent_id", "side").First(&member, "id = ?", currentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if hops == 0 {
					return ErrMemberNotFound
				}
				// A parent pointer to a missing row is tree corruption.
				return ErrCorruptTree
			}
			return err
		}

		if hops == 0 {
			err := tx.Model(&models.Member{}).Where("id = ?", member.ID).
				UpdateColumn("self_pv", gorm.Expr("self_pv + ?", pv)).Error
			if err != nil {
				return err
			}
			audit := models.PVHistory{SelfPV: pv, FromID: originID, ToID: member.ID, SaveDate: now}
			if err := tx.Create(&audit).Error; err != nil {
				return err
			}
		}

		if member.ParentID == 0 || member.Side == models.SideNone {
			return nil
		}

		var column string
		audit := models.PVHistory{FromID: originID, ToID: member.ParentID, SaveDate: now}
		if member.Side == models.SideLeft {
			column = "left_pv"
			audit.LeftPV = pv
		} else {
			column = "right_pv"
			audit.RightPV = pv
		}

		err = tx.Model(&models.Member{}).Where("id = ?", member.ParentID).
			UpdateColumn(column, gorm.Expr(column+" + ?", pv)).Error
		if err != nil {
			return err
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}

		currentID = member.ParentID
	}
}
