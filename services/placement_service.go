package services

import (
	"errors"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate applies a row lock where the dialect supports it. sqlite (used
// by the test suite) serializes writers itself and rejects FOR UPDATE syntax.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// FindPlacement walks down from the sponsor following only requestedSide
// children and returns the first node whose slot on that side is open. The walk
// is a pure read; the caller persists parent/side on the new member inside the
// same transaction. Every row on the path is read FOR UPDATE so two concurrent
// signups under the same sponsor cannot compute the same open slot.
func FindPlacement(tx *gorm.DB, cfg config.Settings, sponsorID uint, requestedSide string) (uint, error) {
	if requestedSide == models.SideNone {
		requestedSide = models.SideLeft
	}
	if requestedSide != models.SideLeft && requestedSide != models.SideRight {
		return 0, ErrInvalidSide
	}

	var sponsor models.Member
	err := lockForUpdate(tx).First(&sponsor, "id = ?", sponsorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSponsorNotFound
		}
		return 0, err
	}

	current := sponsor.ID
	for hops := 0; hops < cfg.MaxTreeDepth; hops++ {
		var child models.Member
		err := lockForUpdate(tx).
			Where("parent_id = ? AND side = ?", current, requestedSide).
			First(&child).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return current, nil
			}
			return 0, err
		}
		current = child.ID
	}

	return 0, ErrCorruptTree
}
