package services

import (
	"errors"
	"fmt"
	"strings"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/models"
	"github.com/babydan/binary_backend/utils"
	"gorm.io/gorm"
)

type RegisterInput struct {
	RefCode       string
	Side          string
	FirstName     string
	LastName      string
	WalletAddress string
	IP            string
}

// RegisterMember creates a new member and places them into the binary tree in
// one transaction. The sponsor comes from the referral code (falling back to
// the root member); the tree parent comes from the placement walk, so the
// placement reads and the member insert share the same transaction and locks.
func RegisterMember(db *gorm.DB, cfg config.Settings, in RegisterInput) (*models.Member, error) {
	side := in.Side
	if side == models.SideNone {
		side = models.SideLeft
	}
	if side != models.SideLeft && side != models.SideRight {
		return nil, ErrInvalidSide
	}

	wallet := strings.ToLower(in.WalletAddress)
	var member models.Member

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Member{}).Where("wallet_address = ?", wallet).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateWallet
		}

		sponsorID := cfg.RootMemberID
		if in.RefCode != "" {
			var sponsor models.Member
			err := tx.Where("ref_code = ?", in.RefCode).First(&sponsor).Error
			if err == nil {
				sponsorID = sponsor.ID
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		parentID, err := FindPlacement(tx, cfg, sponsorID, side)
		if err != nil {
			return err
		}

		refCode, err := utils.GenerateUniqueRefCode(tx)
		if err != nil {
			return err
		}

		member = models.Member{
			Username:      wallet,
			FirstName:     in.FirstName,
			LastName:      in.LastName,
			WalletAddress: wallet,
			RefCode:       refCode,
			SponsorID:     sponsorID,
			ParentID:      parentID,
			Side:          side,
			IP:            in.IP,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		member.ProfileID = utils.ProfileID(member.ID)
		return tx.Model(&models.Member{}).Where("id = ?", member.ID).
			UpdateColumn("profile_id", member.ProfileID).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FullName returns the member's first name for display, empty when unknown.
func FullName(db *gorm.DB, memberID uint) string {
	if memberID == 0 {
		return ""
	}
	var member models.Member
	if err := db.Select("first_name").First(&member, "id = ?", memberID).Error; err != nil {
		return ""
	}
	return member.FirstName
}

// ReferralLink builds the signup URL carrying the member's code and leg.
func ReferralLink(baseURL, refCode, side string) string {
	return fmt.Sprintf("%s/signup?ref=%s&side=%s", baseURL, refCode, side)
}
