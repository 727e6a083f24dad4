package services

import (
	"errors"
	"fmt"
	"time"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/models"
	"gorm.io/gorm"
)

// BuyPackage executes one package purchase as a single transaction: load the
// package, convert its USD price to DAN at the oracle price, open the
// investment, pay the direct sponsor's referral bonus, propagate PV up the tree
// and settle the buyer's binary pairs. Any failure rolls the whole purchase
// back; no partial ledger entries or tree mutations survive.
func BuyPackage(db *gorm.DB, cfg config.Settings, priceUSD PriceLookup, memberID uint, packageID uint, adminAction bool) (*models.Investment, error) {
	var investment models.Investment

	err := db.Transaction(func(tx *gorm.DB) error {
		var pkg models.Package
		err := tx.Where("id = ? AND is_enabled = ?", packageID, true).First(&pkg).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPackageNotFound
			}
			return err
		}

		price, err := priceUSD()
		if err != nil {
			return ErrPriceUnavailable
		}
		if price <= 0 {
			return ErrPriceUnavailable
		}
		requiredDan := USDToDAN(AmountUSD(pkg.USDAmount), price)

		var buyer models.Member
		err = tx.Select("id", "username", "sponsor_id").First(&buyer, "id = ?", memberID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		now := time.Now()
		txnDetail := fmt.Sprintf("By BABY DAN (%v USDT)", pkg.USDAmount)
		if adminAction {
			txnDetail = fmt.Sprintf("Admin Action - By BABY DAN (%v USDT)", pkg.USDAmount)
		}
		investment = models.Investment{
			MemberID:  buyer.ID,
			PackageID: pkg.ID,
			InvAmount: float64(requiredDan),
			Status:    models.InvestmentActive,
			InvDate:   now,
			RoiNextAt: now.Add(24 * time.Hour),
			Txn:       txnDetail,
		}
		if err := tx.Create(&investment).Error; err != nil {
			return err
		}

		if buyer.SponsorID > 0 {
			err := AwardReferralBonus(tx, cfg, buyer.SponsorID, buyer.Username, 1, float64(requiredDan))
			if err != nil {
				return err
			}
		}

		if err := AddPV(tx, cfg, buyer.ID, float64(requiredDan), buyer.ID); err != nil {
			return err
		}

		return SettleBinary(tx, cfg, buyer.ID)
	})
	if err != nil {
		return nil, err
	}
	return &investment, nil
}
