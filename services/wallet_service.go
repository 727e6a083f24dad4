package services

import (
	"errors"
	"fmt"
	"time"

	config "github.com/babydan/binary_backend/configs"
	"github.com/babydan/binary_backend/models"
	"gorm.io/gorm"
)

// Balance derives the spendable DAN balance from the ledger: SUM(in) - SUM(out)
// over APPROVED entries. There is no stored balance column anywhere.
func Balance(db *gorm.DB, memberID uint) (float64, error) {
	var result struct {
		AmtIn  float64
		AmtOut float64
	}
	err := db.Model(&models.WalletTransaction{}).
		Select("COALESCE(SUM(in_amount),0) as amt_in, COALESCE(SUM(out_amount),0) as amt_out").
		Where("member_id = ? AND admin_status = ?", memberID, models.StatusApproved).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	return result.AmtIn - result.AmtOut, nil
}

func sumIn(db *gorm.DB, memberID uint, tranTypes []string, approvedOnly bool) (float64, error) {
	var total float64
	q := db.Model(&models.WalletTransaction{}).
		Select("COALESCE(SUM(in_amount),0)").
		Where("member_id = ? AND tran_type IN ?", memberID, tranTypes)
	if approvedOnly {
		q = q.Where("admin_status = ?", models.StatusApproved)
	}
	err := q.Scan(&total).Error
	return total, err
}

func TotalDeposit(db *gorm.DB, memberID uint) (float64, error) {
	return sumIn(db, memberID, []string{models.TranDeposit}, false)
}

// TotalEarned sums the yield-type credits (APR, Binary, Referral APR in the
// legacy naming). Referral bonuses are reported separately as commission.
func TotalEarned(db *gorm.DB, memberID uint) (float64, error) {
	return sumIn(db, memberID, []string{models.TranAPR, models.TranBinary, "Referral APR"}, true)
}

func TotalCommission(db *gorm.DB, memberID uint) (float64, error) {
	var total float64
	err := db.Model(&models.WalletTransaction{}).
		Select("COALESCE(SUM(in_amount),0)").
		Where("member_id = ? AND tran_type LIKE ? AND admin_status = ?", memberID, "%bonus%", models.StatusApproved).
		Scan(&total).Error
	return total, err
}

func TotalWithdraw(db *gorm.DB, memberID uint) (float64, error) {
	var total float64
	err := db.Model(&models.WalletTransaction{}).
		Select("COALESCE(SUM(out_amount),0)").
		Where("member_id = ? AND tran_type = ? AND admin_status = ?", memberID, models.TranWithdraw, models.StatusApproved).
		Scan(&total).Error
	return total, err
}

func TotalTransferIn(db *gorm.DB, memberID uint) (float64, error) {
	return sumIn(db, memberID, []string{models.TranTransferIn}, false)
}

func TotalTransferOut(db *gorm.DB, memberID uint) (float64, error) {
	var total float64
	err := db.Model(&models.WalletTransaction{}).
		Select("COALESCE(SUM(out_amount),0)").
		Where("member_id = ? AND tran_type = ?", memberID, models.TranTransferOut).
		Scan(&total).Error
	return total, err
}

func TotalCapAdjustments(db *gorm.DB, memberID uint) (float64, error) {
	var total float64
	err := db.Model(&models.WalletTransaction{}).
		Select("COALESCE(SUM(out_amount),0)").
		Where("member_id = ? AND tran_type = ?", memberID, models.TranCapAdjustment).
		Scan(&total).Error
	return total, err
}

// TotalInvestmentUSD sums the package USD prices of the member's ACTIVE and
// COMPLETED investments. This is the cap base, before THB conversion.
func TotalInvestmentUSD(db *gorm.DB, memberID uint) (AmountUSD, error) {
	var total float64
	err := db.Model(&models.Investment{}).
		Select("COALESCE(SUM(packages.usd_amount),0)").
		Joins("JOIN packages ON packages.id = member_invest.package_id").
		Where("member_invest.member_id = ? AND member_invest.status IN ?",
			memberID, []string{models.InvestmentActive, models.InvestmentCompleted}).
		Scan(&total).Error
	return AmountUSD(total), err
}

func TotalActiveInvestment(db *gorm.DB, memberID uint) (float64, error) {
	var total float64
	err := db.Model(&models.Investment{}).
		Select("COALESCE(SUM(inv_amount),0)").
		Where("member_id = ? AND status = ?", memberID, models.InvestmentActive).
		Scan(&total).Error
	return total, err
}

func DirectMembers(db *gorm.DB, memberID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Member{}).Where("sponsor_id = ?", memberID).Count(&count).Error
	return count, err
}

// CreateDeposit records an on-chain deposit: a receipt row keyed by the BSC
// transaction hash plus the approved ledger credit, atomically.
func CreateDeposit(db *gorm.DB, memberID uint, amount float64, txnHash string) (*models.Deposit, error) {
	var count int64
	err := db.Model(&models.Deposit{}).Where("txn_hash = ?", txnHash).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateTxnHash
	}

	deposit := models.Deposit{
		MemberID: memberID,
		TxnHash:  txnHash,
		Status:   models.StatusApproved,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deposit).Error; err != nil {
			return err
		}
		entry := models.WalletTransaction{
			MemberID:      memberID,
			TranType:      models.TranDeposit,
			InAmount:      amount,
			Detail:        fmt.Sprintf("Deposit TX: %s", txnHash),
			AdminStatus:   models.StatusApproved,
			AdminUsername: "System",
			AdminMsg:      "Auto-approved deposit",
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &deposit, nil
}

// withdrawnInWindow sums withdrawals inside the rolling cap window, regardless
// of approval status, so a pending withdrawal still consumes the allowance.
func withdrawnInWindow(db *gorm.DB, cfg config.Settings, memberID uint, now time.Time) (float64, error) {
	var total float64
	err := db.Model(&models.WalletTransaction{}).
		Select("COALESCE(SUM(out_amount),0)").
		Where("member_id = ? AND tran_type = ? AND created_at >= ?",
			memberID, models.TranWithdraw, now.Add(-cfg.WithdrawWindow)).
		Scan(&total).Error
	return total, err
}

// CreateWithdraw validates balance and the rolling 24h cap, then appends an
// auto-approved Withdraw entry. Exactly the cap is allowed; one token over is
// rejected with ErrWithdrawLimitExceeded. The checks and the insert share one
// transaction with the member row locked, so two concurrent requests cannot
// both pass the checks before either entry lands.
func CreateWithdraw(db *gorm.DB, cfg config.Settings, memberID uint, amount float64, txnHash string) (*models.WalletTransaction, error) {
	var entry models.WalletTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var member models.Member
		err := lockForUpdate(tx).Select("id").First(&member, "id = ?", memberID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		var count int64
		err = tx.Model(&models.WalletTransaction{}).
			Where("tran_type = ? AND detail LIKE ?", models.TranWithdraw, "%"+txnHash+"%").
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateTxnHash
		}

		balance, err := Balance(tx, memberID)
		if err != nil {
			return err
		}
		if balance < amount {
			return ErrInsufficientBalance
		}

		used, err := withdrawnInWindow(tx, cfg, memberID, time.Now())
		if err != nil {
			return err
		}
		if used+amount > cfg.WithdrawLimit {
			return ErrWithdrawLimitExceeded
		}

		entry = models.WalletTransaction{
			MemberID:      memberID,
			TranType:      models.TranWithdraw,
			OutAmount:     amount,
			Detail:        fmt.Sprintf("Withdraw TX: %s", txnHash),
			AdminStatus:   models.StatusApproved,
			AdminUsername: "System",
			AdminMsg:      "Auto-approved withdraw",
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateTransfer moves DAN between wallets as a paired Transfer out / Transfer
// in. The balance check runs inside the same transaction as the inserts, with
// the sender row locked so concurrent transfers cannot both spend the same
// balance.
func CreateTransfer(db *gorm.DB, fromID uint, toWallet string, amount float64) (*models.Member, error) {
	var recipient models.Member
	err := db.Transaction(func(tx *gorm.DB) error {
		var sender models.Member
		err := lockForUpdate(tx).Select("id").First(&sender, "id = ?", fromID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		err = tx.Where("wallet_address = ?", toWallet).First(&recipient).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipientNotFound
			}
			return err
		}
		if recipient.ID == fromID {
			return ErrSelfTransfer
		}

		balance, err := Balance(tx, fromID)
		if err != nil {
			return err
		}
		if balance < amount {
			return ErrInsufficientBalance
		}

		out := models.WalletTransaction{
			MemberID:      fromID,
			TranType:      models.TranTransferOut,
			OutAmount:     amount,
			Detail:        fmt.Sprintf("Transfer to %s", recipient.WalletAddress),
			AdminStatus:   models.StatusApproved,
			AdminUsername: "System",
			AdminMsg:      "Transfer out",
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}
		in := models.WalletTransaction{
			MemberID:      recipient.ID,
			TranType:      models.TranTransferIn,
			InAmount:      amount,
			Detail:        fmt.Sprintf("Transfer from userid %d", fromID),
			AdminStatus:   models.StatusApproved,
			AdminUsername: "System",
			AdminMsg:      "Transfer in",
		}
		return tx.Create(&in).Error
	})
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}
