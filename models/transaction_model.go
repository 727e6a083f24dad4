package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TranDeposit       = "Deposit"
	TranWithdraw      = "Withdraw"
	TranTransferIn    = "Transfer in"
	TranTransferOut   = "Transfer out"
	TranReferralBonus = "Referral bonus"
	TranBinary        = "Binary"
	TranAPR           = "APR"
	TranCapAdjustment = "Earnings Cap Adjustment"
	TranInvest        = "Invest"
)

const (
	StatusApproved = "APPROVED"
	StatusPending  = "PENDING"
	StatusRejected = "REJECTED"
)

// WalletTransaction is one entry of the append-only cash ledger. A member's
// balance is always derived as SUM(in) - SUM(out) over APPROVED rows; entries are
// never updated after creation, corrections are new entries.
type WalletTransaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"t_id"`
	MemberID      uint      `gorm:"not null;index" json:"userid"`
	TranType      string    `gorm:"size:30;not null;index" json:"tran_type"`
	InAmount      float64   `gorm:"not null;default:0" json:"in_amount"`
	OutAmount     float64   `gorm:"not null;default:0" json:"out_amount"`
	Detail        string    `gorm:"size:255" json:"detail"`
	AdminStatus   string    `gorm:"size:10;not null;default:'APPROVED'" json:"admin_status"`
	AdminUsername string    `gorm:"size:50" json:"-"`
	AdminMsg      string    `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_datetime"`
}

func (WalletTransaction) TableName() string {
	return "wallet_cash_transactions"
}

func (t *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
