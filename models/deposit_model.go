package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deposit records an on-chain deposit receipt. The balance effect lives in the
// matching WalletTransaction; this row only pins the BSC transaction hash so the
// same hash cannot be credited twice.
type Deposit struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"d_id"`
	MemberID uint      `gorm:"not null;index" json:"userid"`
	TxnHash  string    `gorm:"size:66;not null;uniqueIndex" json:"txn_hash"`
	Status   string    `gorm:"size:10;not null;default:'APPROVED'" json:"status"`

	CreatedAt time.Time `json:"created_datetime"`
}

func (Deposit) TableName() string {
	return "deposits"
}

func (d *Deposit) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
