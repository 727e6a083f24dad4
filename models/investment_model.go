package models

import "time"

const (
	InvestmentActive    = "ACTIVE"
	InvestmentCompleted = "COMPLETED"
)

// Investment is one package purchase. InvAmount is denominated in DAN tokens,
// converted from the package USD price at purchase time. COMPLETED is terminal.
type Investment struct {
	ID           uint      `gorm:"primaryKey" json:"inv_id"`
	MemberID     uint      `gorm:"not null;index" json:"userid"`
	PackageID    uint      `gorm:"not null;index" json:"p_id"`
	InvAmount    float64   `gorm:"not null" json:"inv_amount"`
	Status       string    `gorm:"size:10;not null;default:'ACTIVE';index" json:"status"`
	InvDate      time.Time `json:"inv_date"`
	RoiNextAt    time.Time `json:"roi_next_datetime"`
	RoiPaidCount int       `gorm:"not null;default:0" json:"roi_paid_count"`
	Txn          string    `gorm:"size:255" json:"txn"`

	Package Package `gorm:"foreignkey:PackageID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Investment) TableName() string {
	return "member_invest"
}
