package models

import (
	"time"
)

const (
	SideLeft  = "left"
	SideRight = "right"
	SideNone  = ""
)

const (
	MemberActive      = 0
	MemberDeactivated = 2
)

// Member is one node of the binary tree. SponsorID is the marketing relationship
// (who referred this member); ParentID/Side is the tree position and is fixed at
// signup. LeftPV/RightPV hold unmatched volume and are only touched by PV
// propagation (credit) and binary settlement (debit).
type Member struct {
	ID            uint    `gorm:"primaryKey" json:"userid"`
	Username      string  `gorm:"size:255;not null" json:"username"`
	FirstName     string  `gorm:"size:100;not null" json:"firstname"`
	LastName      string  `gorm:"size:100;not null" json:"lastname"`
	WalletAddress string  `gorm:"size:42;not null;uniqueIndex" json:"wallet_address"`
	RefCode       string  `gorm:"size:10;uniqueIndex" json:"ref_code"`
	ProfileID     string  `gorm:"size:10" json:"profileid"`
	SponsorID     uint    `gorm:"not null;default:0;index" json:"sponsor_id"`
	ParentID      uint    `gorm:"not null;default:0;index:idx_parent_side" json:"parent_id"`
	Side          string  `gorm:"size:5;not null;default:'';index:idx_parent_side" json:"side"`
	LeftPV        float64 `gorm:"not null;default:0" json:"l_pv"`
	RightPV       float64 `gorm:"not null;default:0" json:"r_pv"`
	SelfPV        float64 `gorm:"not null;default:0" json:"s_pv"`
	Nonce         string  `gorm:"size:64" json:"-"`
	Status        int     `gorm:"not null;default:0" json:"-"`
	IsAdmin       bool    `gorm:"not null;default:false" json:"-"`
	Password      string  `gorm:"size:255" json:"-"`
	IP            string  `gorm:"size:45" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Member) TableName() string {
	return "members"
}
