package models

import "time"

// Package is read-only reference data: an investment product priced in USD with a
// daily yield percentage over a fixed period.
type Package struct {
	ID           uint    `gorm:"primaryKey" json:"p_id"`
	Name         string  `gorm:"size:100;not null" json:"p_name"`
	PercentYield float64 `gorm:"not null" json:"p_percent"`
	PeriodDays   int     `gorm:"not null" json:"p_period"`
	USDAmount    float64 `gorm:"not null" json:"p_amount"`
	IsEnabled    bool    `gorm:"not null;default:true" json:"is_enabled"`
	DisplayOrder int     `gorm:"not null;default:0" json:"display_order"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Package) TableName() string {
	return "packages"
}
