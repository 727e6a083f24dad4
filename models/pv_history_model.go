package models

import "time"

// PVHistory is the audit trail of every PV movement: one row per hop during
// propagation (positive deltas) and one per binary settlement (negative deltas).
// It exists for traceability only; no balance is computed from it.
type PVHistory struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	LeftPV   float64   `gorm:"not null;default:0" json:"l_pv"`
	RightPV  float64   `gorm:"not null;default:0" json:"r_pv"`
	SelfPV   float64   `gorm:"not null;default:0" json:"s_pv"`
	FromID   uint      `gorm:"not null;index" json:"from_id"`
	ToID     uint      `gorm:"not null;index" json:"to_id"`
	SaveDate time.Time `json:"save_date"`
}

func (PVHistory) TableName() string {
	return "mlmpvhistory"
}
