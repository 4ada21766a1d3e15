package models

import "time"

// Farmer is a milk supplier. The running totals are maintained in the same
// transaction as every collection/payment create or delete, so
// balance == total_due - total_paid always holds.
type Farmer struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:64;index;not null" json:"name"`
	Phone        string    `gorm:"size:20;not null" json:"phone"`
	Address      string    `gorm:"size:255" json:"address"`
	Village      string    `gorm:"size:64;index" json:"village"`
	BankAccount  string    `gorm:"size:32" json:"bank_account"`
	IFSCCode     string    `gorm:"size:16" json:"ifsc_code"`
	AadharNumber string    `gorm:"size:16" json:"aadhar_number"`
	TotalMilk    float64   `gorm:"not null;default:0" json:"total_milk"` // liters
	TotalDue     float64   `gorm:"not null;default:0" json:"total_due"`
	TotalPaid    float64   `gorm:"not null;default:0" json:"total_paid"`
	Balance      float64   `gorm:"not null;default:0" json:"balance"`
	IsActive     bool      `gorm:"index;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
