package models

import "time"

// Expense is an operating cost line (transport fuel, electricity, wages...)
// counted against gross profit in the profit report.
type Expense struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Date      string    `gorm:"size:10;index;not null" json:"date"`
	Category  string    `gorm:"size:32;index;not null" json:"category"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Notes     string    `gorm:"size:255" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
