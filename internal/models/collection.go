package models

import "time"

// MilkCollection is one farmer delivery for a shift. Immutable once created
// except by deletion, which reverts the farmer totals.
type MilkCollection struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	FarmerID   string    `gorm:"size:36;index;not null" json:"farmer_id"`
	FarmerName string    `gorm:"size:64" json:"farmer_name"`
	Date       string    `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	Shift      string    `gorm:"size:8;index;not null" json:"shift"` // morning / evening
	Quantity   float64   `gorm:"not null" json:"quantity"`           // liters
	Fat        float64   `gorm:"not null" json:"fat"`
	SNF        float64   `gorm:"not null" json:"snf"`
	Rate       float64   `gorm:"not null" json:"rate"` // currency per liter
	Amount     float64   `gorm:"not null" json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}
