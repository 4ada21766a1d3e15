package models

import "time"

// Payment is money paid out to a farmer.
type Payment struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	FarmerID        string    `gorm:"size:36;index;not null" json:"farmer_id"`
	FarmerName      string    `gorm:"size:64" json:"farmer_name"`
	Date            string    `gorm:"size:10;index;not null" json:"date"`
	Amount          float64   `gorm:"not null" json:"amount"`
	PaymentMode     string    `gorm:"size:16;not null" json:"payment_mode"` // cash / upi / bank / cheque
	ReferenceNumber string    `gorm:"size:64" json:"reference_number"`
	Notes           string    `gorm:"size:255" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}
