package models

import "time"

// DairyPlant is a bulk milk buyer. Balance is what the plant still owes the
// business: total_amount (sum of dispatch net receivables) minus total_paid.
type DairyPlant struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	Name              string    `gorm:"size:64;index;not null" json:"name"`
	Code              string    `gorm:"size:16" json:"code"`
	Address           string    `gorm:"size:255" json:"address"`
	Phone             string    `gorm:"size:20" json:"phone"`
	ContactPerson     string    `gorm:"size:64" json:"contact_person"`
	TotalMilkSupplied float64   `gorm:"not null;default:0" json:"total_milk_supplied"` // kg
	TotalAmount       float64   `gorm:"not null;default:0" json:"total_amount"`
	TotalPaid         float64   `gorm:"not null;default:0" json:"total_paid"`
	Balance           float64   `gorm:"not null;default:0" json:"balance"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DairyPayment is money received from a dairy plant against dispatches.
type DairyPayment struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	DairyPlantID    string    `gorm:"size:36;index;not null" json:"dairy_plant_id"`
	DairyPlantName  string    `gorm:"size:64" json:"dairy_plant_name"`
	Date            string    `gorm:"size:10;index;not null" json:"date"`
	Amount          float64   `gorm:"not null" json:"amount"`
	PaymentMode     string    `gorm:"size:16;not null" json:"payment_mode"`
	ReferenceNumber string    `gorm:"size:64" json:"reference_number"`
	Notes           string    `gorm:"size:255" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}
