package models

import "time"

// Deduction types accepted on a dispatch.
const (
	DeductionTransport      = "transport"
	DeductionQualityPenalty = "quality_penalty"
	DeductionCommission     = "commission"
	DeductionTestingCharges = "testing_charges"
	DeductionOther          = "other"
)

// Deduction is one line item withheld by the dairy plant from a dispatch.
// Non-positive amounts are tolerated as placeholder rows and ignored in totals.
type Deduction struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

// Dispatch is one tanker load sent to a dairy plant.
//
// net_receivable = gross_amount - total_deduction with
// gross_amount = quantity_kg * rate_per_kg. A dispatch starts unmatched;
// matching the plant's slip is a one-way transition that freezes
// amount_difference (net_receivable - slip_amount, positive in the business's
// favor) and fat_difference (avg_fat - slip_fat).
type Dispatch struct {
	ID             string      `gorm:"primaryKey;size:36" json:"id"`
	DairyPlantID   string      `gorm:"size:36;index;not null" json:"dairy_plant_id"`
	DairyPlantName string      `gorm:"size:64" json:"dairy_plant_name"`
	Date           string      `gorm:"size:10;index;not null" json:"date"`
	TankerNumber   string      `gorm:"size:20" json:"tanker_number"`
	QuantityKg     float64     `gorm:"not null" json:"quantity_kg"`
	AvgFat         float64     `gorm:"not null" json:"avg_fat"`
	AvgSNF         float64     `gorm:"not null" json:"avg_snf"`
	CLR            *float64    `json:"clr"`
	RatePerKg      float64     `gorm:"not null" json:"rate_per_kg"`
	Deductions     []Deduction `gorm:"serializer:json" json:"deductions"`
	GrossAmount    float64     `gorm:"not null" json:"gross_amount"`
	TotalDeduction float64     `gorm:"not null" json:"total_deduction"`
	NetReceivable  float64     `gorm:"not null" json:"net_receivable"`
	Notes          string      `gorm:"size:255" json:"notes"`

	SlipMatched      bool    `gorm:"index;not null;default:false" json:"slip_matched"`
	SlipFat          float64 `json:"slip_fat"`
	SlipSNF          float64 `json:"slip_snf"`
	SlipAmount       float64 `json:"slip_amount"`
	SlipDeductions   float64 `json:"slip_deductions"`
	AmountDifference float64 `json:"amount_difference"`
	FatDifference    float64 `json:"fat_difference"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
