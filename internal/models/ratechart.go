package models

import "time"

// RateEntry is one fat/snf price point of a rate chart.
type RateEntry struct {
	Fat  float64 `json:"fat"`
	SNF  float64 `json:"snf"`
	Rate float64 `json:"rate"`
}

// RateChart prices collections by fat/SNF. At most one chart is the default;
// when none exists the base formula rate = fat*6 + snf*2 applies.
type RateChart struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	Name      string      `gorm:"size:64;not null" json:"name"`
	Entries   []RateEntry `gorm:"serializer:json" json:"entries"`
	IsDefault bool        `gorm:"index;not null;default:false" json:"is_default"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
