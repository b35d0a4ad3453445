package model

import (
	"time"
)

// Vehicle represents a tracked vehicle owned by a company. VIN is globally
// unique. Lat/Long/FuelLevel are mutated in place by the tracking webhook.
type Vehicle struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CompanyRef uint      `json:"companyRef" gorm:"index;not null"`
	Vin        string    `json:"vin" gorm:"type:varchar(255);uniqueIndex;not null"`
	License    string    `json:"license,omitempty" gorm:"type:varchar(255)"`
	Lat        *float64  `json:"lat,omitempty"`
	Long       *float64  `json:"long,omitempty"`
	FuelLevel  float64   `json:"fuelLevel" gorm:"default:0"`
	Active     bool      `json:"active" gorm:"default:true"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
