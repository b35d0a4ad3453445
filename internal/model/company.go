package model

import (
	"time"
)

// Company represents a tenant: the root of an ownership hierarchy over
// users and vehicles. CompanyRef is the externally stable identifier used
// by the telemetry API; it never changes after creation. Deletion is a
// soft delete: Active flips to false and the row stays addressable.
type Company struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CompanyRef  uint      `json:"companyRef" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Address     string    `json:"address" gorm:"type:text"`
	Phone       string    `json:"phone" gorm:"type:varchar(20)"`
	Login       string    `json:"-" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null"`
	CallbackURL string    `json:"callbackUrl" gorm:"type:text"`
	Active      bool      `json:"active" gorm:"default:true"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
