package model

import (
	"time"
)

// User roles. Role and company ownership are independent authorization
// axes: an admin bypasses the ownership check, a regular user only ever
// reaches resources of their own company.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an operator account belonging to a company. Users are
// purely local; they are never synchronized with the telemetry API.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CompanyRef uint      `json:"companyRef" gorm:"index;not null"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	Login      string    `json:"-" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"type:varchar(255);not null"`
	Role       string    `json:"role" gorm:"type:varchar(50);not null;default:'user'"`
	Active     bool      `json:"active" gorm:"default:true"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
