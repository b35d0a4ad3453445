// Package repository is the persistence contract of the service. Services
// depend on the interfaces; the GORM implementations live alongside so the
// soft-delete filter is enforced in one place.
package repository

import (
	"errors"

	"fleet-service/internal/model"

	"gorm.io/gorm"
)

// ErrNotFound is returned by find operations when no active row matches
var ErrNotFound = errors.New("record not found")

// Active is the shared soft-delete predicate. Every default read path goes
// through this scope; rows with active=false are invisible to business
// flows but never physically removed.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// CompanyRepository persists companies (tenants)
type CompanyRepository interface {
	ExistsByCompanyRef(companyRef uint) (bool, error)
	Create(company *model.Company) error
	FindAll() ([]model.Company, error)
	FindByCompanyRef(companyRef uint) (*model.Company, error)
	FindByLogin(login string) (*model.Company, error)
	Update(company *model.Company) error
	DeactivateByCompanyRef(companyRef uint) error
}

// UserRepository persists users
type UserRepository interface {
	ExistsByLogin(login string) (bool, error)
	Create(user *model.User) error
	FindAll() ([]model.User, error)
	FindAllByCompanyRef(companyRef uint) ([]model.User, error)
	FindByID(id uint) (*model.User, error)
	FindByCompanyRefAndID(companyRef, id uint) (*model.User, error)
	FindByLogin(login string) (*model.User, error)
	Update(user *model.User) error
	DeactivateByID(id uint) error
}

// VehicleRepository persists vehicles
type VehicleRepository interface {
	ExistsByVin(vin string) (bool, error)
	Create(vehicle *model.Vehicle) error
	FindAll() ([]model.Vehicle, error)
	FindAllByCompanyRef(companyRef uint) ([]model.Vehicle, error)
	FindByVin(vin string) (*model.Vehicle, error)
	FindByVinAndCompanyRef(vin string, companyRef uint) (*model.Vehicle, error)
	Update(vehicle *model.Vehicle) error
	DeactivateByVin(vin string) error
	DeactivateByCompanyRef(companyRef uint) error
}
