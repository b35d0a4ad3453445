package repository

import (
	"errors"

	"fleet-service/internal/model"

	"gorm.io/gorm"
)

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a GORM-backed vehicle repository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// ExistsByVin counts rows regardless of the active flag: a deleted VIN
// stays taken and cannot be re-registered.
func (r *vehicleRepository) ExistsByVin(vin string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Vehicle{}).Where("vin = ?", vin).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *vehicleRepository) Create(vehicle *model.Vehicle) error {
	return r.db.Create(vehicle).Error
}

func (r *vehicleRepository) FindAll() ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.Scopes(Active).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindAllByCompanyRef(companyRef uint) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.Scopes(Active).Where("company_ref = ?", companyRef).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindByVin(vin string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.Scopes(Active).Where("vin = ?", vin).First(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindByVinAndCompanyRef(vin string, companyRef uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.Scopes(Active).Where("vin = ? AND company_ref = ?", vin, companyRef).First(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Update(vehicle *model.Vehicle) error {
	return r.db.Save(vehicle).Error
}

func (r *vehicleRepository) DeactivateByVin(vin string) error {
	return r.db.Model(&model.Vehicle{}).Where("vin = ?", vin).Update("active", false).Error
}

func (r *vehicleRepository) DeactivateByCompanyRef(companyRef uint) error {
	return r.db.Model(&model.Vehicle{}).Where("company_ref = ?", companyRef).Update("active", false).Error
}
