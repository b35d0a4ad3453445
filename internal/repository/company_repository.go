package repository

import (
	"errors"

	"fleet-service/internal/model"

	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a GORM-backed company repository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// ExistsByCompanyRef counts rows regardless of the active flag: a deleted
// companyRef stays taken and cannot be re-registered.
func (r *companyRepository) ExistsByCompanyRef(companyRef uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Company{}).Where("company_ref = ?", companyRef).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *companyRepository) Create(company *model.Company) error {
	return r.db.Create(company).Error
}

func (r *companyRepository) FindAll() ([]model.Company, error) {
	var companies []model.Company
	if err := r.db.Scopes(Active).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *companyRepository) FindByCompanyRef(companyRef uint) (*model.Company, error) {
	var company model.Company
	err := r.db.Scopes(Active).Where("company_ref = ?", companyRef).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByLogin(login string) (*model.Company, error) {
	var company model.Company
	err := r.db.Scopes(Active).Where("login = ?", login).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Update(company *model.Company) error {
	return r.db.Save(company).Error
}

func (r *companyRepository) DeactivateByCompanyRef(companyRef uint) error {
	return r.db.Model(&model.Company{}).Where("company_ref = ?", companyRef).Update("active", false).Error
}
