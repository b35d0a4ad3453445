package repository

import (
	"errors"

	"fleet-service/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ExistsByLogin(login string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Where("login = ?", login).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Scopes(Active).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindAllByCompanyRef(companyRef uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.Scopes(Active).Where("company_ref = ?", companyRef).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Scopes(Active).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByCompanyRefAndID(companyRef, id uint) (*model.User, error) {
	var user model.User
	err := r.db.Scopes(Active).Where("id = ? AND company_ref = ?", id, companyRef).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByLogin(login string) (*model.User, error) {
	var user model.User
	err := r.db.Scopes(Active).Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) DeactivateByID(id uint) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("active", false).Error
}
