package service

import (
	"errors"

	"fleet-service/internal/apperr"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserRequest carries the fields for user creation
type CreateUserRequest struct {
	CompanyRef uint   `json:"companyRef"`
	Name       string `json:"name"`
	Login      string `json:"login"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

// UpdateUserRequest carries a partial user update; nil fields are left
// untouched. Role and Active changes require an admin caller.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

// UserService manages user accounts. Users are local only; nothing here
// talks to the telemetry API.
type UserService struct {
	users     repository.UserRepository
	companies CompanyDirectory
	logger    *zap.Logger
}

// NewUserService wires the user component
func NewUserService(users repository.UserRepository, companies CompanyDirectory, logger *zap.Logger) *UserService {
	return &UserService{users: users, companies: companies, logger: logger}
}

// FindByLogin returns the active user with the given login; used by the
// auth component
func (s *UserService) FindByLogin(login string) (*model.User, error) {
	user, err := s.users.FindByLogin(login)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser creates a user under an existing company. The login must be
// free (soft-deleted logins stay taken) and the password is stored hashed.
func (s *UserService) CreateUser(req *CreateUserRequest) (*model.User, error) {
	taken, err := s.users.ExistsByLogin(req.Login)
	if err != nil {
		return nil, err
	}
	if taken {
		s.logger.Error("User already exists", zap.String("login", req.Login))
		return nil, apperr.ErrUserExistsByLogin
	}

	exists, err := s.companies.ExistsByCompanyRef(req.CompanyRef)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Error("Company not found", zap.Uint("company_ref", req.CompanyRef))
		return nil, apperr.ErrCompanyNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		CompanyRef: req.CompanyRef,
		Name:       req.Name,
		Login:      req.Login,
		Password:   string(hashed),
		Role:       role,
		Active:     true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindAllUsers returns all active users
func (s *UserService) FindAllUsers() ([]model.User, error) {
	return s.users.FindAll()
}

// FindAllUsersByCompanyRef returns the active users of an existing company
func (s *UserService) FindAllUsersByCompanyRef(companyRef uint) ([]model.User, error) {
	exists, err := s.companies.ExistsByCompanyRef(companyRef)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Error("Company not found", zap.Uint("company_ref", companyRef))
		return nil, apperr.ErrCompanyNotFound
	}
	return s.users.FindAllByCompanyRef(companyRef)
}

// FindUserByCompanyRefAndID returns one active user of an existing company
func (s *UserService) FindUserByCompanyRefAndID(companyRef, id uint) (*model.User, error) {
	exists, err := s.companies.ExistsByCompanyRef(companyRef)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Error("Company not found", zap.Uint("company_ref", companyRef))
		return nil, apperr.ErrCompanyNotFound
	}

	user, err := s.users.FindByCompanyRefAndID(companyRef, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("User not found", zap.Uint("id", id))
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserByID updates a user. callerRole gates the privileged fields:
// only admins may change role or active, everyone else keeps their
// current values. A supplied password is re-hashed; companyRef never
// changes through this path.
func (s *UserService) UpdateUserByID(id uint, callerRole string, req *UpdateUserRequest) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("User not found", zap.Uint("id", id))
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if callerRole == model.RoleAdmin {
		if req.Role != nil {
			user.Role = *req.Role
		}
		if req.Active != nil {
			user.Active = *req.Active
		}
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveUserByID soft-deletes a user
func (s *UserService) RemoveUserByID(id uint) error {
	_, err := s.users.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("User not found", zap.Uint("id", id))
		return apperr.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	return s.users.DeactivateByID(id)
}
