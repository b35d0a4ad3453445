// Package service carries the business core: login, the company/vehicle
// synchronization sagas against the telemetry API, user management and the
// tracking webhook. Components reference each other through the narrow
// interfaces below, wired at composition time.
package service

import (
	"errors"
	"net/http"

	"fleet-service/internal/apperr"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/telemetry"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CompanyDirectory is the narrow view of the company component needed by
// the vehicle and user components: existence of an owning tenant.
type CompanyDirectory interface {
	ExistsByCompanyRef(companyRef uint) (bool, error)
}

// VehicleDeactivator is the narrow view of the vehicle component needed by
// the company component: the cascade on company deletion.
type VehicleDeactivator interface {
	DeactivateByCompanyRef(companyRef uint) error
}

// CreateCompanyRequest carries the fields for company registration
type CreateCompanyRequest struct {
	CompanyRef  uint   `json:"companyRef"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Login       string `json:"login"`
	Password    string `json:"password"`
	CallbackURL string `json:"callbackUrl"`
}

// UpdateCompanyRequest carries a partial company update; nil fields are
// left untouched. CompanyRef is immutable and not updatable.
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// CompanyService orchestrates company writes against the telemetry API.
// The remote call always comes first: local rows exist only for companies
// the telemetry system has accepted.
type CompanyService struct {
	companies repository.CompanyRepository
	vehicles  VehicleDeactivator
	api       telemetry.API
	logger    *zap.Logger
}

// NewCompanyService wires the company component
func NewCompanyService(companies repository.CompanyRepository, vehicles VehicleDeactivator, api telemetry.API, logger *zap.Logger) *CompanyService {
	return &CompanyService{companies: companies, vehicles: vehicles, api: api, logger: logger}
}

// ExistsByCompanyRef reports whether the companyRef is taken, active or not
func (s *CompanyService) ExistsByCompanyRef(companyRef uint) (bool, error) {
	return s.companies.ExistsByCompanyRef(companyRef)
}

// CreateCompany registers the company with the telemetry API and persists
// it locally only after the remote system accepted it. The stored password
// and the one sent to the telemetry API are the same bcrypt hash.
func (s *CompanyService) CreateCompany(req *CreateCompanyRequest) (*model.Company, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	payload := &telemetry.CreateCompanyRequest{
		CompanyRef:  req.CompanyRef,
		Username:    req.Login,
		Password:    string(hashed),
		CallbackURL: req.CallbackURL,
	}

	if err := s.api.RegisterCompany(payload); err != nil {
		return nil, mapCompanyRegistrationError(err)
	}

	company := &model.Company{
		CompanyRef:  req.CompanyRef,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Login:       req.Login,
		Password:    string(hashed),
		CallbackURL: req.CallbackURL,
		Active:      true,
	}

	if err := s.companies.Create(company); err != nil {
		s.logger.Error("Failed to persist company after telemetry registration",
			zap.Uint("company_ref", req.CompanyRef), zap.Error(err))
		return nil, err
	}

	return company, nil
}

// FindAllCompanies returns all active companies
func (s *CompanyService) FindAllCompanies() ([]model.Company, error) {
	return s.companies.FindAll()
}

// FindCompanyByCompanyRef returns the active company with the given ref
func (s *CompanyService) FindCompanyByCompanyRef(companyRef uint) (*model.Company, error) {
	company, err := s.companies.FindByCompanyRef(companyRef)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Company not found", zap.Uint("company_ref", companyRef))
		return nil, apperr.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// FindCompanyByLogin returns the active company with the given login
func (s *CompanyService) FindCompanyByLogin(login string) (*model.Company, error) {
	company, err := s.companies.FindByLogin(login)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Company not found", zap.String("login", login))
		return nil, apperr.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// UpdateCompanyByCompanyRef updates mutable company fields. Purely local:
// the telemetry API only cares about registration and deletion.
func (s *CompanyService) UpdateCompanyByCompanyRef(companyRef uint, req *UpdateCompanyRequest) (*model.Company, error) {
	company, err := s.FindCompanyByCompanyRef(companyRef)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}

	if err := s.companies.Update(company); err != nil {
		return nil, err
	}
	return company, nil
}

// RemoveCompanyByCompanyRef deletes the company: remote delete first, then
// the vehicle cascade, then the company itself. The order keeps an active
// vehicle from ever referencing an inactive company.
func (s *CompanyService) RemoveCompanyByCompanyRef(companyRef uint) error {
	exists, err := s.companies.ExistsByCompanyRef(companyRef)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Error("Company not found", zap.Uint("company_ref", companyRef))
		return apperr.ErrCompanyNotFound
	}

	if err := s.api.DeleteCompany(companyRef); err != nil {
		s.logger.Error("Telemetry company delete failed",
			zap.Uint("company_ref", companyRef), zap.Error(err))
		return apperr.ErrTelemetryAPI
	}

	if err := s.vehicles.DeactivateByCompanyRef(companyRef); err != nil {
		return err
	}

	return s.companies.DeactivateByCompanyRef(companyRef)
}

// mapCompanyRegistrationError maps telemetry rejections of a company
// registration onto the domain taxonomy; anything that is not an explicit
// remote status (timeouts included) is a telemetry API error.
func mapCompanyRegistrationError(err error) error {
	var statusErr *telemetry.StatusError
	if !errors.As(err, &statusErr) {
		return apperr.ErrTelemetryAPI
	}
	switch statusErr.StatusCode {
	case http.StatusConflict:
		return apperr.ErrTelemetryAlreadyExists
	case http.StatusBadRequest:
		return apperr.ErrTelemetryBadRequest
	case http.StatusUnauthorized:
		return apperr.ErrTelemetryUnauthorized
	default:
		return apperr.ErrTelemetryAPI
	}
}
