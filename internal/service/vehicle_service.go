package service

import (
	"errors"
	"net/http"

	"fleet-service/internal/apperr"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/telemetry"

	"go.uber.org/zap"
)

// CreateVehicleRequest carries the fields for vehicle registration
type CreateVehicleRequest struct {
	CompanyRef uint    `json:"companyRef"`
	Vin        string  `json:"vin"`
	License    string  `json:"license"`
	FuelLevel  float64 `json:"fuelLevel"`
}

// UpdateVehicleRequest carries a partial vehicle update; nil fields are
// left untouched
type UpdateVehicleRequest struct {
	License   *string  `json:"license"`
	Lat       *float64 `json:"lat"`
	Long      *float64 `json:"long"`
	FuelLevel *float64 `json:"fuelLevel"`
}

// VehicleService orchestrates vehicle writes against the telemetry API
type VehicleService struct {
	vehicles  repository.VehicleRepository
	companies CompanyDirectory
	api       telemetry.API
	logger    *zap.Logger
}

// NewVehicleService wires the vehicle component
func NewVehicleService(vehicles repository.VehicleRepository, companies CompanyDirectory, api telemetry.API, logger *zap.Logger) *VehicleService {
	return &VehicleService{vehicles: vehicles, companies: companies, api: api, logger: logger}
}

// CreateVehicle validates the owning company and VIN uniqueness, registers
// the vehicle with the telemetry API, and persists it only on remote
// success.
func (s *VehicleService) CreateVehicle(req *CreateVehicleRequest) (*model.Vehicle, error) {
	exists, err := s.companies.ExistsByCompanyRef(req.CompanyRef)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Error("Company not found", zap.Uint("company_ref", req.CompanyRef))
		return nil, apperr.ErrCompanyNotFound
	}

	taken, err := s.vehicles.ExistsByVin(req.Vin)
	if err != nil {
		return nil, err
	}
	if taken {
		s.logger.Error("Vehicle already exists", zap.String("vin", req.Vin))
		return nil, apperr.ErrVehicleExistsByVin
	}

	payload := &telemetry.CreateVehicleRequest{
		Vin:       req.Vin,
		FuelLevel: req.FuelLevel,
	}
	if err := s.api.RegisterVehicle(req.CompanyRef, payload); err != nil {
		s.logger.Error("Telemetry vehicle registration failed",
			zap.String("vin", req.Vin), zap.Error(err))
		return nil, apperr.ErrTelemetryAPI
	}

	vehicle := &model.Vehicle{
		CompanyRef: req.CompanyRef,
		Vin:        req.Vin,
		License:    req.License,
		FuelLevel:  req.FuelLevel,
		Active:     true,
	}
	if err := s.vehicles.Create(vehicle); err != nil {
		s.logger.Error("Failed to persist vehicle after telemetry registration",
			zap.String("vin", req.Vin), zap.Error(err))
		return nil, err
	}

	return vehicle, nil
}

// FindAllVehicles returns all active vehicles
func (s *VehicleService) FindAllVehicles() ([]model.Vehicle, error) {
	return s.vehicles.FindAll()
}

// FindAllVehiclesByCompanyRef returns the active vehicles of a company
func (s *VehicleService) FindAllVehiclesByCompanyRef(companyRef uint) ([]model.Vehicle, error) {
	return s.vehicles.FindAllByCompanyRef(companyRef)
}

// FindVehicleByVinAndCompanyRef returns a company's active vehicle by VIN
func (s *VehicleService) FindVehicleByVinAndCompanyRef(vin string, companyRef uint) (*model.Vehicle, error) {
	vehicle, err := s.vehicles.FindByVinAndCompanyRef(vin, companyRef)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Vehicle not found",
			zap.String("vin", vin), zap.Uint("company_ref", companyRef))
		return nil, apperr.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

// UpdateVehicleByVin updates mutable vehicle fields in place
func (s *VehicleService) UpdateVehicleByVin(vin string, req *UpdateVehicleRequest) (*model.Vehicle, error) {
	vehicle, err := s.vehicles.FindByVin(vin)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Vehicle not found", zap.String("vin", vin))
		return nil, apperr.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.License != nil {
		vehicle.License = *req.License
	}
	if req.Lat != nil {
		vehicle.Lat = req.Lat
	}
	if req.Long != nil {
		vehicle.Long = req.Long
	}
	if req.FuelLevel != nil {
		vehicle.FuelLevel = *req.FuelLevel
	}

	if err := s.vehicles.Update(vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// UpdateLocation moves a vehicle; used by the tracking webhook
func (s *VehicleService) UpdateLocation(vin string, lat, long float64) error {
	_, err := s.UpdateVehicleByVin(vin, &UpdateVehicleRequest{Lat: &lat, Long: &long})
	return err
}

// RemoveVehicle deletes the vehicle: remote delete first, local
// deactivation only on remote success. A remote 404 means the vehicle is
// already gone upstream and maps to NotFound with the local row untouched.
func (s *VehicleService) RemoveVehicle(companyRef uint, vin string) error {
	exists, err := s.vehicles.ExistsByVin(vin)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Error("Vehicle not found", zap.String("vin", vin))
		return apperr.ErrVehicleNotFound
	}

	if err := s.api.DeleteVehicle(companyRef, vin); err != nil {
		var statusErr *telemetry.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			s.logger.Error("Vehicle unknown to telemetry API", zap.String("vin", vin))
			return apperr.ErrVehicleNotFound
		}
		s.logger.Error("Telemetry vehicle delete failed",
			zap.String("vin", vin), zap.Error(err))
		return apperr.ErrTelemetryAPI
	}

	return s.vehicles.DeactivateByVin(vin)
}

// DeactivateByCompanyRef deactivates every vehicle of a company; the
// company component calls this as the delete cascade
func (s *VehicleService) DeactivateByCompanyRef(companyRef uint) error {
	return s.vehicles.DeactivateByCompanyRef(companyRef)
}
