package service

import (
	"encoding/base64"
	"strings"

	"fleet-service/internal/apperr"
	"fleet-service/internal/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TrackingUpdateRequest is the webhook payload pushed by the telemetry
// system when a vehicle moves
type TrackingUpdateRequest struct {
	Vin       string  `json:"vin"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CompanyCredentialFinder is the narrow view of the company component
// needed to authenticate the webhook
type CompanyCredentialFinder interface {
	FindCompanyByLogin(login string) (*model.Company, error)
}

// VehicleLocator is the narrow view of the vehicle component needed to
// apply a tracking update
type VehicleLocator interface {
	UpdateLocation(vin string, lat, long float64) error
}

// TrackingService handles the inbound telemetry webhook. The webhook is
// the one operation authenticated with company Basic credentials instead
// of a bearer token.
type TrackingService struct {
	companies CompanyCredentialFinder
	vehicles  VehicleLocator
	logger    *zap.Logger
}

// NewTrackingService wires the tracking component
func NewTrackingService(companies CompanyCredentialFinder, vehicles VehicleLocator, logger *zap.Logger) *TrackingService {
	return &TrackingService{companies: companies, vehicles: vehicles, logger: logger}
}

// ValidateCredentials decodes the Basic Authorization header and checks
// the credentials against the company record. Any parse failure or
// mismatch rejects the request.
func (s *TrackingService) ValidateCredentials(authHeader string) error {
	username, password, err := extractBasicCredentials(authHeader)
	if err != nil {
		return err
	}

	s.logger.Info("Validating webhook credentials", zap.String("login", username))

	company, err := s.companies.FindCompanyByLogin(username)
	if err != nil {
		return apperr.ErrCompanyInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(company.Password), []byte(password)); err != nil {
		s.logger.Error("Invalid webhook password", zap.String("login", username))
		return apperr.ErrCompanyInvalidCredentials
	}

	return nil
}

// UpdateVehicleTracking applies a location update pushed by the telemetry
// system
func (s *TrackingService) UpdateVehicleTracking(req *TrackingUpdateRequest) error {
	s.logger.Info("Updating vehicle position",
		zap.String("vin", req.Vin),
		zap.Float64("lat", req.Latitude),
		zap.Float64("long", req.Longitude))

	return s.vehicles.UpdateLocation(req.Vin, req.Latitude, req.Longitude)
}

// extractBasicCredentials decodes "Basic base64(login:password)"
func extractBasicCredentials(authHeader string) (string, string, error) {
	if !strings.HasPrefix(authHeader, "Basic ") {
		return "", "", apperr.ErrUnauthorized
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authHeader, "Basic "))
	if err != nil {
		return "", "", apperr.ErrUnauthorized
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok || username == "" || password == "" {
		return "", "", apperr.ErrUnauthorized
	}

	return username, password, nil
}
