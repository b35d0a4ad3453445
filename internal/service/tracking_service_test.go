package service

import (
	"encoding/base64"
	"testing"

	"fleet-service/internal/apperr"
	"fleet-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTrackingFixture(t *testing.T) (*TrackingService, *mockCompanyRepo, *mockVehicleRepo) {
	t.Helper()
	companies := newMockCompanyRepo()
	vehicles := newMockVehicleRepo()
	api := &mockTelemetryAPI{}

	companySvc := NewCompanyService(companies, NewVehicleService(vehicles, companies, api, zap.NewNop()), api, zap.NewNop())
	vehicleSvc := NewVehicleService(vehicles, companies, api, zap.NewNop())
	svc := NewTrackingService(companySvc, vehicleSvc, zap.NewNop())
	return svc, companies, vehicles
}

func basicHeader(login, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(login+":"+password))
}

func seedCompany(t *testing.T, companies *mockCompanyRepo, login, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	companies.add(&model.Company{CompanyRef: 7, Login: login, Password: string(hash), Active: true})
}

func TestValidateCredentials(t *testing.T) {
	svc, companies, _ := newTrackingFixture(t)
	seedCompany(t, companies, "acme", "secret123")

	assert.NoError(t, svc.ValidateCredentials(basicHeader("acme", "secret123")))
}

func TestValidateCredentialsWrongPassword(t *testing.T) {
	svc, companies, _ := newTrackingFixture(t)
	seedCompany(t, companies, "acme", "secret123")

	err := svc.ValidateCredentials(basicHeader("acme", "wrong"))
	assert.Equal(t, apperr.ErrCompanyInvalidCredentials, err)
}

func TestValidateCredentialsUnknownCompany(t *testing.T) {
	svc, _, _ := newTrackingFixture(t)

	err := svc.ValidateCredentials(basicHeader("ghost", "x"))
	assert.Equal(t, apperr.ErrCompanyInvalidCredentials, err)
}

func TestValidateCredentialsMalformedHeader(t *testing.T) {
	svc, companies, _ := newTrackingFixture(t)
	seedCompany(t, companies, "acme", "secret123")

	assert.Equal(t, apperr.ErrUnauthorized, svc.ValidateCredentials(""))
	assert.Equal(t, apperr.ErrUnauthorized, svc.ValidateCredentials("Bearer token"))
	assert.Equal(t, apperr.ErrUnauthorized, svc.ValidateCredentials("Basic not-base64!!"))
	assert.Equal(t, apperr.ErrUnauthorized, svc.ValidateCredentials(
		"Basic "+base64.StdEncoding.EncodeToString([]byte("nocolon"))))
}

func TestUpdateVehicleTracking(t *testing.T) {
	svc, _, vehicles := newTrackingFixture(t)
	vehicles.vehicles["X"] = &model.Vehicle{Vin: "X", CompanyRef: 7, Active: true}

	err := svc.UpdateVehicleTracking(&TrackingUpdateRequest{Vin: "X", Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)

	require.NotNil(t, vehicles.vehicles["X"].Lat)
	assert.Equal(t, 48.85, *vehicles.vehicles["X"].Lat)
	assert.Equal(t, 2.35, *vehicles.vehicles["X"].Long)
}

func TestUpdateVehicleTrackingUnknownVin(t *testing.T) {
	svc, _, _ := newTrackingFixture(t)

	err := svc.UpdateVehicleTracking(&TrackingUpdateRequest{Vin: "NOPE", Latitude: 1, Longitude: 2})
	assert.Equal(t, apperr.ErrVehicleNotFound, err)
}
