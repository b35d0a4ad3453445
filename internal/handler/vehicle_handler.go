package handler

import (
	"net/http"

	"fleet-service/internal/apperr"
	"fleet-service/internal/authz"
	"fleet-service/internal/service"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// VehicleHandler serves the vehicle endpoints
type VehicleHandler struct {
	vehicles *service.VehicleService
}

// NewVehicleHandler creates the vehicle handler
func NewVehicleHandler(vehicles *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// CreateVehicle handles POST /vehicles
func (h *VehicleHandler) CreateVehicle(c echo.Context) error {
	log := logger.FromContext(c)

	var req service.CreateVehicleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse create vehicle request", zap.Error(err))
		return respondError(c, apperr.BadRequest("VALIDATION.INVALID_BODY"))
	}

	log.Info("Incoming request to create a new vehicle",
		zap.String("vin", req.Vin), zap.Uint("company_ref", req.CompanyRef))

	vehicle, err := h.vehicles.CreateVehicle(&req)
	prometheus.RecordTelemetrySync("create_vehicle", err)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, vehicle)
}

// FindAllVehicles handles GET /vehicles
func (h *VehicleHandler) FindAllVehicles(c echo.Context) error {
	logger.FromContext(c).Info("Incoming request to get all vehicles")

	vehicles, err := h.vehicles.FindAllVehicles()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, vehicles)
}

// FindAllVehiclesByCompanyRef handles GET /vehicles/:companyRef
func (h *VehicleHandler) FindAllVehiclesByCompanyRef(c echo.Context) error {
	log := logger.FromContext(c)

	companyRef, err := paramUint(c, "companyRef")
	if err != nil {
		return respondError(c, err)
	}

	claims := authz.ClaimsFrom(c)
	if err := authz.CheckCompanyAccess(claims, companyRef); err != nil {
		log.Error("User does not belong to the company",
			zap.String("user", claims.Name), zap.Uint("company_ref", companyRef))
		prometheus.RecordAuthError("forbidden")
		return respondError(c, err)
	}

	log.Info("Incoming request to get vehicles for company",
		zap.Uint("company_ref", companyRef), zap.String("user", claims.Name))

	vehicles, err := h.vehicles.FindAllVehiclesByCompanyRef(companyRef)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, vehicles)
}

// FindVehicleByCompanyRefAndVin handles GET /vehicles/:companyRef/:vin
func (h *VehicleHandler) FindVehicleByCompanyRefAndVin(c echo.Context) error {
	log := logger.FromContext(c)

	companyRef, err := paramUint(c, "companyRef")
	if err != nil {
		return respondError(c, err)
	}
	vin := c.Param("vin")

	claims := authz.ClaimsFrom(c)
	if err := authz.CheckCompanyAccess(claims, companyRef); err != nil {
		log.Error("User does not belong to the company",
			zap.String("user", claims.Name), zap.Uint("company_ref", companyRef))
		prometheus.RecordAuthError("forbidden")
		return respondError(c, err)
	}

	log.Info("Incoming request to get vehicle",
		zap.String("vin", vin), zap.Uint("company_ref", companyRef))

	vehicle, err := h.vehicles.FindVehicleByVinAndCompanyRef(vin, companyRef)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicleByVin handles PUT /vehicles/:vin
func (h *VehicleHandler) UpdateVehicleByVin(c echo.Context) error {
	log := logger.FromContext(c)
	vin := c.Param("vin")

	var req service.UpdateVehicleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse update vehicle request", zap.Error(err))
		return respondError(c, apperr.BadRequest("VALIDATION.INVALID_BODY"))
	}

	log.Info("Incoming request to update vehicle", zap.String("vin", vin))

	vehicle, err := h.vehicles.UpdateVehicleByVin(vin, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

// RemoveVehicleByVin handles DELETE /vehicles/:companyRef/:vin
func (h *VehicleHandler) RemoveVehicleByVin(c echo.Context) error {
	log := logger.FromContext(c)

	companyRef, err := paramUint(c, "companyRef")
	if err != nil {
		return respondError(c, err)
	}
	vin := c.Param("vin")

	log.Info("Incoming request to delete vehicle",
		zap.String("vin", vin), zap.Uint("company_ref", companyRef))

	err = h.vehicles.RemoveVehicle(companyRef, vin)
	prometheus.RecordTelemetrySync("delete_vehicle", err)
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
