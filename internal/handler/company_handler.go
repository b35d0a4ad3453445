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

// CompanyHandler serves the company endpoints
type CompanyHandler struct {
	companies *service.CompanyService
}

// NewCompanyHandler creates the company handler
func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// CreateCompany handles POST /companies
func (h *CompanyHandler) CreateCompany(c echo.Context) error {
	log := logger.FromContext(c)

	var req service.CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse create company request", zap.Error(err))
		return respondError(c, apperr.BadRequest("VALIDATION.INVALID_BODY"))
	}

	log.Info("Incoming request to create a new company", zap.Uint("company_ref", req.CompanyRef))

	company, err := h.companies.CreateCompany(&req)
	prometheus.RecordTelemetrySync("create_company", err)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, company)
}

// FindAllCompanies handles GET /companies
func (h *CompanyHandler) FindAllCompanies(c echo.Context) error {
	logger.FromContext(c).Info("Incoming request to get all companies")

	companies, err := h.companies.FindAllCompanies()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, companies)
}

// FindCompanyByCompanyRef handles GET /companies/:companyRef
func (h *CompanyHandler) FindCompanyByCompanyRef(c echo.Context) error {
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

	log.Info("Incoming request to get company", zap.Uint("company_ref", companyRef))

	company, err := h.companies.FindCompanyByCompanyRef(companyRef)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

// UpdateCompanyByCompanyRef handles PUT /companies/:companyRef
func (h *CompanyHandler) UpdateCompanyByCompanyRef(c echo.Context) error {
	log := logger.FromContext(c)

	companyRef, err := paramUint(c, "companyRef")
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateCompanyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse update company request", zap.Error(err))
		return respondError(c, apperr.BadRequest("VALIDATION.INVALID_BODY"))
	}

	log.Info("Incoming request to update company", zap.Uint("company_ref", companyRef))

	company, err := h.companies.UpdateCompanyByCompanyRef(companyRef, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

// RemoveCompanyByCompanyRef handles DELETE /companies/:companyRef
func (h *CompanyHandler) RemoveCompanyByCompanyRef(c echo.Context) error {
	log := logger.FromContext(c)

	companyRef, err := paramUint(c, "companyRef")
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Incoming request to delete company", zap.Uint("company_ref", companyRef))

	err = h.companies.RemoveCompanyByCompanyRef(companyRef)
	prometheus.RecordTelemetrySync("delete_company", err)
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
