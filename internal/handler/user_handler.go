package handler

import (
	"net/http"

	"fleet-service/internal/apperr"
	"fleet-service/internal/authz"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler serves the user endpoints
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates the user handler
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CreateUser handles POST /user
func (h *UserHandler) CreateUser(c echo.Context) error {
	log := logger.FromContext(c)

	var req service.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse create user request", zap.Error(err))
		return respondError(c, apperr.BadRequest("VALIDATION.INVALID_BODY"))
	}

	log.Info("Incoming request to create a new user",
		zap.String("login", req.Login), zap.Uint("company_ref", req.CompanyRef))

	user, err := h.users.CreateUser(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// FindAllUsers handles GET /user
func (h *UserHandler) FindAllUsers(c echo.Context) error {
	logger.FromContext(c).Info("Incoming request to get all users")

	users, err := h.users.FindAllUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// FindAllUsersByCompanyRef handles GET /user/:companyRef
func (h *UserHandler) FindAllUsersByCompanyRef(c echo.Context) error {
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

	log.Info("Incoming request to get users for company",
		zap.Uint("company_ref", companyRef), zap.String("user", claims.Name))

	users, err := h.users.FindAllUsersByCompanyRef(companyRef)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// FindUserByCompanyRefAndID handles GET /user/:companyRef/:id
func (h *UserHandler) FindUserByCompanyRefAndID(c echo.Context) error {
	log := logger.FromContext(c)

	companyRef, err := paramUint(c, "companyRef")
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
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

	log.Info("Incoming request to get user", zap.Uint("id", id), zap.String("user", claims.Name))

	user, err := h.users.FindUserByCompanyRefAndID(companyRef, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUserByID handles PUT /user/:id. A user may update themselves; only
// admins may update someone else.
func (h *UserHandler) UpdateUserByID(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse update user request", zap.Error(err))
		return respondError(c, apperr.BadRequest("VALIDATION.INVALID_BODY"))
	}

	claims := authz.ClaimsFrom(c)
	if id != claims.UserID && claims.Role != model.RoleAdmin {
		log.Error("User cannot update another user",
			zap.String("user", claims.Name), zap.Uint("id", id))
		prometheus.RecordAuthError("forbidden")
		return respondError(c, apperr.ErrUserCannotUpdateOther)
	}

	log.Info("Incoming request to update user", zap.Uint("id", id))

	user, err := h.users.UpdateUserByID(id, claims.Role, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// RemoveUserByID handles DELETE /user/:id
func (h *UserHandler) RemoveUserByID(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Incoming request to delete user", zap.Uint("id", id))

	if err := h.users.RemoveUserByID(id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
