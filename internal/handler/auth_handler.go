package handler

import (
	"net/http"

	"fleet-service/internal/apperr"
	"fleet-service/internal/service"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler serves the login endpoint
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return respondError(c, apperr.BadRequest("VALIDATION.INVALID_BODY"))
	}

	log.Info("Received login request", zap.String("username", req.Username))

	result, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		prometheus.RecordAuthError("invalid_credentials")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
