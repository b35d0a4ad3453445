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

// TrackingHandler serves the telemetry webhook. The route is public in the
// policy table; authentication happens here against the company's Basic
// credentials before anything else runs.
type TrackingHandler struct {
	tracking *service.TrackingService
}

// NewTrackingHandler creates the tracking handler
func NewTrackingHandler(tracking *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

// UpdateVehicleTelemetry handles POST /tracking/webhook
func (h *TrackingHandler) UpdateVehicleTelemetry(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.WebhookCounter.Inc()

	if err := h.tracking.ValidateCredentials(c.Request().Header.Get("Authorization")); err != nil {
		prometheus.RecordAuthError("webhook_credentials")
		return respondError(c, err)
	}

	var req service.TrackingUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tracking update", zap.Error(err))
		return respondError(c, apperr.BadRequest("VALIDATION.INVALID_BODY"))
	}

	log.Info("Received vehicle telemetry update", zap.String("vin", req.Vin))

	if err := h.tracking.UpdateVehicleTracking(&req); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
