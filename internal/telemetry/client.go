// Package telemetry is the client for the external fleet-telemetry API.
// The remote system is the source of truth for registration acceptance:
// callers must get a successful response here before touching local state.
package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fleet-service/pkg/config"

	"go.uber.org/zap"
)

// API is the outbound call contract consumed by the company and vehicle
// services. Implementations report remote rejections as *StatusError.
type API interface {
	RegisterCompany(req *CreateCompanyRequest) error
	DeleteCompany(companyRef uint) error
	RegisterVehicle(companyRef uint, req *CreateVehicleRequest) error
	DeleteVehicle(companyRef uint, vin string) error
}

// CreateCompanyRequest is the telemetry company registration payload.
// Password is the bcrypt hash, never the plaintext.
type CreateCompanyRequest struct {
	CompanyRef  uint   `json:"companyRef"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	CallbackURL string `json:"callbackUrl"`
}

// CreateVehicleRequest is the telemetry vehicle registration payload
type CreateVehicleRequest struct {
	Vin       string  `json:"vin"`
	FuelLevel float64 `json:"fuelLevel"`
}

// StatusError reports a non-2xx response from the telemetry API
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("telemetry api returned status %d", e.StatusCode)
}

// Client talks to the telemetry API over HTTP with an X-Api-Key header
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a telemetry client from configuration
func NewClient(conf *config.TelemetryConfig, logger *zap.Logger) *Client {
	timeout := conf.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    conf.BaseURL,
		apiKey:     conf.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// RegisterCompany registers a company with the telemetry API
func (c *Client) RegisterCompany(req *CreateCompanyRequest) error {
	c.logger.Info("Registering company with telemetry API", zap.Uint("company_ref", req.CompanyRef))
	return c.do(http.MethodPost, fmt.Sprintf("%s/companies", c.baseURL), req)
}

// DeleteCompany removes a company from the telemetry API
func (c *Client) DeleteCompany(companyRef uint) error {
	c.logger.Info("Deleting company from telemetry API", zap.Uint("company_ref", companyRef))
	return c.do(http.MethodDelete, fmt.Sprintf("%s/companies/%d", c.baseURL, companyRef), nil)
}

// RegisterVehicle registers a vehicle with the telemetry API, scoped to
// the owning company via the companyRef query parameter
func (c *Client) RegisterVehicle(companyRef uint, req *CreateVehicleRequest) error {
	c.logger.Info("Registering vehicle with telemetry API",
		zap.String("vin", req.Vin),
		zap.Uint("company_ref", companyRef))
	return c.do(http.MethodPost, fmt.Sprintf("%s/vehicles?companyRef=%d", c.baseURL, companyRef), req)
}

// DeleteVehicle removes a vehicle from the telemetry API
func (c *Client) DeleteVehicle(companyRef uint, vin string) error {
	c.logger.Info("Deleting vehicle from telemetry API",
		zap.String("vin", vin),
		zap.Uint("company_ref", companyRef))
	return c.do(http.MethodDelete, fmt.Sprintf("%s/vehicles/%s?companyRef=%d", c.baseURL, vin, companyRef), nil)
}

func (c *Client) do(method, url string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Telemetry API request failed", zap.String("url", url), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Telemetry API rejected request",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return &StatusError{StatusCode: resp.StatusCode}
	}

	return nil
}
