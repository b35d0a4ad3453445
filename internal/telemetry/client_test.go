package telemetry

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleet-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(&config.TelemetryConfig{
		BaseURL: srv.URL,
		APIKey:  "test-api-key",
	}, zap.NewNop())
	return client, srv
}

func TestRegisterCompanySendsPayloadAndAPIKey(t *testing.T) {
	var gotPath, gotKey string
	var gotBody CreateCompanyRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.RegisterCompany(&CreateCompanyRequest{
		CompanyRef:  7,
		Username:    "acme",
		Password:    "$2a$10$hash",
		CallbackURL: "https://acme.example/cb",
	})
	require.NoError(t, err)
	assert.Equal(t, "/companies", gotPath)
	assert.Equal(t, "test-api-key", gotKey)
	assert.Equal(t, uint(7), gotBody.CompanyRef)
	assert.Equal(t, "acme", gotBody.Username)
}

func TestRegisterCompanyConflict(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	err := client.RegisterCompany(&CreateCompanyRequest{CompanyRef: 7})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
}

func TestDeleteCompanyPath(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.DeleteCompany(7))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/companies/7", gotPath)
}

func TestRegisterVehicleScopedByCompanyRef(t *testing.T) {
	var gotQuery string
	var gotBody CreateVehicleRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("companyRef")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.RegisterVehicle(7, &CreateVehicleRequest{Vin: "1HGCM82633A004352", FuelLevel: 50})
	require.NoError(t, err)
	assert.Equal(t, "7", gotQuery)
	assert.Equal(t, "1HGCM82633A004352", gotBody.Vin)
}

func TestDeleteVehicleNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.DeleteVehicle(7, "UNKNOWNVIN")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestUnreachableServerReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(&config.TelemetryConfig{BaseURL: srv.URL, APIKey: "k"}, zap.NewNop())
	err := client.DeleteCompany(7)
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr), "transport failures are not status errors")
}
