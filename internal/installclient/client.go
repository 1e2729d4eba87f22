// Package installclient is the HTTP consumer of the Vitrine install API. It
// speaks the three installation contracts: connection test, install, health.
package installclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vitrine-cms/vitrine-setup/internal/installer"
)

// Sentinel errors for common HTTP error classes.
var (
	ErrAlreadyInstalled = errors.New("already installed")
	ErrUnavailable      = errors.New("install service unavailable")
)

// Per-operation deadlines. A hung backend settles the call instead of
// leaving wizard controls disabled forever.
const (
	probeTimeout   = 30 * time.Second
	installTimeout = 2 * time.Minute
)

// Client is an HTTP client for the vitrine-installd API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a new install client.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: installTimeout},
	}
}

// ConnTestRequest is the body for POST /api/v1/install/test-connection.
type ConnTestRequest struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	DB       string `json:"db"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// ConnTestResponse is the backend's verdict on the supplied credentials.
// A reachable backend that cannot reach the database answers
// {success:false} rather than an HTTP error.
type ConnTestResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// InstallAppConfig is the application identity section of an install request.
type InstallAppConfig struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Timezone    string `json:"timezone"`
}

// InstallAdminAccount is the administrator section of an install request.
type InstallAdminAccount struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// InstallRequest is the body for POST /api/v1/install: the full merged
// bundle, built once when the final wizard transition fires.
type InstallRequest struct {
	Host     string              `json:"host"`
	Port     string              `json:"port"`
	Database string              `json:"database"`
	User     string              `json:"user"`
	Password string              `json:"password"`
	App      InstallAppConfig    `json:"app"`
	Admin    InstallAdminAccount `json:"admin"`
}

// InstallResponse is the response from an install request.
type InstallResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse is the response from GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewConnTestRequest maps a wizard connection group onto the wire format.
func NewConnTestRequest(conn installer.DatabaseConnection) ConnTestRequest {
	return ConnTestRequest{
		Host:     conn.Host,
		Port:     conn.Port,
		DB:       conn.Database,
		User:     conn.User,
		Password: conn.Password,
	}
}

// NewInstallRequest maps a wizard bundle onto the wire format.
func NewInstallRequest(b installer.Bundle) InstallRequest {
	return InstallRequest{
		Host:     b.Database.Host,
		Port:     b.Database.Port,
		Database: b.Database.Database,
		User:     b.Database.User,
		Password: b.Database.Password,
		App: InstallAppConfig{
			Name:        b.App.Name,
			CompanyName: b.App.CompanyName,
			Timezone:    b.App.Timezone,
		},
		Admin: InstallAdminAccount{
			Username: b.Admin.Username,
			Email:    b.Admin.Email,
			Password: b.Admin.Password,
		},
	}
}

// TestConnection asks the backend to verify the supplied database
// credentials. The returned response carries the backend's verdict; the
// error is non-nil only for transport-level failures.
func (c *Client) TestConnection(ctx context.Context, req ConnTestRequest) (*ConnTestResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var resp ConnTestResponse
	if err := c.do(ctx, "POST", "/api/v1/install/test-connection", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Install asks the backend to perform the installation: create the schema,
// the administrator account, and the application configuration. The backend
// is the transaction boundary; partial-failure recovery is its problem.
func (c *Client) Install(ctx context.Context, req InstallRequest) (*InstallResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, installTimeout)
	defer cancel()

	var resp InstallResponse
	if err := c.do(ctx, "POST", "/api/v1/install", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health hits /healthz to verify the install service is reachable.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, "GET", "/healthz", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// apiError is the structured error body from the install service.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Code != "" {
			switch resp.StatusCode {
			case http.StatusConflict:
				return fmt.Errorf("%w: %s", ErrAlreadyInstalled, apiErr.Message)
			case http.StatusServiceUnavailable:
				return fmt.Errorf("%w: %s", ErrUnavailable, apiErr.Message)
			default:
				return &apiErr
			}
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
