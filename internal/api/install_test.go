package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-cms/vitrine-setup/internal/provision"
)

// fakeProvisioner records calls and returns scripted errors.
type fakeProvisioner struct {
	probeErr   error
	installErr error

	probeCalls   int
	installCalls int
	lastInstall  provision.Request
}

func (f *fakeProvisioner) Probe(ctx context.Context, target provision.Target) error {
	f.probeCalls++
	return f.probeErr
}

func (f *fakeProvisioner) Install(ctx context.Context, req provision.Request) error {
	f.installCalls++
	f.lastInstall = req
	return f.installErr
}

func newTestServer(t *testing.T, prov *fakeProvisioner) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.StateFile = filepath.Join(t.TempDir(), "installd.state")
	srv, err := NewServer(cfg, prov, nil)
	require.NoError(t, err)
	return srv
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const validInstallBody = `{
	"host": "localhost", "port": "5432", "database": "vitrine",
	"user": "vitrine", "password": "secret",
	"app": {"name": "Vitrine", "company_name": "Acme", "timezone": "UTC"},
	"admin": {"username": "admin", "email": "admin@example.com", "password": "abc123"}
}`

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeProvisioner{})
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestTestConnectionSuccess(t *testing.T) {
	prov := &fakeProvisioner{}
	srv := newTestServer(t, prov)

	rec := postJSON(t, srv.Handler(), "/api/v1/install/test-connection",
		`{"host":"localhost","port":"5432","db":"vitrine","user":"vitrine","password":"pw"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body resultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, prov.probeCalls)
}

func TestTestConnectionFailureIsAVerdict(t *testing.T) {
	prov := &fakeProvisioner{probeErr: errors.New("auth failed")}
	srv := newTestServer(t, prov)

	rec := postJSON(t, srv.Handler(), "/api/v1/install/test-connection",
		`{"host":"localhost","port":"5432","db":"x","user":"postgres","password":"wrong"}`)

	// Unreachable database is a verdict, not an HTTP error.
	assert.Equal(t, http.StatusOK, rec.Code)
	var body resultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "auth failed", body.Error)
}

func TestTestConnectionRejectsIncompleteFields(t *testing.T) {
	prov := &fakeProvisioner{}
	srv := newTestServer(t, prov)

	rec := postJSON(t, srv.Handler(), "/api/v1/install/test-connection",
		`{"host":"localhost"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, prov.probeCalls)
}

func TestInstallSuccess(t *testing.T) {
	prov := &fakeProvisioner{}
	srv := newTestServer(t, prov)

	rec := postJSON(t, srv.Handler(), "/api/v1/install", validInstallBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body resultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)

	require.Equal(t, 1, prov.installCalls)
	assert.Equal(t, "Vitrine", prov.lastInstall.AppName)
	assert.Equal(t, "admin", prov.lastInstall.AdminUsername)
	assert.Equal(t, "vitrine", prov.lastInstall.Target.Database)

	// The single-run guard is persisted.
	assert.True(t, srv.Installed())
	_, err := os.Stat(srv.config.StateFile)
	assert.NoError(t, err)
}

func TestInstallRejectsInvalidBundle(t *testing.T) {
	prov := &fakeProvisioner{}
	srv := newTestServer(t, prov)

	// Admin password below the minimum length.
	body := strings.Replace(validInstallBody, `"password": "abc123"`, `"password": "abc"`, 1)
	rec := postJSON(t, srv.Handler(), "/api/v1/install", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, prov.installCalls)
}

func TestInstallProvisionFailureIsAVerdict(t *testing.T) {
	prov := &fakeProvisioner{installErr: errors.New("create schema: permission denied")}
	srv := newTestServer(t, prov)

	rec := postJSON(t, srv.Handler(), "/api/v1/install", validInstallBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body resultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "permission denied")
	assert.False(t, srv.Installed())
}

func TestInstallSingleRunGuard(t *testing.T) {
	prov := &fakeProvisioner{}
	srv := newTestServer(t, prov)

	first := postJSON(t, srv.Handler(), "/api/v1/install", validInstallBody)
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(t, srv.Handler(), "/api/v1/install", validInstallBody)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, 1, prov.installCalls)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &apiErr))
	assert.Equal(t, ErrCodeAlreadyInstalled, apiErr.Code)
}

func TestInstalledStatePersistsAcrossRestart(t *testing.T) {
	prov := &fakeProvisioner{}
	srv := newTestServer(t, prov)

	rec := postJSON(t, srv.Handler(), "/api/v1/install", validInstallBody)
	require.Equal(t, http.StatusOK, rec.Code)

	// A new server over the same state file starts installed.
	srv2, err := NewServer(srv.config, prov, nil)
	require.NoError(t, err)
	assert.True(t, srv2.Installed())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8800", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9000\"\nlog_level: debug\n"), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset fields fall back to defaults.
	assert.Equal(t, DefaultConfig().ProbeTimeout, cfg.ProbeTimeout)
}

func TestLoadConfigDurationStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("probe_timeout: 10s\ninstall_timeout: 1m30s\n"), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 90*time.Second, cfg.InstallTimeout)
	assert.Equal(t, DefaultConfig().ShutdownTimeout, cfg.ShutdownTimeout)
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("probe_timeout: soon\n"), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
