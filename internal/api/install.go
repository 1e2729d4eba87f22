package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/vitrine-cms/vitrine-setup/internal/installer"
	"github.com/vitrine-cms/vitrine-setup/internal/provision"
)

// connTestRequest mirrors the wire contract of the connection probe.
type connTestRequest struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	DB       string `json:"db"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// installRequest mirrors the wire contract of the install operation.
type installRequest struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password"`
	App      struct {
		Name        string `json:"name"`
		CompanyName string `json:"company_name"`
		Timezone    string `json:"timezone"`
	} `json:"app"`
	Admin struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"admin"`
}

// resultResponse is the shared {success, error} verdict shape. Domain
// failures (bad credentials, failed provisioning) travel in here with HTTP
// 200; HTTP error codes are reserved for malformed requests and the
// single-run guard.
type resultResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	var req connTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.Host == "" || req.Port == "" || req.DB == "" || req.User == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "all connection fields are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.ProbeTimeout)
	defer cancel()

	target := provision.Target{
		Host:     req.Host,
		Port:     req.Port,
		Database: req.DB,
		User:     req.User,
		Password: req.Password,
	}
	if err := s.prov.Probe(ctx, target); err != nil {
		s.writeJSON(w, http.StatusOK, resultResponse{Success: false, Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, resultResponse{Success: true})
}

func (s *Server) handleInstall(w http.ResponseWriter, r *http.Request) {
	if s.Installed() {
		s.writeError(w, http.StatusConflict, ErrCodeAlreadyInstalled, "installation has already completed")
		return
	}

	var req installRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	// The wizard's own step invariants apply unchanged on the server side.
	bundle := installer.Bundle{
		App: installer.AppConfig{
			Name:        req.App.Name,
			CompanyName: req.App.CompanyName,
			Timezone:    req.App.Timezone,
		},
		Admin: installer.AdminAccount{
			Username:        req.Admin.Username,
			Email:           req.Admin.Email,
			Password:        req.Admin.Password,
			ConfirmPassword: req.Admin.Password,
		},
		Database: installer.DatabaseConnection{
			Host:     req.Host,
			Port:     req.Port,
			Database: req.Database,
			User:     req.User,
			Password: req.Password,
		},
	}
	if err := bundle.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.InstallTimeout)
	defer cancel()

	preq := provision.Request{
		Target: provision.Target{
			Host:     req.Host,
			Port:     req.Port,
			Database: req.Database,
			User:     req.User,
			Password: req.Password,
		},
		AppName:       req.App.Name,
		CompanyName:   req.App.CompanyName,
		Timezone:      req.App.Timezone,
		AdminUsername: req.Admin.Username,
		AdminEmail:    req.Admin.Email,
		AdminPassword: req.Admin.Password,
	}
	if err := s.prov.Install(ctx, preq); err != nil {
		s.log.Warn("installation failed", zap.Error(err))
		s.writeJSON(w, http.StatusOK, resultResponse{Success: false, Error: err.Error()})
		return
	}

	s.markInstalled()
	s.writeJSON(w, http.StatusOK, resultResponse{Success: true})
}
