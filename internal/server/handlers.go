package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/content-autopilot/internal/server/middleware"
	"github.com/jonathan/content-autopilot/internal/store"
	"github.com/jonathan/content-autopilot/internal/types"
	"github.com/jonathan/content-autopilot/internal/validation"
)

// handleGenerate runs the generation pipeline: route to a provider, fall back
// on failure, then gate the result through the content validator.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid userId")
		return
	}

	// Defaulting is owned by the orchestrator; the validator falls back to
	// the same defaults for zero-valued settings.
	content, err := s.orchestrator.Generate(r.Context(), userID, req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	content, err = validation.Validate(content, req.Settings)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, content)
}

// handlePublish submits content to the platform for the authenticated user.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := s.publisher.Publish(r.Context(), userID, req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// knownIntegration reports whether the settings UI recognizes the name.
func knownIntegration(name string) bool {
	return name == store.IntegrationTwitter || name == store.IntegrationLLMAPIs
}

// handleGetSettings returns the stored credential map for one integration.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	integration := r.PathValue("integration")
	if !knownIntegration(integration) {
		s.errorResponse(w, http.StatusNotFound, "unknown integration: "+integration)
		return
	}

	creds, err := s.store.GetCredentials(r.Context(), userID, integration)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if creds == nil {
		creds = map[string]string{}
	}

	s.jsonResponse(w, http.StatusOK, creds)
}

// handleSaveSettings upserts the credential map for one integration.
func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	integration := r.PathValue("integration")
	if !knownIntegration(integration) {
		s.errorResponse(w, http.StatusNotFound, "unknown integration: "+integration)
		return
	}

	var creds map[string]string
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.store.SaveCredentials(r.Context(), userID, integration, creds); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}
