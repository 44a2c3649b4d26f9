package handler

import (
	"encoding/json"
	"net/http"

	"talent-be/internal/domain"
	"talent-be/internal/middleware"
	"talent-be/internal/service"
	"talent-be/pkg/errors"
	"talent-be/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// CompetitionHandler handles competition lifecycle, contestant management
// and the platform settings surface
type CompetitionHandler struct {
	competitionService *service.CompetitionService
	logger             *logger.Logger
}

func NewCompetitionHandler(competitionService *service.CompetitionService, logger *logger.Logger) *CompetitionHandler {
	return &CompetitionHandler{
		competitionService: competitionService,
		logger:             logger,
	}
}

// Create handles POST /api/v1/admin/competitions
func (h *CompetitionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims := middleware.ClaimsFromContext(ctx)
	if claims == nil {
		respondError(w, r, h.logger, errors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.CreateCompetitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	if req.Name == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Competition name is required", nil))
		return
	}
	if req.OnlineVoteWeight < 0 || req.OnlineVoteWeight > 100 {
		respondError(w, r, h.logger, errors.NewValidationError("Online vote weight must be between 1 and 100", nil))
		return
	}

	competition, err := h.competitionService.Create(ctx, claims, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, competition)
}

// Get handles GET /api/v1/competitions/{competitionID}
func (h *CompetitionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	competitionID := chi.URLParam(r, "competitionID")

	competition, err := h.competitionService.Get(ctx, competitionID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, competition)
}

// UpdateStatus handles PATCH /api/v1/admin/competitions/{competitionID}/status
func (h *CompetitionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	competitionID := chi.URLParam(r, "competitionID")

	var req domain.UpdateCompetitionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	if _, err := domain.ParseCompetitionStatus(req.Status); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Status must be one of draft, active, completed", nil))
		return
	}

	if err := h.competitionService.UpdateStatus(ctx, competitionID, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"competition_id": competitionID,
		"status":         req.Status,
	})
}

// UpdateTier handles PATCH /api/v1/admin/competitions/{competitionID}/tier
func (h *CompetitionHandler) UpdateTier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	competitionID := chi.URLParam(r, "competitionID")

	var req struct {
		TierID string `json:"tier_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	if req.TierID == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Tier ID is required", nil))
		return
	}

	if err := h.competitionService.UpdateTier(ctx, competitionID, req.TierID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"competition_id": competitionID,
		"tier_id":        req.TierID,
	})
}

// Delete handles DELETE /api/v1/admin/competitions/{competitionID}
func (h *CompetitionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	competitionID := chi.URLParam(r, "competitionID")

	if err := h.competitionService.Delete(ctx, competitionID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddContestant handles POST /api/v1/admin/competitions/{competitionID}/contestants
func (h *CompetitionHandler) AddContestant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	competitionID := chi.URLParam(r, "competitionID")

	var req domain.AddContestantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	req.CompetitionID = competitionID
	if req.TalentProfileID == "" || req.Name == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Talent profile ID and name are required", nil))
		return
	}

	contestant, err := h.competitionService.AddContestant(ctx, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, contestant)
}

// ListContestants handles GET /api/v1/competitions/{competitionID}/contestants
func (h *CompetitionHandler) ListContestants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	competitionID := chi.URLParam(r, "competitionID")

	contestants, err := h.competitionService.ListContestants(ctx, competitionID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"competition_id": competitionID,
		"contestants":    contestants,
	})
}

// UpdateContestantStatus handles PATCH /api/v1/admin/contestants/{contestantID}/status
func (h *CompetitionHandler) UpdateContestantStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contestantID := chi.URLParam(r, "contestantID")

	var req domain.UpdateContestantStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	if _, err := domain.ParseApplicationStatus(req.Status); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Status must be one of pending, approved, rejected", nil))
		return
	}

	if err := h.competitionService.UpdateContestantStatus(ctx, contestantID, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"contestant_id": contestantID,
		"status":        req.Status,
	})
}

// GetSettings handles GET /api/v1/admin/settings
func (h *CompetitionHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.competitionService.GetSettings(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PATCH /api/v1/admin/settings
func (h *CompetitionHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	settings, err := h.competitionService.UpdateSettings(ctx, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}
