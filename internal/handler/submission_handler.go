package handler

import (
	"encoding/json"
	"net/http"

	"talent-be/internal/domain"
	"talent-be/internal/service"
	"talent-be/pkg/errors"
	"talent-be/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// SubmissionHandler handles join/host/nomination intake and the admin
// approval endpoints
type SubmissionHandler struct {
	workflowService *service.WorkflowService
	logger          *logger.Logger
}

func NewSubmissionHandler(workflowService *service.WorkflowService, logger *logger.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		workflowService: workflowService,
		logger:          logger,
	}
}

// SubmitApplication handles POST /api/v1/applications
func (h *SubmissionHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.JoinApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	kind := domain.SubmissionKind(req.Kind)
	if kind != domain.SubmissionJoin && kind != domain.SubmissionHost {
		respondError(w, r, h.logger, errors.NewValidationError("Kind must be one of join, host", nil))
		return
	}
	if req.FullName == "" || req.Email == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Full name and email are required", nil))
		return
	}
	if kind == domain.SubmissionJoin && req.CompetitionID == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Competition ID is required for join applications", nil))
		return
	}

	response, err := h.workflowService.SubmitApplication(ctx, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, response)
}

// SubmitNomination handles POST /api/v1/nominations
func (h *SubmissionHandler) SubmitNomination(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.NominationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	if req.CompetitionID == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Competition ID is required", nil))
		return
	}
	if req.NomineeName == "" || req.NomineeEmail == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Nominee name and email are required", nil))
		return
	}
	if req.NominatorName == "" || req.NominatorEmail == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Nominator name and email are required", nil))
		return
	}

	response, err := h.workflowService.SubmitNomination(ctx, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, response)
}

// UpdateStatus handles PATCH /api/v1/admin/submissions/{submissionID}/status
func (h *SubmissionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	submissionID := chi.URLParam(r, "submissionID")

	var req domain.UpdateSubmissionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	if _, err := domain.ParseApplicationStatus(req.Status); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Status must be one of approved, rejected", nil))
		return
	}

	submission, err := h.workflowService.UpdateSubmissionStatus(ctx, submissionID, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, submission)
}

// UpdateNominationOutcome handles PATCH /api/v1/admin/submissions/{submissionID}/outcome
func (h *SubmissionHandler) UpdateNominationOutcome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	submissionID := chi.URLParam(r, "submissionID")

	var req domain.UpdateNominationOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}
	if _, err := domain.ParseNominationStatus(req.Outcome); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Outcome must be one of joined, unsure, not_interested", nil))
		return
	}

	submission, err := h.workflowService.UpdateNominationOutcome(ctx, submissionID, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, submission)
}
