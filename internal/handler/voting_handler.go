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

// VotingHandler handles vote ingestion and the tally read endpoints
type VotingHandler struct {
	votingService *service.VotingService
	logger        *logger.Logger
}

func NewVotingHandler(votingService *service.VotingService, logger *logger.Logger) *VotingHandler {
	return &VotingHandler{
		votingService: votingService,
		logger:        logger,
	}
}

// CastVote handles POST /api/v1/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	if appErr := h.validateCastVoteRequest(&req); appErr != nil {
		respondError(w, r, h.logger, appErr)
		return
	}

	response, err := h.votingService.CastVote(ctx, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, response)
}

// GetBreakdown handles GET /api/v1/competitions/{competitionID}/breakdown
func (h *VotingHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	competitionID := chi.URLParam(r, "competitionID")

	if competitionID == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Competition ID is required", nil))
		return
	}

	breakdown, err := h.votingService.GetBreakdown(ctx, competitionID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}

// GetLeaderboard handles GET /api/v1/competitions/{competitionID}/leaderboard
func (h *VotingHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	competitionID := chi.URLParam(r, "competitionID")

	if competitionID == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Competition ID is required", nil))
		return
	}

	leaderboard, err := h.votingService.GetLeaderboard(ctx, competitionID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, leaderboard)
}

// validateCastVoteRequest validates the vote payload fields
func (h *VotingHandler) validateCastVoteRequest(req *domain.CastVoteRequest) *errors.AppError {
	if req.CompetitionID == "" {
		return errors.NewValidationError("Competition ID is required", nil)
	}
	if req.ContestantID == "" {
		return errors.NewValidationError("Contestant ID is required", nil)
	}
	source, err := domain.ParseVoteSource(req.Source)
	if err != nil {
		return errors.NewValidationError("Vote source must be one of online_free, in_person_qr", map[string]interface{}{
			"source": req.Source,
		})
	}
	if source == domain.VoteSourceOnlinePurchased {
		return errors.NewValidationError("Purchased votes are credited through purchase settlement", nil)
	}
	if source == domain.VoteSourceOnlineFree && req.VoterIdentity == "" {
		return errors.NewValidationError("Voter identity is required for online votes", nil)
	}
	return nil
}
