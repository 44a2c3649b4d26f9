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

// SettlementHandler handles purchase settlement callbacks and revenue reports
type SettlementHandler struct {
	settlementService *service.SettlementService
	logger            *logger.Logger
}

func NewSettlementHandler(settlementService *service.SettlementService, logger *logger.Logger) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
		logger:            logger,
	}
}

// SettlePurchase handles POST /api/v1/purchases/settle. The payment provider
// retries this callback; replays of a settled transaction return 200 with
// already_settled set.
func (h *SettlementHandler) SettlePurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.SettlePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, h.logger, errors.NewValidationError("Invalid request body", nil))
		return
	}

	if appErr := h.validateSettleRequest(&req); appErr != nil {
		respondError(w, r, h.logger, appErr)
		return
	}

	response, err := h.settlementService.CreditPurchase(ctx, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	status := http.StatusCreated
	if response.AlreadySettled {
		status = http.StatusOK
	}
	respondJSON(w, status, response)
}

// GetRevenueReport handles GET /api/v1/competitions/{competitionID}/revenue
func (h *SettlementHandler) GetRevenueReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	competitionID := chi.URLParam(r, "competitionID")

	if competitionID == "" {
		respondError(w, r, h.logger, errors.NewValidationError("Competition ID is required", nil))
		return
	}

	report, err := h.settlementService.GetRevenueReport(ctx, competitionID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// validateSettleRequest validates the settlement payload fields
func (h *SettlementHandler) validateSettleRequest(req *domain.SettlePurchaseRequest) *errors.AppError {
	if req.TransactionID == "" {
		return errors.NewValidationError("Transaction ID is required", nil)
	}
	if req.CompetitionID == "" {
		return errors.NewValidationError("Competition ID is required", nil)
	}
	if req.ContestantID == "" {
		return errors.NewValidationError("Contestant ID is required", nil)
	}
	if req.VoteCount <= 0 {
		return errors.NewValidationError("Vote count must be positive", nil)
	}
	if req.BonusVotes < 0 {
		return errors.NewValidationError("Bonus votes cannot be negative", nil)
	}
	if req.AmountCents < 0 {
		return errors.NewValidationError("Amount cannot be negative", nil)
	}
	return nil
}
