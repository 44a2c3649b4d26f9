package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"talent-be/internal/domain"
	"talent-be/internal/middleware"
	"talent-be/pkg/errors"
	"talent-be/pkg/logger"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError maps a service error onto the HTTP error envelope. Domain
// sentinels carry their own status; everything unrecognized is an internal
// error with the detail kept out of the response body.
func respondError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	appErr := toAppError(err)

	if appErr.Type == errors.ErrorTypeInternal {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Debug("Request rejected")
	}

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)
	if requestID, ok := r.Context().Value(middleware.RequestIDContextKey).(string); ok {
		response.Error.RequestID = requestID
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// toAppError classifies a service error
func toAppError(err error) *errors.AppError {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stderrors.Is(err, domain.ErrCompetitionNotFound),
		stderrors.Is(err, domain.ErrContestantNotFound),
		stderrors.Is(err, domain.ErrSubmissionNotFound):
		return errors.NewNotFoundError(err.Error())
	case stderrors.Is(err, domain.ErrQuotaExceeded):
		return errors.NewQuotaError(err.Error())
	case stderrors.Is(err, domain.ErrInvalidContestant),
		stderrors.Is(err, domain.ErrCompetitionClosed):
		return errors.NewValidationError(err.Error(), nil)
	case stderrors.Is(err, domain.ErrInvalidTransition),
		stderrors.Is(err, domain.ErrTierLocked):
		return errors.NewConflictError(err.Error())
	case stderrors.Is(err, domain.ErrPaymentRequired),
		stderrors.Is(err, domain.ErrPaymentDeclined):
		return errors.NewPaymentError(err.Error(), err)
	case stderrors.Is(err, domain.ErrSettlementMismatch):
		return errors.NewInternalError(err.Error(), err)
	}

	return errors.NewInternalError("An unexpected error occurred", err)
}
