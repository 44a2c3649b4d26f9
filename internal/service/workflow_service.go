package service

import (
	"context"
	"fmt"
	"time"

	"talent-be/internal/domain"
	"talent-be/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorkflowService runs the join/host/nomination intake and its payment-first
// rule: when a fee applies, the charge must succeed before anything is
// persisted. A failed charge leaves no submission behind.
type WorkflowService struct {
	submissionRepo  repository.SubmissionRepository
	competitionRepo repository.CompetitionRepository
	settingsRepo    repository.SettingsRepository
	gateway         PaymentGateway
	cacheService    *CacheService
	logger          *zap.Logger
}

func NewWorkflowService(
	submissionRepo repository.SubmissionRepository,
	competitionRepo repository.CompetitionRepository,
	settingsRepo repository.SettingsRepository,
	gateway PaymentGateway,
	cacheService *CacheService,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		submissionRepo:  submissionRepo,
		competitionRepo: competitionRepo,
		settingsRepo:    settingsRepo,
		gateway:         gateway,
		cacheService:    cacheService,
		logger:          logger,
	}
}

// SubmitApplication handles join and host intake
func (s *WorkflowService) SubmitApplication(ctx context.Context, req *domain.JoinApplicationRequest) (*domain.SubmissionResponse, error) {
	kind := domain.SubmissionKind(req.Kind)
	if kind != domain.SubmissionJoin && kind != domain.SubmissionHost {
		return nil, fmt.Errorf("unknown submission kind %q", req.Kind)
	}
	if req.FullName == "" || req.Email == "" {
		return nil, fmt.Errorf("full name and email are required")
	}
	if kind == domain.SubmissionJoin {
		if err := s.requireCompetition(ctx, req.CompetitionID); err != nil {
			return nil, err
		}
	}

	settings, err := s.cacheService.GetSettingsWithCache(ctx, s.settingsRepo.Get)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings snapshot: %w", err)
	}

	fee := settings.EntryFeeCents
	if req.NonProfit {
		fee = 0
	}

	submission := &domain.Submission{
		ID:            uuid.NewString(),
		Kind:          kind,
		CompetitionID: req.CompetitionID,
		FullName:      req.FullName,
		Email:         req.Email,
		Status:        domain.ApplicationPending,
		NonProfit:     req.NonProfit,
	}

	if err := s.chargeFee(ctx, submission, fee, req.PaymentToken); err != nil {
		return nil, err
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info("Application submitted",
		zap.String("submission_id", submission.ID),
		zap.String("kind", string(kind)),
		zap.Int64("amount_paid_cents", submission.AmountPaidCents))

	return submissionResponse(submission), nil
}

// SubmitNomination handles third-party nomination intake. The nomination fee
// follows the same payment-first rule as entry fees.
func (s *WorkflowService) SubmitNomination(ctx context.Context, req *domain.NominationRequest) (*domain.SubmissionResponse, error) {
	if req.NomineeName == "" || req.NomineeEmail == "" {
		return nil, fmt.Errorf("nominee name and email are required")
	}
	if req.NominatorName == "" || req.NominatorEmail == "" {
		return nil, fmt.Errorf("nominator name and email are required")
	}
	if err := s.requireCompetition(ctx, req.CompetitionID); err != nil {
		return nil, err
	}

	settings, err := s.cacheService.GetSettingsWithCache(ctx, s.settingsRepo.Get)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings snapshot: %w", err)
	}

	fee := settings.NominationFeeCents
	if req.NonProfit {
		fee = 0
	}

	submission := &domain.Submission{
		ID:               uuid.NewString(),
		Kind:             domain.SubmissionNomination,
		CompetitionID:    req.CompetitionID,
		FullName:         req.NomineeName,
		Email:            req.NomineeEmail,
		Status:           domain.ApplicationPending,
		NominationStatus: domain.NominationPending,
		NominatorName:    req.NominatorName,
		NominatorEmail:   req.NominatorEmail,
		NonProfit:        req.NonProfit,
	}

	if err := s.chargeFee(ctx, submission, fee, req.PaymentToken); err != nil {
		return nil, err
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info("Nomination submitted",
		zap.String("submission_id", submission.ID),
		zap.String("competition_id", req.CompetitionID),
		zap.Int64("amount_paid_cents", submission.AmountPaidCents))

	return submissionResponse(submission), nil
}

// UpdateSubmissionStatus moves a submission through the approval flow. Only
// pending submissions can move; approved and rejected are terminal.
func (s *WorkflowService) UpdateSubmissionStatus(ctx context.Context, id string, req *domain.UpdateSubmissionStatusRequest) (*domain.Submission, error) {
	status, err := domain.ParseApplicationStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if status != domain.ApplicationApproved && status != domain.ApplicationRejected {
		return nil, domain.ErrInvalidTransition
	}

	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, domain.ErrSubmissionNotFound
	}
	if submission.Status != domain.ApplicationPending {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.submissionRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update submission status: %w", err)
	}

	submission.Status = status
	s.logger.Info("Submission status updated",
		zap.String("submission_id", id),
		zap.String("status", string(status)))
	return submission, nil
}

// UpdateNominationOutcome moves a nomination's outcome. Pending may move to
// any outcome; unsure may still resolve to joined or not_interested; joined
// and not_interested are terminal.
func (s *WorkflowService) UpdateNominationOutcome(ctx context.Context, id string, req *domain.UpdateNominationOutcomeRequest) (*domain.Submission, error) {
	outcome, err := domain.ParseNominationStatus(req.Outcome)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, domain.ErrSubmissionNotFound
	}
	if submission.Kind != domain.SubmissionNomination {
		return nil, fmt.Errorf("submission %s is not a nomination", id)
	}
	if !nominationTransitionAllowed(submission.NominationStatus, outcome) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.submissionRepo.UpdateNominationStatus(ctx, id, outcome); err != nil {
		return nil, fmt.Errorf("failed to update nomination outcome: %w", err)
	}

	submission.NominationStatus = outcome
	s.logger.Info("Nomination outcome updated",
		zap.String("submission_id", id),
		zap.String("outcome", string(outcome)))
	return submission, nil
}

func nominationTransitionAllowed(from, to domain.NominationStatus) bool {
	switch from {
	case domain.NominationPending:
		return to != domain.NominationPending
	case domain.NominationUnsure:
		return to == domain.NominationJoined || to == domain.NominationNotInterested
	}
	return false
}

// chargeFee settles the intake fee before persistence. A zero fee skips the
// gateway entirely.
func (s *WorkflowService) chargeFee(ctx context.Context, submission *domain.Submission, fee int64, token string) error {
	if fee <= 0 {
		return nil
	}
	if token == "" {
		return domain.ErrPaymentRequired
	}

	result, err := s.gateway.Charge(ctx, token, fee)
	if err != nil {
		s.logger.Warn("Intake fee charge failed",
			zap.String("kind", string(submission.Kind)),
			zap.Int64("fee_cents", fee),
			zap.Error(err))
		return err
	}

	submission.AmountPaidCents = result.AmountCents
	submission.TransactionID = result.TransactionID
	return nil
}

func (s *WorkflowService) requireCompetition(ctx context.Context, competitionID string) error {
	if competitionID == "" {
		return fmt.Errorf("competition ID is required")
	}
	competition, err := s.cacheService.GetCompetitionWithCache(ctx, competitionID, s.competitionRepo.GetByID)
	if err != nil {
		return fmt.Errorf("failed to get competition: %w", err)
	}
	if competition == nil {
		return domain.ErrCompetitionNotFound
	}
	return nil
}

func submissionResponse(submission *domain.Submission) *domain.SubmissionResponse {
	createdAt := submission.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return &domain.SubmissionResponse{
		SubmissionID:    submission.ID,
		Status:          string(submission.Status),
		AmountPaidCents: submission.AmountPaidCents,
		TransactionID:   submission.TransactionID,
		CreatedAt:       createdAt,
	}
}
