package service

import (
	"context"
	"testing"

	"talent-be/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type workflowFixture struct {
	service        *WorkflowService
	submissionRepo *fakeSubmissionRepo
	settingsRepo   *fakeSettingsRepo
	gateway        *fakeGateway
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	competitionRepo := newFakeCompetitionRepo()
	competitionRepo.competitions["comp-1"] = &domain.Competition{
		ID:     "comp-1",
		Status: domain.CompetitionActive,
	}

	settingsRepo := &fakeSettingsRepo{settings: &domain.Settings{
		EntryFeeCents:      1000,
		NominationFeeCents: 500,
	}}

	submissionRepo := newFakeSubmissionRepo()
	gateway := &fakeGateway{}

	return &workflowFixture{
		service: NewWorkflowService(submissionRepo, competitionRepo, settingsRepo, gateway,
			NewCacheService(nil, zap.NewNop()), zap.NewNop()),
		submissionRepo: submissionRepo,
		settingsRepo:   settingsRepo,
		gateway:        gateway,
	}
}

func TestSubmitApplicationChargesEntryFee(t *testing.T) {
	f := newWorkflowFixture(t)

	resp, err := f.service.SubmitApplication(context.Background(), &domain.JoinApplicationRequest{
		Kind:          "join",
		CompetitionID: "comp-1",
		FullName:      "Jamie Rivers",
		Email:         "jamie@example.com",
		PaymentToken:  "tok_visa",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1000), resp.AmountPaidCents)
	assert.NotEmpty(t, resp.TransactionID)
	assert.Equal(t, string(domain.ApplicationPending), resp.Status)

	require.Len(t, f.gateway.charges, 1)
	assert.Equal(t, int64(1000), f.gateway.charges[0])

	stored, err := f.submissionRepo.GetByID(context.Background(), resp.SubmissionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.SubmissionJoin, stored.Kind)
}

func TestSubmitApplicationFeeRequiresToken(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.service.SubmitApplication(context.Background(), &domain.JoinApplicationRequest{
		Kind:          "join",
		CompetitionID: "comp-1",
		FullName:      "Jamie Rivers",
		Email:         "jamie@example.com",
	})

	assert.ErrorIs(t, err, domain.ErrPaymentRequired)
	assert.Empty(t, f.submissionRepo.submissions)
}

func TestSubmitApplicationDeclinedChargePersistsNothing(t *testing.T) {
	f := newWorkflowFixture(t)
	f.gateway.declined = true

	_, err := f.service.SubmitApplication(context.Background(), &domain.JoinApplicationRequest{
		Kind:          "join",
		CompetitionID: "comp-1",
		FullName:      "Jamie Rivers",
		Email:         "jamie@example.com",
		PaymentToken:  "tok_declined",
	})

	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
	assert.Empty(t, f.submissionRepo.submissions)
}

func TestSubmitApplicationNonProfitWaivesFee(t *testing.T) {
	f := newWorkflowFixture(t)

	resp, err := f.service.SubmitApplication(context.Background(), &domain.JoinApplicationRequest{
		Kind:          "join",
		CompetitionID: "comp-1",
		FullName:      "Jamie Rivers",
		Email:         "jamie@example.com",
		NonProfit:     true,
	})

	require.NoError(t, err)
	assert.Zero(t, resp.AmountPaidCents)
	assert.Empty(t, f.gateway.charges)
}

func TestSubmitApplicationHostSkipsCompetitionCheck(t *testing.T) {
	f := newWorkflowFixture(t)

	// Host applications are not tied to an existing competition
	resp, err := f.service.SubmitApplication(context.Background(), &domain.JoinApplicationRequest{
		Kind:         "host",
		FullName:     "Morgan Lee",
		Email:        "morgan@example.com",
		PaymentToken: "tok_visa",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.SubmissionID)
}

func TestSubmitNomination(t *testing.T) {
	f := newWorkflowFixture(t)

	resp, err := f.service.SubmitNomination(context.Background(), &domain.NominationRequest{
		CompetitionID:  "comp-1",
		NomineeName:    "Riley Stone",
		NomineeEmail:   "riley@example.com",
		NominatorName:  "Sam Field",
		NominatorEmail: "sam@example.com",
		PaymentToken:   "tok_visa",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(500), resp.AmountPaidCents)

	stored, err := f.submissionRepo.GetByID(context.Background(), resp.SubmissionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.SubmissionNomination, stored.Kind)
	assert.Equal(t, domain.NominationPending, stored.NominationStatus)
	assert.Equal(t, "Sam Field", stored.NominatorName)
}

func TestUpdateSubmissionStatus(t *testing.T) {
	tests := []struct {
		name      string
		from      domain.ApplicationStatus
		to        string
		wantErr   error
		wantFinal domain.ApplicationStatus
	}{
		{name: "pending to approved", from: domain.ApplicationPending, to: "approved", wantFinal: domain.ApplicationApproved},
		{name: "pending to rejected", from: domain.ApplicationPending, to: "rejected", wantFinal: domain.ApplicationRejected},
		{name: "approved is terminal", from: domain.ApplicationApproved, to: "rejected", wantErr: domain.ErrInvalidTransition},
		{name: "rejected is terminal", from: domain.ApplicationRejected, to: "approved", wantErr: domain.ErrInvalidTransition},
		{name: "cannot reset to pending", from: domain.ApplicationPending, to: "pending", wantErr: domain.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWorkflowFixture(t)
			f.submissionRepo.submissions["sub-1"] = &domain.Submission{
				ID:     "sub-1",
				Kind:   domain.SubmissionJoin,
				Status: tt.from,
			}

			updated, err := f.service.UpdateSubmissionStatus(context.Background(), "sub-1",
				&domain.UpdateSubmissionStatusRequest{Status: tt.to})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFinal, updated.Status)
		})
	}
}

func TestUpdateSubmissionStatusNotFound(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.service.UpdateSubmissionStatus(context.Background(), "missing",
		&domain.UpdateSubmissionStatusRequest{Status: "approved"})

	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
}

func TestUpdateNominationOutcome(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.NominationStatus
		to      string
		wantErr error
	}{
		{name: "pending to joined", from: domain.NominationPending, to: "joined"},
		{name: "pending to unsure", from: domain.NominationPending, to: "unsure"},
		{name: "pending to not interested", from: domain.NominationPending, to: "not_interested"},
		{name: "unsure to joined", from: domain.NominationUnsure, to: "joined"},
		{name: "unsure to not interested", from: domain.NominationUnsure, to: "not_interested"},
		{name: "unsure cannot return to pending", from: domain.NominationUnsure, to: "pending", wantErr: domain.ErrInvalidTransition},
		{name: "joined is terminal", from: domain.NominationJoined, to: "unsure", wantErr: domain.ErrInvalidTransition},
		{name: "not interested is terminal", from: domain.NominationNotInterested, to: "joined", wantErr: domain.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWorkflowFixture(t)
			f.submissionRepo.submissions["sub-1"] = &domain.Submission{
				ID:               "sub-1",
				Kind:             domain.SubmissionNomination,
				Status:           domain.ApplicationPending,
				NominationStatus: tt.from,
			}

			updated, err := f.service.UpdateNominationOutcome(context.Background(), "sub-1",
				&domain.UpdateNominationOutcomeRequest{Outcome: tt.to})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.NominationStatus(tt.to), updated.NominationStatus)
		})
	}
}

func TestUpdateNominationOutcomeRejectsNonNomination(t *testing.T) {
	f := newWorkflowFixture(t)
	f.submissionRepo.submissions["sub-1"] = &domain.Submission{
		ID:   "sub-1",
		Kind: domain.SubmissionJoin,
	}

	_, err := f.service.UpdateNominationOutcome(context.Background(), "sub-1",
		&domain.UpdateNominationOutcomeRequest{Outcome: "joined"})

	assert.Error(t, err)
}
