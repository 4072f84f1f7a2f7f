package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/sanadops/sanad-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTicketPricesLinesAndLogsCreation(t *testing.T) {
	env, ctx := newTestEnv(t)

	ticket := env.createTicket(t, ctx)

	assert.Equal(t, enum.TicketStatusPriced, ticket.Status)
	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("ORG1-BR1-%d-0001", year), ticket.Code)

	require.Len(t, ticket.Items, 2)
	taxed := ticket.Items[0]
	if taxed.ServiceCode != "SVC_TAXED" {
		taxed = ticket.Items[1]
	}
	assert.True(t, taxed.OfficeFee.Equal(dec("6.000")), "office fee: %s", taxed.OfficeFee)
	assert.True(t, taxed.GovFee.Equal(dec("0.300")), "gov fee: %s", taxed.GovFee)
	assert.True(t, taxed.VATAmount.Equal(dec("0.300")), "vat: %s", taxed.VATAmount)
	assert.True(t, taxed.LineTotal.Equal(dec("6.600")), "line total: %s", taxed.LineTotal)

	require.Len(t, ticket.Logs, 1)
	assert.Equal(t, entity.TicketActionCreated, ticket.Logs[0].Action)
	require.NotNil(t, ticket.Logs[0].NewStatus)
	assert.Equal(t, enum.TicketStatusPriced, *ticket.Logs[0].NewStatus)
	assert.Nil(t, ticket.Logs[0].OldStatus)
}

func TestCreateTicketSequencesPerBranchAndYear(t *testing.T) {
	env, ctx := newTestEnv(t)

	first := env.createTicket(t, ctx)
	second := env.createTicket(t, ctx)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("ORG1-BR1-%d-0001", year), first.Code)
	assert.Equal(t, fmt.Sprintf("ORG1-BR1-%d-0002", year), second.Code)
}

func TestCreateTicketReportsSkippedLines(t *testing.T) {
	env, ctx := newTestEnv(t)

	unknown := uuid.New()
	ticket, skipped, err := env.tickets.CreateTicket(ctx, &CreateTicketInput{
		BranchID: env.branch.ID,
		ActorID:  env.actorID,
		Lines: []TicketLineInput{
			{ServiceID: env.svcTaxed.ID, Quantity: 1},
			{ServiceID: unknown, Quantity: 1},
			{ServiceID: env.svcInactive.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, skipped, 2)
	reasons := map[uuid.UUID]string{}
	for _, s := range skipped {
		reasons[s.ServiceID] = s.Reason
	}
	assert.Equal(t, "service not found", reasons[unknown])
	assert.Equal(t, "service inactive", reasons[env.svcInactive.ID])

	require.Len(t, ticket.Items, 1)
	assert.Equal(t, "SVC_TAXED", ticket.Items[0].ServiceCode)
}

func TestCreateTicketRejectsZeroQuantity(t *testing.T) {
	env, ctx := newTestEnv(t)

	_, _, err := env.tickets.CreateTicket(ctx, &CreateTicketInput{
		BranchID: env.branch.ID,
		ActorID:  env.actorID,
		Lines:    []TicketLineInput{{ServiceID: env.svcTaxed.ID, Quantity: 0}},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}

func TestCreateTicketRejectsForeignBranch(t *testing.T) {
	env, ctx := newTestEnv(t)

	otherOrg := entity.Organization{Code: 2, Name: "Other Org", Active: true}
	require.NoError(t, env.db.Create(&otherOrg).Error)
	otherBranch := entity.Branch{OrganizationID: otherOrg.ID, Code: 1, Name: "Other Branch"}
	require.NoError(t, env.db.Create(&otherBranch).Error)

	_, _, err := env.tickets.CreateTicket(ctx, &CreateTicketInput{
		BranchID: otherBranch.ID,
		ActorID:  env.actorID,
		Lines:    []TicketLineInput{{ServiceID: env.svcTaxed.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestChangeStatusRejectsUnknownStatusWithoutMutation(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)

	err := env.tickets.ChangeStatus(ctx, ticket.ID, enum.TicketStatus("shipped"), env.actorID, "")
	require.ErrorIs(t, err, apperror.ErrInvalidTicketStatus)

	reloaded, err := env.tickets.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusPriced, reloaded.Status)
	assert.Len(t, reloaded.Logs, 1, "no status_changed entry may be written")
}

func TestChangeStatusStampsMilestonesAndLogs(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)

	require.NoError(t, env.tickets.ChangeStatus(ctx, ticket.ID, enum.TicketStatusSubmitted, env.actorID, "filed with ministry"))

	reloaded, err := env.tickets.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusSubmitted, reloaded.Status)
	assert.NotNil(t, reloaded.SubmittedAt)
	assert.Nil(t, reloaded.PaidAt)
	assert.Nil(t, reloaded.CompletedAt)

	require.Len(t, reloaded.Logs, 2)
	var last entity.TicketLog
	for _, l := range reloaded.Logs {
		if l.Action == entity.TicketActionStatusChanged {
			last = l
		}
	}
	assert.Equal(t, entity.TicketActionStatusChanged, last.Action)
	assert.Equal(t, "filed with ministry", last.Note)
	require.NotNil(t, last.OldStatus)
	require.NotNil(t, last.NewStatus)
	assert.Equal(t, enum.TicketStatusPriced, *last.OldStatus)
	assert.Equal(t, enum.TicketStatusSubmitted, *last.NewStatus)
}

func TestChangeStatusCompletedStampsCompletedAt(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)

	require.NoError(t, env.tickets.ChangeStatus(ctx, ticket.ID, enum.TicketStatusInProgress, env.actorID, ""))
	require.NoError(t, env.tickets.ChangeStatus(ctx, ticket.ID, enum.TicketStatusCompleted, env.actorID, ""))

	reloaded, err := env.tickets.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusCompleted, reloaded.Status)
	assert.NotNil(t, reloaded.CompletedAt)
	assert.Len(t, reloaded.Logs, 3)
}

func TestListLogsUnknownTicket(t *testing.T) {
	env, ctx := newTestEnv(t)

	_, err := env.tickets.ListLogs(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateTicketPreservesLineOrder(t *testing.T) {
	env, ctx := newTestEnv(t)

	ticket, skipped, err := env.tickets.CreateTicket(ctx, &CreateTicketInput{
		BranchID: env.branch.ID,
		ActorID:  env.actorID,
		Lines: []TicketLineInput{
			{ServiceID: env.svcUntaxed.ID, Quantity: 1},
			{ServiceID: env.svcTaxed.ID, Quantity: 3},
			{ServiceID: env.svcUntaxed.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Empty(t, skipped)

	// Reload to pin the stored order; all lines of one ticket share a
	// created_at, so only the position column can order them.
	loaded, err := env.ticketRepo.GetWithDetails(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 3)

	wantCodes := []string{"SVC_UNTAXED", "SVC_TAXED", "SVC_UNTAXED"}
	for i, item := range loaded.Items {
		assert.Equal(t, i, item.Position)
		assert.Equal(t, wantCodes[i], item.ServiceCode)
	}
}
