package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/entity"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	infraRepo "github.com/sanadops/sanad-api/internal/infrastructure/repository"
	"github.com/sanadops/sanad-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceFromTicketSnapshotsTotals(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)

	invoice, err := env.invoices.CreateInvoiceFromTicket(ctx, ticket.ID, env.actorID)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("INV-%d-00001", time.Now().Year()), invoice.Number)
	assert.Equal(t, enum.InvoiceStatusIssued, invoice.Status)
	assert.Equal(t, ticket.ID, invoice.TicketID)
	assert.Nil(t, invoice.PaidAt)

	assert.True(t, invoice.SubtotalOfficeFees.Equal(dec("16.000")), "subtotal: %s", invoice.SubtotalOfficeFees)
	assert.True(t, invoice.TotalGovFees.Equal(dec("5.300")), "gov fees: %s", invoice.TotalGovFees)
	assert.True(t, invoice.VATAmount.Equal(dec("0.300")), "vat: %s", invoice.VATAmount)
	assert.True(t, invoice.GrandTotal.Equal(dec("21.600")), "grand total: %s", invoice.GrandTotal)

	require.Len(t, invoice.Items, 2)
	assert.Equal(t, "Taxed service", invoice.Items[0].Description)
	assert.Equal(t, "Untaxed service", invoice.Items[1].Description)
	for i, it := range invoice.Items {
		assert.Equal(t, i, it.Position)
	}
	sum := dec("0")
	for _, it := range invoice.Items {
		sum = sum.Add(it.LineTotal)
	}
	assert.True(t, sum.Equal(invoice.GrandTotal), "item totals must reconcile with the grand total")
}

func TestCreateInvoiceFromTicketIsIdempotent(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)

	first, err := env.invoices.CreateInvoiceFromTicket(ctx, ticket.ID, env.actorID)
	require.NoError(t, err)

	second, err := env.invoices.CreateInvoiceFromTicket(ctx, ticket.ID, env.actorID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Number, second.Number)

	var count int64
	require.NoError(t, env.db.Model(&entity.Invoice{}).Where("ticket_id = ?", ticket.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateInvoiceUnknownTicket(t *testing.T) {
	env, ctx := newTestEnv(t)

	_, err := env.invoices.CreateInvoiceFromTicket(ctx, uuid.New(), env.actorID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceForeignTicketIsNotFound(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)

	_, err := env.invoices.CreateInvoiceFromTicket(ctx, ticket.ID, env.actorID)
	require.NoError(t, err)

	otherOrg := entity.Organization{Code: 2, Name: "Other Org", Active: true}
	require.NoError(t, env.db.Create(&otherOrg).Error)
	foreignCtx := infraRepo.WithOrganization(context.Background(), otherOrg.ID)

	invoice, err := env.invoices.CreateInvoiceFromTicket(foreignCtx, ticket.ID, env.actorID)
	require.Error(t, err)
	assert.Nil(t, invoice)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceRejectsTicketWithoutLines(t *testing.T) {
	env, ctx := newTestEnv(t)

	ticket, skipped, err := env.tickets.CreateTicket(ctx, &CreateTicketInput{
		BranchID: env.branch.ID,
		ActorID:  env.actorID,
		Lines:    []TicketLineInput{{ServiceID: uuid.New(), Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, skipped, 1)

	invoice, err := env.invoices.CreateInvoiceFromTicket(ctx, ticket.ID, env.actorID)
	require.ErrorIs(t, err, apperror.ErrTicketNotPriced)
	assert.Nil(t, invoice)
}

func TestRecordPaymentPartialKeepsInvoiceIssued(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)
	invoice, err := env.invoices.CreateInvoiceFromTicket(ctx, ticket.ID, env.actorID)
	require.NoError(t, err)

	payment, err := env.invoices.RecordPayment(ctx, invoice.ID, &RecordPaymentInput{
		Amount:  dec("10.000"),
		Method:  enum.PaymentMethodCash,
		ActorID: env.actorID,
	})
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(dec("10.000")))

	reloaded, err := env.invoices.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusIssued, reloaded.Status)
	assert.Nil(t, reloaded.PaidAt)

	// the ticket must not cascade on a partial payment
	freshTicket, err := env.tickets.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusPriced, freshTicket.Status)
	assert.Nil(t, freshTicket.PaidAt)
}

func TestRecordPaymentFullSettlementCascadesToTicket(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)
	invoice, err := env.invoices.CreateInvoiceFromTicket(ctx, ticket.ID, env.actorID)
	require.NoError(t, err)

	_, err = env.invoices.RecordPayment(ctx, invoice.ID, &RecordPaymentInput{
		Amount:  dec("10.000"),
		Method:  enum.PaymentMethodCash,
		ActorID: env.actorID,
	})
	require.NoError(t, err)

	_, err = env.invoices.RecordPayment(ctx, invoice.ID, &RecordPaymentInput{
		Amount:  dec("11.600"),
		Method:  enum.PaymentMethodTransfer,
		ActorID: env.actorID,
	})
	require.NoError(t, err)

	reloaded, err := env.invoices.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, reloaded.Status)
	require.NotNil(t, reloaded.PaidAt)

	freshTicket, err := env.tickets.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusPaid, freshTicket.Status)
	require.NotNil(t, freshTicket.PaidAt)

	// cascade is logged against the ticket
	logs, err := env.tickets.ListLogs(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	var cascade *entity.TicketLog
	for i := range logs {
		if logs[i].Action == entity.TicketActionStatusChanged {
			cascade = &logs[i]
		}
	}
	require.NotNil(t, cascade)
	assert.Equal(t, "invoice settled in full", cascade.Note)
	require.NotNil(t, cascade.NewStatus)
	assert.Equal(t, enum.TicketStatusPaid, *cascade.NewStatus)
}

func TestRecordPaymentOverpaymentIsAccepted(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)
	invoice, err := env.invoices.CreateInvoiceFromTicket(ctx, ticket.ID, env.actorID)
	require.NoError(t, err)

	_, err = env.invoices.RecordPayment(ctx, invoice.ID, &RecordPaymentInput{
		Amount:  dec("30.000"),
		Method:  enum.PaymentMethodCard,
		ActorID: env.actorID,
	})
	require.NoError(t, err)

	reloaded, err := env.invoices.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, reloaded.Status)
}

func TestRecordPaymentAlreadyPaidInvoiceDoesNotRecascade(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)
	invoice, err := env.invoices.CreateInvoiceFromTicket(ctx, ticket.ID, env.actorID)
	require.NoError(t, err)

	_, err = env.invoices.RecordPayment(ctx, invoice.ID, &RecordPaymentInput{
		Amount:  dec("21.600"),
		Method:  enum.PaymentMethodCash,
		ActorID: env.actorID,
	})
	require.NoError(t, err)

	_, err = env.invoices.RecordPayment(ctx, invoice.ID, &RecordPaymentInput{
		Amount:  dec("1.000"),
		Method:  enum.PaymentMethodCash,
		ActorID: env.actorID,
	})
	require.NoError(t, err)

	logs, err := env.tickets.ListLogs(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2, "only one cascade entry despite further payments")
}

func TestRecordPaymentRejectsUnknownMethod(t *testing.T) {
	env, ctx := newTestEnv(t)
	ticket := env.createTicket(t, ctx)
	invoice, err := env.invoices.CreateInvoiceFromTicket(ctx, ticket.ID, env.actorID)
	require.NoError(t, err)

	_, err = env.invoices.RecordPayment(ctx, invoice.ID, &RecordPaymentInput{
		Amount:  dec("1.000"),
		Method:  enum.PaymentMethod("barter"),
		ActorID: env.actorID,
	})
	require.ErrorIs(t, err, apperror.ErrInvalidPayment)

	payments, err := env.invoices.ListPayments(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestListPaymentsUnknownInvoice(t *testing.T) {
	env, ctx := newTestEnv(t)

	_, err := env.invoices.ListPayments(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
