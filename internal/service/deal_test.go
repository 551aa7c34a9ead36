package service

import (
	"errors"
	"testing"

	"tradeflow-service/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDealAssignsSequentialNumbers(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)
	tc := asUser(1, 7)

	first, err := svc.Create(tc, DealCreate{Description: "HR coil, 50t"})
	require.NoError(t, err)
	second, err := svc.Create(tc, DealCreate{Description: "Rebar, 120t"})
	require.NoError(t, err)

	assert.Equal(t, "DEAL-001", first.DealNumber)
	assert.Equal(t, "DEAL-002", second.DealNumber)
	assert.Equal(t, workflow.DealRFQReceived, first.Status)
	assert.Equal(t, "AED", first.Currency)
	require.NotNil(t, first.CreatedByID)
	assert.Equal(t, uint(7), *first.CreatedByID)

	logs := activityRows(t, db, 1, workflow.EntityDeal, first.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, workflow.ActionCreated, logs[0].Action)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, uint(7), *logs[0].UserID)
}

func TestCreateDealRequiresDescription(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)

	_, err := svc.Create(asUser(1, 7), DealCreate{})
	var validation *workflow.ValidationError
	require.True(t, errors.As(err, &validation))
}

func TestCreateDealRejectsDuplicateExplicitNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)
	tc := asUser(1, 7)

	_, err := svc.Create(tc, DealCreate{DealNumber: "DEAL-X1", Description: "first"})
	require.NoError(t, err)

	_, err = svc.Create(tc, DealCreate{DealNumber: "DEAL-X1", Description: "second"})
	var validation *workflow.ValidationError
	require.True(t, errors.As(err, &validation))
}

func TestDeletedDealNumberIsNeverReissued(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)
	tc := asUser(1, 7)

	first, err := svc.Create(tc, DealCreate{Description: "first"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(tc, first.ID))

	second, err := svc.Create(tc, DealCreate{Description: "second"})
	require.NoError(t, err)
	assert.Equal(t, "DEAL-002", second.DealNumber)
}

func TestChangeDealStatusFollowsTable(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)
	tc := asUser(1, 7)

	deal, err := svc.Create(tc, DealCreate{Description: "coil"})
	require.NoError(t, err)

	deal, err = svc.ChangeStatus(tc, deal.ID, workflow.DealQuoted)
	require.NoError(t, err)
	assert.Equal(t, workflow.DealQuoted, deal.Status)

	logs := activityRows(t, db, 1, workflow.EntityDeal, deal.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, workflow.ActionStatusChanged, logs[1].Action)
	require.Len(t, logs[1].Changes, 1)
	assert.Equal(t, "status", logs[1].Changes[0].Field)
	assert.Equal(t, "rfq_received", *logs[1].Changes[0].OldValue)
	assert.Equal(t, "quoted", *logs[1].Changes[0].NewValue)
}

func TestInvalidDealTransitionWritesNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)
	tc := asUser(1, 7)

	deal, err := svc.Create(tc, DealCreate{Description: "coil"})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(tc, deal.ID, workflow.DealShipped)
	var invalid *workflow.InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "rfq_received", invalid.Current)
	assert.Equal(t, "shipped", invalid.Requested)

	reloaded, err := svc.Get(tc, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.DealRFQReceived, reloaded.Status)
	assert.Len(t, activityRows(t, db, 1, workflow.EntityDeal, deal.ID), 1)
}

func TestUpdateDealRecordsDiff(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)
	tc := asUser(1, 7)

	deal, err := svc.Create(tc, DealCreate{Description: "coil", Notes: "urgent"})
	require.NoError(t, err)

	desc := "galvanized sheet"
	deal, err = svc.Update(tc, deal.ID, DealUpdate{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, deal.Description)

	logs := activityRows(t, db, 1, workflow.EntityDeal, deal.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, workflow.ActionUpdated, logs[1].Action)
	require.Len(t, logs[1].Changes, 1)
	assert.Equal(t, "description", logs[1].Changes[0].Field)
	assert.Equal(t, "coil", *logs[1].Changes[0].OldValue)
	assert.Equal(t, "galvanized sheet", *logs[1].Changes[0].NewValue)
}

func TestNoOpUpdateWritesNoAudit(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)
	tc := asUser(1, 7)

	deal, err := svc.Create(tc, DealCreate{Description: "coil"})
	require.NoError(t, err)

	same := "coil"
	_, err = svc.Update(tc, deal.ID, DealUpdate{Description: &same})
	require.NoError(t, err)

	assert.Len(t, activityRows(t, db, 1, workflow.EntityDeal, deal.ID), 1)
}

func TestSoftDeletedDealIsGoneButAuditSurvives(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)
	activity := NewActivityService(db)
	tc := asUser(1, 7)

	deal, err := svc.Create(tc, DealCreate{Description: "coil"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(tc, deal.ID))

	_, err = svc.Get(tc, deal.ID)
	assert.ErrorIs(t, err, workflow.ErrNotFound)

	deals, total, err := svc.List(tc, DealListOptions{})
	require.NoError(t, err)
	assert.Empty(t, deals)
	assert.Zero(t, total)

	logs, total, err := activity.ListForDeal(tc, deal.ID, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	// Newest first: the deletion entry leads.
	assert.Equal(t, workflow.ActionDeleted, logs[0].Action)
	assert.Equal(t, workflow.ActionCreated, logs[1].Action)
}

func TestDealsAreTenantIsolated(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)

	deal, err := svc.Create(asUser(1, 7), DealCreate{Description: "company one deal"})
	require.NoError(t, err)

	other := asUser(2, 9)
	_, err = svc.Get(other, deal.ID)
	assert.ErrorIs(t, err, workflow.ErrNotFound)

	_, err = svc.ChangeStatus(other, deal.ID, workflow.DealQuoted)
	assert.ErrorIs(t, err, workflow.ErrNotFound)

	deals, total, err := svc.List(other, DealListOptions{})
	require.NoError(t, err)
	assert.Empty(t, deals)
	assert.Zero(t, total)
}

func TestListDealsFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewDealService(db)
	tc := asUser(1, 7)

	first, err := svc.Create(tc, DealCreate{Description: "a"})
	require.NoError(t, err)
	_, err = svc.Create(tc, DealCreate{Description: "b"})
	require.NoError(t, err)
	_, err = svc.ChangeStatus(tc, first.ID, workflow.DealSourcing)
	require.NoError(t, err)

	deals, total, err := svc.List(tc, DealListOptions{Status: string(workflow.DealSourcing)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, deals, 1)
	assert.Equal(t, first.ID, deals[0].ID)
}
