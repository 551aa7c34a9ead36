package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"tradeflow-service/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuoteAssignsYearScopedNumber(t *testing.T) {
	db := newTestDB(t)
	tc := asUser(1, 7)
	customer := seedCustomer(t, db, 1)

	quote, err := NewQuoteService(db).Create(tc, QuoteCreate{
		CustomerID: customer.ID,
		Title:      "HR coil offer",
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("QT-%04d-001", time.Now().Year()), quote.QuoteNumber)
	assert.Equal(t, workflow.QuoteDraft, quote.Status)
	assert.Equal(t, 30, quote.ValidityDays)
}

func TestCreateQuoteValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuoteService(db)
	tc := asUser(1, 7)

	var validation *workflow.ValidationError
	_, err := svc.Create(tc, QuoteCreate{Title: "no customer"})
	require.True(t, errors.As(err, &validation))

	_, err = svc.Create(tc, QuoteCreate{CustomerID: 1})
	require.True(t, errors.As(err, &validation))
}

func TestQuoteCreationMarksDealQuoted(t *testing.T) {
	db := newTestDB(t)
	tc := asUser(1, 7)
	customer := seedCustomer(t, db, 1)
	deals := NewDealService(db)

	deal, err := deals.Create(tc, DealCreate{Description: "coil"})
	require.NoError(t, err)

	_, err = NewQuoteService(db).Create(tc, QuoteCreate{
		CustomerID: customer.ID,
		DealID:     &deal.ID,
		Title:      "offer",
	})
	require.NoError(t, err)

	reloaded, err := deals.Get(tc, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.DealQuoted, reloaded.Status)

	logs := activityRows(t, db, 1, workflow.EntityDeal, deal.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, workflow.ActionAutoStatusChanged, logs[1].Action)
	// Cascades are attributed to the system, never the acting user.
	assert.Nil(t, logs[1].UserID)
}

func TestQuoteCreationOnAdvancedDealIsSilentlySkipped(t *testing.T) {
	db := newTestDB(t)
	tc := asUser(1, 7)
	customer := seedCustomer(t, db, 1)
	deals := NewDealService(db)

	deal, err := deals.Create(tc, DealCreate{Description: "coil"})
	require.NoError(t, err)
	_, err = deals.ChangeStatus(tc, deal.ID, workflow.DealQuoted)
	require.NoError(t, err)
	_, err = deals.ChangeStatus(tc, deal.ID, workflow.DealPOReceived)
	require.NoError(t, err)

	// A revised offer against an advanced deal must not drag it backwards.
	_, err = NewQuoteService(db).Create(tc, QuoteCreate{
		CustomerID: customer.ID,
		DealID:     &deal.ID,
		Title:      "revised offer",
	})
	require.NoError(t, err)

	reloaded, err := deals.Get(tc, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.DealPOReceived, reloaded.Status)
}

func TestQuoteStatusLifecycle(t *testing.T) {
	db := newTestDB(t)
	tc := asUser(1, 7)
	customer := seedCustomer(t, db, 1)
	svc := NewQuoteService(db)

	quote, err := svc.Create(tc, QuoteCreate{CustomerID: customer.ID, Title: "offer"})
	require.NoError(t, err)

	quote, err = svc.ChangeStatus(tc, quote.ID, workflow.QuoteSent)
	require.NoError(t, err)
	quote, err = svc.ChangeStatus(tc, quote.ID, workflow.QuoteAccepted)
	require.NoError(t, err)
	assert.Equal(t, workflow.QuoteAccepted, quote.Status)

	// accepted is terminal
	_, err = svc.ChangeStatus(tc, quote.ID, workflow.QuoteRevised)
	var invalid *workflow.InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
}

func TestAcceptedQuoteLeavesQuotedDealInPlace(t *testing.T) {
	db := newTestDB(t)
	tc := asUser(1, 7)
	customer := seedCustomer(t, db, 1)
	deals := NewDealService(db)
	svc := NewQuoteService(db)

	deal, err := deals.Create(tc, DealCreate{Description: "coil"})
	require.NoError(t, err)

	quote, err := svc.Create(tc, QuoteCreate{CustomerID: customer.ID, DealID: &deal.ID, Title: "offer"})
	require.NoError(t, err)
	// Deal is now QUOTED via the creation cascade.

	_, err = svc.ChangeStatus(tc, quote.ID, workflow.QuoteSent)
	require.NoError(t, err)
	_, err = svc.ChangeStatus(tc, quote.ID, workflow.QuoteAccepted)
	require.NoError(t, err)

	reloaded, err := deals.Get(tc, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.DealQuoted, reloaded.Status)

	// Only the creation cascade wrote an auto entry; acceptance re-asserted
	// the same status, which is not a legal edge and so was skipped.
	var autoCount int
	for _, row := range activityRows(t, db, 1, workflow.EntityDeal, deal.ID) {
		if row.Action == workflow.ActionAutoStatusChanged {
			autoCount++
		}
	}
	assert.Equal(t, 1, autoCount)
}

func TestQuotesAreTenantIsolated(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, 1)
	svc := NewQuoteService(db)

	quote, err := svc.Create(asUser(1, 7), QuoteCreate{CustomerID: customer.ID, Title: "offer"})
	require.NoError(t, err)

	_, err = svc.Get(asUser(2, 9), quote.ID)
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}
