package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealTransitionTable(t *testing.T) {
	cases := map[DealStatus][]DealStatus{
		DealRFQReceived:  {DealSourcing, DealQuoted, DealCancelled},
		DealSourcing:     {DealQuoted, DealCancelled},
		DealQuoted:       {DealPOReceived, DealSourcing, DealCancelled},
		DealPOReceived:   {DealOrdered, DealCancelled},
		DealOrdered:      {DealInProduction, DealCancelled},
		DealInProduction: {DealShipped, DealCancelled},
		DealShipped:      {DealDelivered, DealCancelled},
		DealDelivered:    {DealInvoiced, DealCancelled},
		DealInvoiced:     {DealPaid, DealCancelled},
		DealPaid:         {DealClosed},
		DealClosed:       {},
		DealCancelled:    {},
	}

	for from, expected := range cases {
		want := make([]string, 0, len(expected))
		for _, s := range expected {
			want = append(want, string(s))
		}
		assert.ElementsMatch(t, want, OutgoingStatuses(EntityDeal, string(from)), "from %s", from)
	}
}

func TestQuoteTransitionTable(t *testing.T) {
	cases := map[QuoteStatus][]QuoteStatus{
		QuoteDraft:    {QuoteSent, QuoteExpired},
		QuoteSent:     {QuoteAccepted, QuoteRejected, QuoteRevised, QuoteExpired},
		QuoteAccepted: {},
		QuoteRejected: {QuoteRevised},
		QuoteExpired:  {QuoteRevised},
		QuoteRevised:  {QuoteSent},
	}

	for from, expected := range cases {
		want := make([]string, 0, len(expected))
		for _, s := range expected {
			want = append(want, string(s))
		}
		assert.ElementsMatch(t, want, OutgoingStatuses(EntityQuote, string(from)), "from %s", from)
	}
}

func TestCustomerPOTransitionTable(t *testing.T) {
	cases := map[CustomerPOStatus][]CustomerPOStatus{
		POReceived:     {POAcknowledged, POCancelled},
		POAcknowledged: {POInProgress, POCancelled},
		POInProgress:   {POFulfilled, POCancelled},
		POFulfilled:    {},
		POCancelled:    {},
	}

	for from, expected := range cases {
		want := make([]string, 0, len(expected))
		for _, s := range expected {
			want = append(want, string(s))
		}
		assert.ElementsMatch(t, want, OutgoingStatuses(EntityCustomerPO, string(from)), "from %s", from)
	}
}

func TestValidateRejectsIllegalEdges(t *testing.T) {
	err := Validate(EntityDeal, string(DealRFQReceived), string(DealShipped))
	require.Error(t, err)

	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, EntityDeal, invalid.Entity)
	assert.Equal(t, "rfq_received", invalid.Current)
	assert.Equal(t, "shipped", invalid.Requested)
	assert.Equal(t, "invalid status transition from rfq_received to shipped", err.Error())
}

func TestValidateAcceptsLegalEdges(t *testing.T) {
	assert.NoError(t, Validate(EntityDeal, string(DealRFQReceived), string(DealQuoted)))
	assert.NoError(t, Validate(EntityQuote, string(QuoteSent), string(QuoteAccepted)))
	assert.NoError(t, Validate(EntityCustomerPO, string(POReceived), string(POAcknowledged)))
}

func TestSelfTransitionIsIllegal(t *testing.T) {
	assert.Error(t, Validate(EntityDeal, string(DealQuoted), string(DealQuoted)))
	assert.Error(t, Validate(EntityQuote, string(QuoteDraft), string(QuoteDraft)))
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, IsTerminal(EntityDeal, string(DealClosed)))
	assert.True(t, IsTerminal(EntityDeal, string(DealCancelled)))
	assert.True(t, IsTerminal(EntityQuote, string(QuoteAccepted)))
	assert.True(t, IsTerminal(EntityCustomerPO, string(POFulfilled)))
	assert.True(t, IsTerminal(EntityCustomerPO, string(POCancelled)))

	assert.False(t, IsTerminal(EntityDeal, string(DealPaid)))
	assert.False(t, IsTerminal(EntityQuote, string(QuoteRejected)))
}

func TestUnknownStatusHasNoEdges(t *testing.T) {
	assert.False(t, KnownStatus(EntityDeal, "warehoused"))
	assert.Error(t, Validate(EntityDeal, string(DealQuoted), "warehoused"))
	assert.Error(t, Validate(EntityDeal, "warehoused", string(DealQuoted)))
}

func TestKnownEntity(t *testing.T) {
	assert.True(t, KnownEntity("deal"))
	assert.True(t, KnownEntity("quote"))
	assert.True(t, KnownEntity("customer_po"))
	assert.True(t, KnownEntity("customer"))
	assert.False(t, KnownEntity("supplier"))
}
