package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteCreationCascadesToQuoted(t *testing.T) {
	target, ok := CascadeTarget(EntityQuote, EventCreated, DealRFQReceived)
	assert.True(t, ok)
	assert.Equal(t, DealQuoted, target)

	target, ok = CascadeTarget(EntityQuote, EventCreated, DealSourcing)
	assert.True(t, ok)
	assert.Equal(t, DealQuoted, target)
}

func TestQuoteCreationSkippedWhenAlreadyQuoted(t *testing.T) {
	// quoted -> quoted is not a legal deal edge, so the cascade is a no-op.
	_, ok := CascadeTarget(EntityQuote, EventCreated, DealQuoted)
	assert.False(t, ok)
}

func TestQuoteAcceptanceSkippedOnAdvancedDeal(t *testing.T) {
	_, ok := CascadeTarget(EntityQuote, string(QuoteAccepted), DealPOReceived)
	assert.False(t, ok)

	_, ok = CascadeTarget(EntityQuote, string(QuoteAccepted), DealShipped)
	assert.False(t, ok)
}

func TestPOAcknowledgementCascades(t *testing.T) {
	target, ok := CascadeTarget(EntityCustomerPO, string(POAcknowledged), DealQuoted)
	assert.True(t, ok)
	assert.Equal(t, DealPOReceived, target)
}

func TestPOProgressCascadesStepwise(t *testing.T) {
	target, ok := CascadeTarget(EntityCustomerPO, string(POInProgress), DealPOReceived)
	assert.True(t, ok)
	assert.Equal(t, DealOrdered, target)

	target, ok = CascadeTarget(EntityCustomerPO, string(POInProgress), DealOrdered)
	assert.True(t, ok)
	assert.Equal(t, DealInProduction, target)

	// A deal already past production has no in_progress rule.
	_, ok = CascadeTarget(EntityCustomerPO, string(POInProgress), DealShipped)
	assert.False(t, ok)
}

func TestPOFulfilmentCascadesStepwise(t *testing.T) {
	target, ok := CascadeTarget(EntityCustomerPO, string(POFulfilled), DealInProduction)
	assert.True(t, ok)
	assert.Equal(t, DealShipped, target)

	target, ok = CascadeTarget(EntityCustomerPO, string(POFulfilled), DealShipped)
	assert.True(t, ok)
	assert.Equal(t, DealDelivered, target)

	_, ok = CascadeTarget(EntityCustomerPO, string(POFulfilled), DealDelivered)
	assert.False(t, ok)
}

func TestCancellationNeverCascades(t *testing.T) {
	_, ok := CascadeTarget(EntityCustomerPO, string(POCancelled), DealPOReceived)
	assert.False(t, ok)

	_, ok = CascadeTarget(EntityQuote, string(QuoteRejected), DealQuoted)
	assert.False(t, ok)
}

func TestCascadeSkippedOnTerminalDeal(t *testing.T) {
	_, ok := CascadeTarget(EntityQuote, EventCreated, DealCancelled)
	assert.False(t, ok)

	_, ok = CascadeTarget(EntityCustomerPO, string(POAcknowledged), DealClosed)
	assert.False(t, ok)
}
