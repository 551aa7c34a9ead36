package service

import (
	"errors"
	"testing"

	"tradeflow-service/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)
	tc := asUser(1, 7)

	customer, err := svc.Create(tc, CustomerCreate{Name: "Emirates Steel", Country: "AE"})
	require.NoError(t, err)

	got, err := svc.Get(tc, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Emirates Steel", got.Name)

	terms := "net 60"
	got, err = svc.Update(tc, customer.ID, CustomerUpdate{PaymentTerms: &terms})
	require.NoError(t, err)
	assert.Equal(t, "net 60", got.PaymentTerms)

	logs := activityRows(t, db, 1, workflow.EntityCustomer, customer.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, workflow.ActionUpdated, logs[1].Action)
	require.Len(t, logs[1].Changes, 1)
	assert.Equal(t, "payment_terms", logs[1].Changes[0].Field)

	require.NoError(t, svc.Delete(tc, customer.ID))
	_, err = svc.Get(tc, customer.ID)
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestCustomerRequiresName(t *testing.T) {
	db := newTestDB(t)
	_, err := NewCustomerService(db).Create(asUser(1, 7), CustomerCreate{})
	var validation *workflow.ValidationError
	require.True(t, errors.As(err, &validation))
}

func TestCustomersAreTenantIsolated(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)

	customer, err := svc.Create(asUser(1, 7), CustomerCreate{Name: "only company one sees this"})
	require.NoError(t, err)

	_, err = svc.Get(asUser(2, 9), customer.ID)
	assert.ErrorIs(t, err, workflow.ErrNotFound)

	customers, total, err := svc.List(asUser(2, 9), 0, 50)
	require.NoError(t, err)
	assert.Empty(t, customers)
	assert.Zero(t, total)
}
