package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

func money(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(amount)
	require.NoError(t, err)
	return m
}

func TestOrder_FinalizeTotals(t *testing.T) {
	o := NewOrder(uuid.New())

	_, err := o.AddLine(uuid.New(), "Widget", 3, money(t, "10.00"))
	require.NoError(t, err)
	_, err = o.AddLine(uuid.New(), "Gadget", 1, money(t, "5.50"))
	require.NoError(t, err)

	require.NoError(t, o.Finalize())

	assert.Equal(t, "35.50", o.Subtotal.String())
	assert.Equal(t, "6.75", o.Tax.String()) // 35.50 * 0.19 = 6.7450
	assert.Equal(t, "42.25", o.Total.String())
	assert.Equal(t, 2, o.ItemCount())
}

func TestOrder_FinalizeEmptyFails(t *testing.T) {
	o := NewOrder(uuid.New())

	err := o.Finalize()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestOrder_AddLineValidation(t *testing.T) {
	o := NewOrder(uuid.New())

	_, err := o.AddLine(uuid.New(), "Widget", 0, money(t, "10.00"))
	assert.Error(t, err)

	negative := valueobject.Zero().Sub(money(t, "1.00"))
	_, err = o.AddLine(uuid.New(), "Widget", 1, negative)
	assert.Error(t, err)
}

func TestOrder_LineSubtotal(t *testing.T) {
	o := NewOrder(uuid.New())

	item, err := o.AddLine(uuid.New(), "Widget", 4, money(t, "2.25"))
	require.NoError(t, err)
	assert.Equal(t, "9.00", item.Subtotal.String())
}

func TestOrder_StatusTransitions(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPaid, StatusShipped, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusPending, false},
		{StatusShipped, StatusCancelled, false},
		{StatusShipped, StatusPending, false},
		{StatusCancelled, StatusPaid, false},
	}

	for _, tc := range cases {
		o := NewOrder(uuid.New())
		o.Status = tc.from

		err := o.TransitionTo(tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, o.Status)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.from, o.Status)
		}
	}
}

func TestOrder_TotalsImmutableAfterFinalize(t *testing.T) {
	o := NewOrder(uuid.New())
	_, err := o.AddLine(uuid.New(), "Widget", 1, money(t, "10.00"))
	require.NoError(t, err)
	require.NoError(t, o.Finalize())

	total := o.Total.String()
	require.NoError(t, o.TransitionTo(StatusPaid))
	require.NoError(t, o.TransitionTo(StatusShipped))

	assert.Equal(t, total, o.Total.String())
}
