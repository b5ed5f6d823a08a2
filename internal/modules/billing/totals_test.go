package billing

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	totals, err := ComputeTotals([]LineItem{
		{Description: "Widget", Quantity: 2, Rate: 10},
		{Description: "Setup", Quantity: 1, Rate: 5},
	}, 10)
	require.NoError(t, err)

	assert.Equal(t, 25.0, totals.Subtotal)
	assert.Equal(t, 2.5, totals.Tax)
	assert.Equal(t, 27.5, totals.Total)
	require.Len(t, totals.Items, 2)
	assert.Equal(t, 20.0, totals.Items[0].Amount)
	assert.Equal(t, 5.0, totals.Items[1].Amount)
}

func TestComputeTotalsWithoutDescriptions(t *testing.T) {
	totals, err := ComputeTotals([]LineItem{
		{Quantity: 2, Rate: 10},
		{Quantity: 1, Rate: 5},
	}, 10)
	require.NoError(t, err)

	assert.Equal(t, 25.0, totals.Subtotal)
	assert.Equal(t, 2.5, totals.Tax)
	assert.Equal(t, 27.5, totals.Total)
	assert.Empty(t, totals.Items[0].Description)
}

func TestComputeTotalsRoundsToCents(t *testing.T) {
	totals, err := ComputeTotals([]LineItem{
		{Description: "Bolt", Quantity: 3, Rate: 0.1},
		{Description: "Nut", Quantity: 1, Rate: 0.125},
	}, 7.5)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, totals.Items[0].Amount, 1e-9)
	assert.InDelta(t, 0.13, totals.Items[1].Amount, 1e-9)
	assert.InDelta(t, 0.43, totals.Subtotal, 1e-9)
	assert.InDelta(t, 0.03, totals.Tax, 1e-9)
	assert.InDelta(t, 0.46, totals.Total, 1e-9)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals, err := ComputeTotals(nil, 20)
	require.NoError(t, err)
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Tax)
	assert.Zero(t, totals.Total)
	assert.Empty(t, totals.Items)
}

func TestComputeTotalsValidation(t *testing.T) {
	cases := map[string]struct {
		items   []LineItem
		taxRate float64
	}{
		"negative tax":  {nil, -1},
		"tax over 100":  {nil, 100.5},
		"zero quantity": {[]LineItem{{Description: "x", Quantity: 0, Rate: 1}}, 0},
		"negative rate": {[]LineItem{{Description: "x", Quantity: 1, Rate: -2}}, 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ComputeTotals(tc.items, tc.taxRate)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}
