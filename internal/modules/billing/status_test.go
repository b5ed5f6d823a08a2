package billing

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusDraft, StatusUnpaid},
		{StatusDraft, StatusPending},
		{StatusUnpaid, StatusPaid},
		{StatusUnpaid, StatusOverdue},
		{StatusPending, StatusPaid},
		{StatusOverdue, StatusPaid},
		{StatusOverdue, StatusUnpaid},
		{StatusPaid, StatusPaid},
	}
	for _, tr := range allowed {
		assert.NoError(t, ValidateTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	rejected := [][2]string{
		{StatusPaid, StatusUnpaid},
		{StatusPaid, StatusDraft},
		{StatusUnpaid, StatusDraft},
		{StatusDraft, StatusPaid},
		{StatusUnpaid, "Cancelled"},
	}
	for _, tr := range rejected {
		err := ValidateTransition(tr[0], tr[1])
		require.Error(t, err, "%s -> %s", tr[0], tr[1])
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestValidateInitial(t *testing.T) {
	s, err := ValidateInitial("")
	require.NoError(t, err)
	assert.Equal(t, StatusUnpaid, s)

	s, err = ValidateInitial(StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, s)

	_, err = ValidateInitial(StatusOverdue)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = ValidateInitial("paid")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	assert.Equal(t, StatusOverdue, EffectiveStatus(StatusUnpaid, past, now))
	assert.Equal(t, StatusOverdue, EffectiveStatus(StatusPending, past, now))
	assert.Equal(t, StatusUnpaid, EffectiveStatus(StatusUnpaid, future, now))
	assert.Equal(t, StatusPaid, EffectiveStatus(StatusPaid, past, now))
	assert.Equal(t, StatusDraft, EffectiveStatus(StatusDraft, past, now))
}
