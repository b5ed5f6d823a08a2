package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-02-29T23:30:00-02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 1, 30, 0, 0, time.UTC), d)

	_, err = ParseDate("02/29/2024")
	assert.Error(t, err)
}

func TestDateUnmarshal(t *testing.T) {
	var body struct {
		Due  *Date `json:"due"`
		Paid *Date `json:"paid"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2030-01-31","paid":null}`), &body))
	require.NotNil(t, body.Due)
	assert.Equal(t, time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC), body.Due.Time)
	assert.Nil(t, body.Paid)

	assert.Error(t, json.Unmarshal([]byte(`{"due":"soon"}`), &body))
}
