package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBHandlerPersistsErrorsOnly(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewDBHandler(db, time.Hour)
	defer h.Stop()

	logger := slog.New(h).With("request_id", "req-1")
	logger.Info("ignored")
	logger.Error("invoice save failed",
		"method", "POST",
		"path", "/api/invoices",
		"user_id", "u-1",
		"error", "disk full",
		"invoice_number", "INV-1",
	)
	h.Flush()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	got := logs[0]
	assert.Equal(t, "ERROR", got.Level)
	assert.Equal(t, "invoice save failed", got.Message)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/api/invoices", got.Path)
	assert.Equal(t, "disk full", got.Error)
	require.NotNil(t, got.UserID)
	assert.Equal(t, "u-1", *got.UserID)
	assert.JSONEq(t, `{"invoice_number":"INV-1"}`, string(got.Extra))
}

func TestPurgeOlderThan(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.SystemLog{Timestamp: now.AddDate(0, 0, -40), Level: "ERROR", Message: "old"}).Error)
	require.NoError(t, db.Create(&models.SystemLog{Timestamp: now.AddDate(0, 0, -2), Level: "ERROR", Message: "recent"}).Error)

	deleted, err := PurgeOlderThan(db, 30, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var left []models.SystemLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "recent", left[0].Message)
}

func TestMultiHandlerFansOut(t *testing.T) {
	db := testutil.NewDB(t)
	dbh := NewDBHandler(db, time.Hour)
	defer dbh.Stop()

	logger := slog.New(NewMultiHandler(StdoutHandler("test"), dbh))
	logger.Error("boom", "error", "x")
	dbh.Flush()

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink down")
}
func (f failingHandler) WithAttrs([]slog.Attr) slog.Handler { return f }
func (f failingHandler) WithGroup(string) slog.Handler { return f }

func TestMultiHandlerKeepsGoingAfterFailure(t *testing.T) {
	db := testutil.NewDB(t)
	dbh := NewDBHandler(db, time.Hour)
	defer dbh.Stop()

	m := NewMultiHandler(failingHandler{}, dbh)
	rec := slog.NewRecord(time.Now(), slog.LevelError, "still stored", 0)
	err := m.Handle(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")

	dbh.Flush()
	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Where("message = ?", "still stored").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
