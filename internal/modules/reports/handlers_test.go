package reports

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
)

func TestSummaryHandlerHidesStorageErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT amount, created_at FROM "invoices"`).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	app := fiber.New()
	app.Get("/summary", NewReportHandler(NewReportService(db)).Summary)

	resp, err := app.Test(httptest.NewRequest("GET", "/summary?startDate=2024-01-01&endDate=2024-01-31", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Error)
	assert.Equal(t, "Internal server error", out.Message)
	assert.NotContains(t, string(body), "connection reset")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryHandlerRejectsBadRange(t *testing.T) {
	app := fiber.New()
	app.Get("/summary", NewReportHandler(NewReportService(nil)).Summary)

	resp, err := app.Test(httptest.NewRequest("GET", "/summary?startDate=2024-02-01&endDate=2024-01-01", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
