package reports

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service *ReportService
	now     func() time.Time
}

func NewReportHandler(service *ReportService) *ReportHandler {
	return &ReportHandler{service: service, now: time.Now}
}

func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	r, err := ParseRange(c.Query("startDate"), c.Query("endDate"), h.now())
	if err != nil {
		return apperr.Respond(c, err)
	}
	summary, err := h.service.Summary(c.UserContext(), r)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(summary)
}
