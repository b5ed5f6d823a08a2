package billing

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules"
	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	service *InvoiceService
}

func NewInvoiceHandler(service *InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invoices, err := h.service.List(c.UserContext(), InvoiceFilter{
		Status:   c.Query("status"),
		Customer: c.Query("customer"),
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(invoices)
}

func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	id, err := modules.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	inv, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(inv)
}

func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	inv, err := h.service.Create(c.UserContext(), user, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	inv, err := h.service.Send(c.UserContext(), user, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(SendInvoiceResponse{
		Message: "Invoice sent successfully",
		Invoice: inv,
	})
}

func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := modules.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req UpdateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	inv, err := h.service.Update(c.UserContext(), user, id, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(inv)
}

func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := modules.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	if err := h.service.Delete(c.UserContext(), user, id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Invoice deleted"})
}
