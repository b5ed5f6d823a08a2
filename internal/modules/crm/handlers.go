package crm

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules"
	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	service *CustomerService
}

func NewCustomerHandler(service *CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.service.List(c.UserContext(), CustomerFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := modules.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	customer, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	customer, err := h.service.Create(c.UserContext(), user, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := modules.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	customer, err := h.service.Update(c.UserContext(), user, id, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
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
	return c.JSON(dto.MessageResponse{Message: "Customer deleted"})
}

type InteractionHandler struct {
	service *InteractionService
}

func NewInteractionHandler(service *InteractionService) *InteractionHandler {
	return &InteractionHandler{service: service}
}

func (h *InteractionHandler) Create(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req CreateInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	in, err := h.service.Create(c.UserContext(), user, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(in)
}

func (h *InteractionHandler) ListForCustomer(c *fiber.Ctx) error {
	customerID, err := modules.ParamID(c, "customerId")
	if err != nil {
		return apperr.Respond(c, err)
	}
	list, err := h.service.ListForCustomer(c.UserContext(), customerID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(list)
}

func (h *InteractionHandler) Update(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := modules.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req UpdateInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	in, err := h.service.Update(c.UserContext(), user, id, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(in)
}

func (h *InteractionHandler) Delete(c *fiber.Ctx) error {
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
	return c.JSON(dto.MessageResponse{Message: "Interaction deleted"})
}
