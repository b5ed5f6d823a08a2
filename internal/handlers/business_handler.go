package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BusinessHandler struct {
	businessService *services.BusinessService
}

func NewBusinessHandler(businessService *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

func (h *BusinessHandler) Get(c *fiber.Ctx) error {
	user, ok := identity.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	b, err := h.businessService.Get(c.UserContext(), user)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(b)
}

func (h *BusinessHandler) Create(c *fiber.Ctx) error {
	user, ok := identity.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.BusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	b, err := h.businessService.Create(c.UserContext(), user, &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *BusinessHandler) Update(c *fiber.Ctx) error {
	user, ok := identity.CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.BusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	b, err := h.businessService.Update(c.UserContext(), user, &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(b)
}
