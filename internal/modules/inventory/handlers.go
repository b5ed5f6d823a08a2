package inventory

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service *ProductService
}

func NewProductHandler(service *ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext(), ListFilter{
		Category: c.Query("category"),
		LowStock: c.QueryBool("lowStock", false),
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := modules.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	p, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	p, err := h.service.Create(c.UserContext(), user, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := modules.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	p, err := h.service.Update(c.UserContext(), user, id, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
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
	return c.JSON(dto.MessageResponse{Message: "Product deleted"})
}
