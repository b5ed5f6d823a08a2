package handlers

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) UpdateRoles(c *fiber.Ctx) error {
	actorID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validation("invalid user id"))
	}

	var req dto.UpdateRolesRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.userService.UpdateRoles(c.UserContext(), actorID, userID, req.Roles)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	actorID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validation("invalid user id"))
	}

	var req dto.UpdateActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.IsActive == nil {
		return apperr.Respond(c, apperr.Validation("isActive is required"))
	}

	resp, err := h.userService.SetActive(c.UserContext(), actorID, userID, *req.IsActive)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(resp)
}
