package kanban

import (
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	service *TaskService
}

func NewTaskHandler(service *TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	board, err := h.service.List(c.UserContext(), user.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(board)
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	task, err := h.service.Create(c.UserContext(), user.ID, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := modules.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadBody(c)
	}
	task, err := h.service.Update(c.UserContext(), user.ID, id, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(task)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, err := modules.ParamID(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	if err := h.service.Delete(c.UserContext(), user.ID, id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Task deleted"})
}

func (h *TaskHandler) CompleteDay(c *fiber.Ctx) error {
	user, err := modules.Caller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	n, err := h.service.CompleteDay(c.UserContext(), user)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(CompleteDayResponse{Message: "Done tasks cleared", Cleared: n})
}
