package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/niley1nov/LMS/internal/dto"
	"github.com/niley1nov/LMS/internal/middleware"
	"github.com/niley1nov/LMS/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the user behind the session cookie.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}
	return c.JSON(user)
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	user, err := h.userService.GetUser(c.UserContext(), id, actor)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := dto.Validate(&req); fields != nil {
		return invalidFields(c, fields)
	}

	user, err := h.userService.UpdateUser(c.UserContext(), id, &req, actor)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}

	offset, limit := pagination(c)
	users, err := h.userService.ListUsers(c.UserContext(), actor, offset, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	user, err := h.userService.DeleteUser(c.UserContext(), id, actor)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	return uint(v), err
}

// pagination reads skip/limit query params with the same defaults the list
// endpoints document.
func pagination(c *fiber.Ctx) (offset, limit int) {
	offset = c.QueryInt("skip", 0)
	limit = c.QueryInt("limit", 100)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return offset, limit
}
