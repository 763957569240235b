package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/niley1nov/LMS/internal/dto"
	"github.com/niley1nov/LMS/internal/middleware"
	"github.com/niley1nov/LMS/internal/services"
)

// ModuleHandler serves module and unit endpoints nested under courses and
// modules respectively.
type ModuleHandler struct {
	courseService *services.CourseService
}

func NewModuleHandler(courseService *services.CourseService) *ModuleHandler {
	return &ModuleHandler{courseService: courseService}
}

func (h *ModuleHandler) ListByCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return badRequest(c, "Invalid course id")
	}

	modules, err := h.courseService.ListModules(c.UserContext(), courseID, user)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(modules)
}

func (h *ModuleHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return badRequest(c, "Invalid course id")
	}

	var req dto.CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := dto.Validate(&req); fields != nil {
		return invalidFields(c, fields)
	}

	module, err := h.courseService.CreateModule(c.UserContext(), courseID, &req, user)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(module)
}

func (h *ModuleHandler) ListUnits(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}
	moduleID, err := parseUintParam(c, "module_id")
	if err != nil {
		return badRequest(c, "Invalid module id")
	}

	units, err := h.courseService.ListUnits(c.UserContext(), moduleID, user)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(units)
}

func (h *ModuleHandler) CreateUnit(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}
	moduleID, err := parseUintParam(c, "module_id")
	if err != nil {
		return badRequest(c, "Invalid module id")
	}

	var req dto.CreateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := dto.Validate(&req); fields != nil {
		return invalidFields(c, fields)
	}

	unit, err := h.courseService.CreateUnit(c.UserContext(), moduleID, &req, user)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(unit)
}
