package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/niley1nov/LMS/internal/dto"
	"github.com/niley1nov/LMS/internal/middleware"
	"github.com/niley1nov/LMS/internal/services"
)

type CourseHandler struct {
	courseService *services.CourseService
}

func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// List returns the caller's enrolled courses with their role in each.
func (h *CourseHandler) List(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}

	offset, limit := pagination(c)
	courses, err := h.courseService.ListCoursesForUser(c.UserContext(), user, offset, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(courses)
}

// Create makes a course and enrolls the creator as its teacher.
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := dto.Validate(&req); fields != nil {
		return invalidFields(c, fields)
	}

	course, err := h.courseService.CreateCourse(c.UserContext(), &req, user)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func (h *CourseHandler) GetByID(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid course id")
	}

	course, err := h.courseService.GetCourseForUser(c.UserContext(), courseID, user)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(course)
}

// Enroll adds a user to a course with a role.
func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorizedSession(c)
	}

	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if fields := dto.Validate(&req); fields != nil {
		return invalidFields(c, fields)
	}

	enrollment, err := h.courseService.Enroll(c.UserContext(), &req, actor)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}
