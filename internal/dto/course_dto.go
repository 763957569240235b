package dto

import (
	"github.com/google/uuid"
	"github.com/niley1nov/LMS/internal/models"
)

type CreateCourseRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type EnrollRequest struct {
	UserID   uint              `json:"user_id" validate:"required"`
	CourseID uuid.UUID         `json:"course_id" validate:"required"`
	Role     models.CourseRole `json:"role" validate:"required,oneof=teacher student"`
}

type CreateModuleRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Order       int    `json:"order" validate:"gte=0"`
}

type CreateUnitRequest struct {
	Title   string          `json:"title" validate:"required,max=255"`
	Type    models.UnitType `json:"type" validate:"required,oneof=material assignment quiz video discussion external_link"`
	Content string          `json:"content"`
	Order   int             `json:"order" validate:"gte=0"`
}

// CourseForUser is a course as seen by one enrolled user: it carries only the
// caller's own role, never other users' enrollments.
type CourseForUser struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Role        models.CourseRole `json:"role"`
	Modules     []models.Module   `json:"modules"`
}
