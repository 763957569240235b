package models

import (
	"time"

	"github.com/google/uuid"
)

// Module is an ordered section of a course. The (course_id, order) pair is
// unique so concurrent creates with the same position are serialized by the
// database rather than by application checks.
type Module struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_module_course_order,priority:1" json:"course_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Order       int       `gorm:"not null;default:0;uniqueIndex:uq_module_course_order,priority:2" json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Units []Unit `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"units,omitempty"`
}
