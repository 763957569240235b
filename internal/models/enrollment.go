package models

import (
	"time"

	"github.com/google/uuid"
)

type CourseRole string

const (
	RoleTeacher CourseRole = "teacher"
	RoleStudent CourseRole = "student"
)

func (r CourseRole) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// Enrollment links a user to a course with a role. The composite primary key
// guarantees at most one row per (user, course) pair; a duplicate enroll
// attempt fails at the storage layer instead of upserting.
type Enrollment struct {
	UserID    uint       `gorm:"primaryKey" json:"user_id"`
	CourseID  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"course_id"`
	Role      CourseRole `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time  `json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (Enrollment) TableName() string {
	return "user_courses"
}
