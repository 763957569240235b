package models

import "time"

// User is a local account backed by a Google identity. Rows are created on
// first successful sign-in and updated in place when Google reports a new
// email or display name.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GoogleSub string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:255" json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Enrollments []Enrollment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
