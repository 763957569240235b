package models

import "time"

type UnitType string

const (
	UnitMaterial     UnitType = "material"
	UnitAssignment   UnitType = "assignment"
	UnitQuiz         UnitType = "quiz"
	UnitVideo        UnitType = "video"
	UnitDiscussion   UnitType = "discussion"
	UnitExternalLink UnitType = "external_link"
)

func (t UnitType) Valid() bool {
	switch t {
	case UnitMaterial, UnitAssignment, UnitQuiz, UnitVideo, UnitDiscussion, UnitExternalLink:
		return true
	}
	return false
}

// Unit is a piece of content inside a module. The (module_id, order) pair is
// unique within the module.
type Unit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ModuleID  uint      `gorm:"not null;uniqueIndex:uq_unit_module_order,priority:1" json:"module_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Type      UnitType  `gorm:"column:type;size:30;not null" json:"type"`
	Content   string    `gorm:"type:text" json:"content,omitempty"`
	Order     int       `gorm:"not null;default:0;uniqueIndex:uq_unit_module_order,priority:2" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
