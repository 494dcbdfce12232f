package model

import (
	"time"

	"gorm.io/gorm"
)

// Department represents an academic department. The link slices are only
// populated by the scope resolver: for Faculty and Student callers each row
// carries the caller's own links as "handled by me" markers, never a filter.
type Department struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	FacultyLinks []FacultyDepartmentLink `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"handled_by_faculty,omitempty"`
	StudentLinks []StudentDepartmentLink `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"student_links,omitempty"`
}
