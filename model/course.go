package model

import (
	"time"

	"gorm.io/gorm"
)

// Course represents an academic program offered under an education system.
// Name and code are each natural keys; duplicates of either are conflicts.
type Course struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
	Name              string         `gorm:"uniqueIndex;not null" json:"name"`
	Code              string         `gorm:"uniqueIndex;not null" json:"code"`
	EducationSystemID uint           `gorm:"not null;index" json:"education_system_id"`
	ClassOrSemester   string         `gorm:"type:varchar(50);not null" json:"class_or_semester"`

	// Relationships
	EducationSystem EducationSystem        `gorm:"foreignKey:EducationSystemID" json:"education_system,omitempty"`
	Modules         []Module               `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"modules,omitempty"`
	DepartmentLinks []CourseDepartmentLink `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"department_links,omitempty"`
	FacultyLinks    []CourseFacultyLink    `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"handled_by_faculty,omitempty"`
}

// Module represents a unit of study within a course. ModuleNumber gives the
// total order within the course; the composite index keeps it unambiguous.
type Module struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	CourseID     uint           `gorm:"not null;uniqueIndex:uniq_course_module_number" json:"course_id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	ModuleNumber int            `gorm:"not null;uniqueIndex:uniq_course_module_number" json:"module_number"`

	// Relationships
	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}
