package model

import (
	"time"

	"gorm.io/gorm"
)

// InstitutionType is the kind of institution.
type InstitutionType string

const (
	InstitutionTypeSchool  InstitutionType = "SCHOOL"
	InstitutionTypeCollege InstitutionType = "COLLEGE"
)

// EducationSystem represents a curriculum framework institutions and courses
// reference (e.g., a state board or a university system).
type EducationSystem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Institutions []Institution `gorm:"foreignKey:EducationSystemID" json:"institutions,omitempty"`
	Courses      []Course      `gorm:"foreignKey:EducationSystemID" json:"courses,omitempty"`
}

// Institution represents a school or college
type Institution struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Name              string          `gorm:"uniqueIndex;not null" json:"name"`
	Place             string          `gorm:"type:varchar(255)" json:"place"`
	Type              InstitutionType `gorm:"type:varchar(20);not null" json:"institution_type"`
	EducationSystemID uint            `gorm:"not null;index" json:"education_system_id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	EducationSystem EducationSystem             `gorm:"foreignKey:EducationSystemID" json:"education_system,omitempty"`
	DepartmentLinks []InstitutionDepartmentLink `gorm:"foreignKey:InstitutionID;constraint:OnDelete:CASCADE" json:"-"`
	CourseLinks     []InstitutionCourseLink     `gorm:"foreignKey:InstitutionID;constraint:OnDelete:CASCADE" json:"-"`
}
