package model

import (
	"time"
)

// Link tables between entities. Pair uniqueness is enforced at the storage
// layer; duplicate creation surfaces as a conflict, never a crash.

// CourseDepartmentLink ties a course to the department that owns it.
// Created as a required side effect of course creation.
type CourseDepartmentLink struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CourseID     uint      `gorm:"not null;uniqueIndex:uniq_course_department" json:"course_id"`
	DepartmentID uint      `gorm:"not null;uniqueIndex:uniq_course_department" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for CourseDepartmentLink
func (CourseDepartmentLink) TableName() string {
	return "course_department_links"
}

// InstitutionDepartmentLink ties an institution to a department it offers.
type InstitutionDepartmentLink struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InstitutionID uint      `gorm:"not null;uniqueIndex:uniq_institution_department" json:"institution_id"`
	DepartmentID  uint      `gorm:"not null;uniqueIndex:uniq_institution_department" json:"department_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for InstitutionDepartmentLink
func (InstitutionDepartmentLink) TableName() string {
	return "institution_department_links"
}

// InstitutionCourseLink ties an institution to a course it offers.
type InstitutionCourseLink struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InstitutionID uint      `gorm:"not null;uniqueIndex:uniq_institution_course" json:"institution_id"`
	CourseID      uint      `gorm:"not null;uniqueIndex:uniq_institution_course" json:"course_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for InstitutionCourseLink
func (InstitutionCourseLink) TableName() string {
	return "institution_course_links"
}
