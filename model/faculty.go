package model

import (
	"time"

	"gorm.io/gorm"
)

// Faculty is the teaching profile attached one-to-one to a user. Created only
// through the faculty role grant, inside the same transaction as the role.
type Faculty struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	MemberID  string         `gorm:"type:varchar(100);not null" json:"member_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User            User                    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	DepartmentLinks []FacultyDepartmentLink `gorm:"foreignKey:FacultyID;constraint:OnDelete:CASCADE" json:"department_links,omitempty"`
	CourseLinks     []CourseFacultyLink     `gorm:"foreignKey:FacultyID;constraint:OnDelete:CASCADE" json:"-"`
}

// FacultyDepartmentLink ties a faculty member to a department they handle.
type FacultyDepartmentLink struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FacultyID    uint      `gorm:"not null;uniqueIndex:uniq_faculty_department" json:"faculty_id"`
	DepartmentID uint      `gorm:"not null;uniqueIndex:uniq_faculty_department" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for FacultyDepartmentLink
func (FacultyDepartmentLink) TableName() string {
	return "faculty_department_links"
}

// CourseFacultyLink ties a course to a faculty member teaching it.
type CourseFacultyLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:uniq_course_faculty" json:"course_id"`
	FacultyID uint      `gorm:"not null;uniqueIndex:uniq_course_faculty" json:"faculty_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for CourseFacultyLink
func (CourseFacultyLink) TableName() string {
	return "course_faculty_links"
}
