package model

import (
	"time"

	"gorm.io/gorm"
)

// Student is the learner profile attached one-to-one to a user. Created only
// through the student role grant, inside the same transaction as the role.
type Student struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	RollNumber      string         `gorm:"type:varchar(100);not null" json:"roll_number"`
	ClassOrSemester string         `gorm:"type:varchar(50);not null" json:"class_or_semester"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User            User                    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	DepartmentLinks []StudentDepartmentLink `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"department_links,omitempty"`
}

// StudentDepartmentLink ties a student to a department they belong to.
type StudentDepartmentLink struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;uniqueIndex:uniq_student_department" json:"student_id"`
	DepartmentID uint      `gorm:"not null;uniqueIndex:uniq_student_department" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for StudentDepartmentLink
func (StudentDepartmentLink) TableName() string {
	return "student_department_links"
}
