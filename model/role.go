package model

import (
	"time"
)

// RoleName is the closed set of role names known to the system.
type RoleName string

const (
	RoleAdmin           RoleName = "Admin"
	RoleInstitution     RoleName = "Institution"
	RoleCommunity       RoleName = "Community"
	RoleFaculty         RoleName = "Faculty"
	RoleStudent         RoleName = "Student"
	RoleCommunityMember RoleName = "CommunityMember"
)

// AllRoles returns every role name, in seeding order.
func AllRoles() []RoleName {
	return []RoleName{
		RoleAdmin,
		RoleInstitution,
		RoleCommunity,
		RoleFaculty,
		RoleStudent,
		RoleCommunityMember,
	}
}

// Valid reports whether the name is one of the known roles.
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstitution, RoleCommunity, RoleFaculty, RoleStudent, RoleCommunityMember:
		return true
	}
	return false
}

// Role is the persisted row backing a RoleName. The six rows are seeded at
// startup and never created through the API.
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      RoleName  `gorm:"type:varchar(30);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Role
func (Role) TableName() string {
	return "roles"
}
