package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authenticated identity. Token issuance lives in a
// separate service; this API only stores the account row that profile and
// role records hang off.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Name         string         `gorm:"not null" json:"name"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON

	// Relationships
	Roles            []Role                `gorm:"many2many:user_roles" json:"roles,omitempty"`
	InstitutionLinks []UserInstitutionLink `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CommunityLinks   []UserCommunityLink   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserInstitutionLink scopes a role a user holds to one institution.
// The partial unique index closes the single-admin race: only one
// Institution-role row may exist per institution.
type UserInstitutionLink struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:uniq_user_institution_role" json:"user_id"`
	InstitutionID uint      `gorm:"not null;uniqueIndex:uniq_user_institution_role;uniqueIndex:uniq_institution_admin,where:role = 'Institution'" json:"institution_id"`
	Role          RoleName  `gorm:"type:varchar(30);not null;uniqueIndex:uniq_user_institution_role" json:"role"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Institution Institution `gorm:"foreignKey:InstitutionID;constraint:OnDelete:CASCADE" json:"institution,omitempty"`
}

// TableName specifies the table name for UserInstitutionLink
func (UserInstitutionLink) TableName() string {
	return "user_institution_links"
}

// UserCommunityLink scopes a role a user holds to one community. Mirrors
// UserInstitutionLink, including the one-admin-per-community partial index.
type UserCommunityLink struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uniq_user_community_role" json:"user_id"`
	CommunityID uint      `gorm:"not null;uniqueIndex:uniq_user_community_role;uniqueIndex:uniq_community_admin,where:role = 'Community'" json:"community_id"`
	Role        RoleName  `gorm:"type:varchar(30);not null;uniqueIndex:uniq_user_community_role" json:"role"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Community Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"community,omitempty"`
}

// TableName specifies the table name for UserCommunityLink
func (UserCommunityLink) TableName() string {
	return "user_community_links"
}
