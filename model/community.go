package model

import (
	"time"

	"gorm.io/gorm"
)

// Community represents a member community outside the institution hierarchy
type Community struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"uniqueIndex;not null" json:"name"`
	Level         string         `gorm:"type:varchar(100)" json:"level"`
	CommunityType string         `gorm:"type:varchar(100)" json:"community_type"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	UserLinks []UserCommunityLink `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"-"`
}
