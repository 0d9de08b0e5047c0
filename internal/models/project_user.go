package models

import "time"

// MemberRole represents a user's role within a project.
type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
	RoleViewer MemberRole = "viewer"
)

// ProjectUser is the project membership row. The owner row is created together
// with the project and is neither removable nor demotable.
type ProjectUser struct {
	ProjectID string     `gorm:"type:uuid;primaryKey" json:"project_id"`
	UserID    string     `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      MemberRole `gorm:"not null;default:'member'" json:"role"`
	AddedAt   time.Time  `gorm:"autoCreateTime" json:"added_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
