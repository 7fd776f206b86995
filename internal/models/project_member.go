package models

import "time"

type ProjectRole string

const (
	RoleOwner  ProjectRole = "owner"
	RoleAdmin  ProjectRole = "admin"
	RoleMember ProjectRole = "member"
)

// CanManage reports whether the role may mutate project contents
// (columns, tasks, member invitations).
func (r ProjectRole) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

// IsAssignable reports whether the role may be granted through an invite
// or a role update. The owner role is assigned once, at project creation.
func (r ProjectRole) IsAssignable() bool {
	return r == RoleAdmin || r == RoleMember
}

type ProjectMember struct {
	ProjectID uint64      `gorm:"primarykey" json:"project_id"`
	UserID    uint64      `gorm:"primarykey" json:"user_id"`
	Role      ProjectRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time   `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
