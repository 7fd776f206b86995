package models

import (
	"time"
)

// ProjectLog is an append-only audit record. Rows are never updated or
// deleted; UserID is nullable so the log stays intact whatever happens to
// the referenced user.
type ProjectLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID *uint64   `gorm:"index" json:"project_id"`
	TaskID    *uint64   `gorm:"index" json:"task_id"`
	UserID    *uint64   `json:"user_id"`
	Type      string    `gorm:"type:varchar(100);not null" json:"type"`
	Info      string    `gorm:"type:text" json:"info"`
	CreatedAt time.Time `json:"created_at"`
}
