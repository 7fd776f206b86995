package models

import (
	"time"
)

// Column is a named, ordered lane inside a project board. Position defines
// the display order among sibling columns; duplicates are not deduplicated.
type Column struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Tasks   []Task  `gorm:"foreignKey:ColumnID" json:"tasks,omitempty"`
}

// DefaultColumnNames are created for every new project, at positions 0-3.
var DefaultColumnNames = []string{"Backlog", "Doing", "Review", "Done"}
