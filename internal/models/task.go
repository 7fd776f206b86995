package models

import (
	"time"
)

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	ColumnID    uint64     `gorm:"not null;index" json:"column_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	// Deadline is a calendar date; the time component is ignored.
	Deadline   *time.Time `gorm:"type:date" json:"deadline"`
	AssigneeID *uint64    `gorm:"index" json:"assignee_id"`
	// ProducerID is the creator of the task and never changes.
	ProducerID uint64    `gorm:"not null" json:"producer_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Column   Column `gorm:"foreignKey:ColumnID" json:"column,omitempty"`
	Assignee *User  `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Producer User   `gorm:"foreignKey:ProducerID" json:"producer,omitempty"`
}
