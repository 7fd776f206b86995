package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Memberships   []ProjectMember `gorm:"foreignKey:UserID" json:"-"`
	ProducedTasks []Task          `gorm:"foreignKey:ProducerID" json:"-"`
	AssignedTasks []Task          `gorm:"foreignKey:AssigneeID" json:"-"`
}
