package models

import (
	"time"

	"gorm.io/gorm"
)

type Area struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Positions []Position `gorm:"foreignKey:AreaID" json:"positions,omitempty"`
	Users     []User     `gorm:"foreignKey:AreaID" json:"users,omitempty"`
}
