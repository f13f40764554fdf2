package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string         `gorm:"type:varchar(255)" json:"full_name"`
	PositionID   *uint64        `json:"position_id"`
	AreaID       *uint64        `json:"area_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Position    *Position    `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	Area        *Area        `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:AssigneeID" json:"-"`
}
