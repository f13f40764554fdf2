package models

import (
	"time"

	"gorm.io/gorm"
)

type Position struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	AreaID    *uint64        `json:"area_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Area *Area `gorm:"foreignKey:AreaID" json:"area,omitempty"`
}
