package models

import (
	"time"

	"gorm.io/gorm"
)

type CaseStatus string

const (
	CaseStatusOpen   CaseStatus = "OPEN"
	CaseStatusClosed CaseStatus = "CLOSED"
)

// Case groups the correspondence exchanged over one administrative matter.
// CLOSED is only reachable through the completion cascade, never through a
// generic update.
type Case struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Code      string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Subject   string         `gorm:"type:varchar(255);not null" json:"subject"`
	Status    CaseStatus     `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	CreatorID uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator   User       `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Documents []Document `gorm:"foreignKey:CaseID" json:"documents,omitempty"`
}
