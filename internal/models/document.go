package models

import (
	"time"

	"gorm.io/gorm"
)

type DocumentStatus string

const (
	DocumentStatusInProgress DocumentStatus = "IN_PROGRESS"
	DocumentStatusFinished   DocumentStatus = "FINISHED"
)

// Document is the aggregate root for assignments. FINISHED is terminal and
// only reachable through the completion gate; the generic update endpoint
// must never set it.
type Document struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	TrackingCode   string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"tracking_code"`
	Subject        string         `gorm:"type:varchar(255);not null" json:"subject"`
	Body           string         `gorm:"type:text" json:"body"`
	Status         DocumentStatus `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'" json:"status"`
	DocumentTypeID uint64         `gorm:"not null" json:"document_type_id"`
	OriginAreaID   *uint64        `json:"origin_area_id"`
	CaseID         *uint64        `json:"case_id"`
	CreatorID      uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	DocumentType DocumentType `gorm:"foreignKey:DocumentTypeID" json:"document_type,omitempty"`
	OriginArea   *Area        `gorm:"foreignKey:OriginAreaID" json:"origin_area,omitempty"`
	Case         *Case        `gorm:"foreignKey:CaseID" json:"case,omitempty"`
	Creator      User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignments  []Assignment `gorm:"foreignKey:DocumentID" json:"assignments,omitempty"`
}
