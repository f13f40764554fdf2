package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/jmcastellanos/doctrack-api/internal/duedate"
)

// Assignment is one delegation of a document to one user with a tracked
// due date. The extension fields form a request/approve protocol:
// ExtensionRequestedAt and ExtensionRequestedDays are set together when an
// extension is asked for, and ExtensionDueAt is only set once an extension
// has been approved. ExtensionRequestedAt is kept after approval as the
// audit trail of when the request was made.
type Assignment struct {
	ID                     uint64         `gorm:"primarykey" json:"id"`
	DocumentID             uint64         `gorm:"not null;index" json:"document_id"`
	AssigneeID             uint64         `gorm:"not null;index" json:"assignee_id"`
	CreatorID              uint64         `gorm:"not null" json:"creator_id"`
	ModifierID             *uint64        `json:"modifier_id"`
	AssignedAt             time.Time      `gorm:"not null" json:"assigned_at"`
	ResponseDeadlineDays   int            `gorm:"not null" json:"response_deadline_days"`
	DayPolicy              duedate.Policy `gorm:"type:varchar(20);not null;default:'BUSINESS'" json:"day_policy"`
	DueAt                  time.Time      `gorm:"not null" json:"due_at"`
	ExtensionRequestedAt   *time.Time     `json:"extension_requested_at"`
	ExtensionRequestedDays *int           `json:"extension_requested_days"`
	ExtensionDueAt         *time.Time     `json:"extension_due_at"`
	RespondedAt            *time.Time     `json:"responded_at"`
	Notes                  string         `gorm:"type:text" json:"notes"`
	Active                 bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
	Assignee User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Creator  User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

// EffectiveDueAt is the deadline currently in force: the approved extension
// due date when one exists, the original due date otherwise.
func (a *Assignment) EffectiveDueAt() time.Time {
	if a.ExtensionDueAt != nil {
		return *a.ExtensionDueAt
	}
	return a.DueAt
}

// ExtensionPending reports whether an extension has been requested but not
// yet approved.
func (a *Assignment) ExtensionPending() bool {
	return a.ExtensionRequestedAt != nil && a.ExtensionDueAt == nil
}
