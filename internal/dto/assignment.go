package dto

import (
	"time"

	"github.com/jmcastellanos/doctrack-api/internal/duedate"
	"github.com/jmcastellanos/doctrack-api/internal/models"
)

// AssignmentDTO represents an assignment in API responses. EffectiveDueAt
// is the deadline currently in force (the approved extension when present).
type AssignmentDTO struct {
	ID                     uint64         `json:"id"`
	DocumentID             uint64         `json:"document_id"`
	AssigneeID             uint64         `json:"assignee_id"`
	CreatorID              uint64         `json:"creator_id"`
	AssignedAt             time.Time      `json:"assigned_at"`
	ResponseDeadlineDays   int            `json:"response_deadline_days"`
	DayPolicy              duedate.Policy `json:"day_policy"`
	DueAt                  time.Time      `json:"due_at"`
	EffectiveDueAt         time.Time      `json:"effective_due_at"`
	ExtensionRequestedAt   *time.Time     `json:"extension_requested_at,omitempty"`
	ExtensionRequestedDays *int           `json:"extension_requested_days,omitempty"`
	ExtensionDueAt         *time.Time     `json:"extension_due_at,omitempty"`
	RespondedAt            *time.Time     `json:"responded_at,omitempty"`
	Notes                  string         `json:"notes,omitempty"`
	Active                 bool           `json:"active"`
	Assignee               *UserDTO       `json:"assignee,omitempty"`
}

// ToAssignmentDTO converts an Assignment model to AssignmentDTO
func ToAssignmentDTO(a models.Assignment) AssignmentDTO {
	out := AssignmentDTO{
		ID:                     a.ID,
		DocumentID:             a.DocumentID,
		AssigneeID:             a.AssigneeID,
		CreatorID:              a.CreatorID,
		AssignedAt:             a.AssignedAt,
		ResponseDeadlineDays:   a.ResponseDeadlineDays,
		DayPolicy:              a.DayPolicy,
		DueAt:                  a.DueAt,
		EffectiveDueAt:         a.EffectiveDueAt(),
		ExtensionRequestedAt:   a.ExtensionRequestedAt,
		ExtensionRequestedDays: a.ExtensionRequestedDays,
		ExtensionDueAt:         a.ExtensionDueAt,
		RespondedAt:            a.RespondedAt,
		Notes:                  a.Notes,
		Active:                 a.Active,
	}

	if a.Assignee.ID != 0 {
		assignee := ToUserDTO(a.Assignee)
		out.Assignee = &assignee
	}

	return out
}

// ToAssignmentDTOs converts a slice of assignments
func ToAssignmentDTOs(assignments []models.Assignment) []AssignmentDTO {
	out := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		out[i] = ToAssignmentDTO(a)
	}
	return out
}
