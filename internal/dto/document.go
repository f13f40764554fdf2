package dto

import (
	"time"

	"github.com/jmcastellanos/doctrack-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

// DocumentTypeDTO represents a document type in API responses
type DocumentTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// DocumentDTO represents a document in API responses
type DocumentDTO struct {
	ID             uint64                `json:"id"`
	TrackingCode   string                `json:"tracking_code"`
	Subject        string                `json:"subject"`
	Body           string                `json:"body,omitempty"`
	Status         models.DocumentStatus `json:"status"`
	DocumentTypeID uint64                `json:"document_type_id"`
	OriginAreaID   *uint64               `json:"origin_area_id,omitempty"`
	CaseID         *uint64               `json:"case_id,omitempty"`
	CreatorID      uint64                `json:"creator_id"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	DocumentType   *DocumentTypeDTO      `json:"document_type,omitempty"`
	Creator        *UserDTO              `json:"creator,omitempty"`
	Assignments    []AssignmentDTO       `json:"assignments,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
	}
}

// ToDocumentTypeDTO converts a DocumentType model to DocumentTypeDTO
func ToDocumentTypeDTO(dt models.DocumentType) DocumentTypeDTO {
	return DocumentTypeDTO{
		ID:   dt.ID,
		Name: dt.Name,
	}
}

// ToDocumentDTO converts a Document model to DocumentDTO
func ToDocumentDTO(doc models.Document) DocumentDTO {
	out := DocumentDTO{
		ID:             doc.ID,
		TrackingCode:   doc.TrackingCode,
		Subject:        doc.Subject,
		Body:           doc.Body,
		Status:         doc.Status,
		DocumentTypeID: doc.DocumentTypeID,
		OriginAreaID:   doc.OriginAreaID,
		CaseID:         doc.CaseID,
		CreatorID:      doc.CreatorID,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}

	// Include relations only when preloaded
	if doc.DocumentType.ID != 0 {
		dt := ToDocumentTypeDTO(doc.DocumentType)
		out.DocumentType = &dt
	}
	if doc.Creator.ID != 0 {
		creator := ToUserDTO(doc.Creator)
		out.Creator = &creator
	}
	if len(doc.Assignments) > 0 {
		out.Assignments = make([]AssignmentDTO, len(doc.Assignments))
		for i, a := range doc.Assignments {
			out.Assignments[i] = ToAssignmentDTO(a)
		}
	}

	return out
}
