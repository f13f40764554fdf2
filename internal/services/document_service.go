package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jmcastellanos/doctrack-api/internal/models"
	"github.com/jmcastellanos/doctrack-api/internal/repository"
	"github.com/jmcastellanos/doctrack-api/internal/utils"
)

var (
	ErrSubjectRequired = errors.New("subject is required")
)

// DocumentService handles document business logic
type DocumentService struct {
	documentRepo repository.DocumentRepository
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentRepo repository.DocumentRepository) *DocumentService {
	return &DocumentService{documentRepo: documentRepo}
}

// CreateDocumentInput represents input for registering a document
type CreateDocumentInput struct {
	Subject        string
	Body           string
	DocumentTypeID uint64
	OriginAreaID   *uint64
	CaseID         *uint64
	CreatorID      uint64
}

// UpdateDocumentInput represents input for updating a document. Status is
// deliberately absent: FINISHED is only reachable through the completion
// gate.
type UpdateDocumentInput struct {
	Subject        *string
	Body           *string
	DocumentTypeID *uint64
	OriginAreaID   *uint64
	CaseID         *uint64
}

// ListDocumentsInput represents filters for listing documents
type ListDocumentsInput struct {
	Status         *models.DocumentStatus
	CaseID         *uint64
	DocumentTypeID *uint64
	Subject        string
	Page           int
	PageSize       int
}

// ListDocuments retrieves documents matching the filters
func (s *DocumentService) ListDocuments(input ListDocumentsInput) ([]models.Document, int64, error) {
	docs, total, err := s.documentRepo.List(repository.DocumentFilter{
		Status:         input.Status,
		CaseID:         input.CaseID,
		DocumentTypeID: input.DocumentTypeID,
		Subject:        input.Subject,
		Page:           input.Page,
		PageSize:       input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, total, nil
}

// GetDocument returns a document with related data
func (s *DocumentService) GetDocument(documentID uint64) (*models.Document, error) {
	doc, err := s.documentRepo.FindByID(documentID,
		"DocumentType", "OriginArea", "Case", "Creator", "Assignments", "Assignments.Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return doc, nil
}

// CreateDocument registers a new document with a fresh tracking code
func (s *DocumentService) CreateDocument(input CreateDocumentInput) (*models.Document, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, ErrSubjectRequired
	}

	doc := &models.Document{
		TrackingCode:   utils.GenerateTrackingCode(),
		Subject:        input.Subject,
		Body:           input.Body,
		Status:         models.DocumentStatusInProgress,
		DocumentTypeID: input.DocumentTypeID,
		OriginAreaID:   input.OriginAreaID,
		CaseID:         input.CaseID,
		CreatorID:      input.CreatorID,
	}

	if err := s.documentRepo.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return s.documentRepo.FindByID(doc.ID, "DocumentType", "Creator")
}

// UpdateDocument updates a document's editable fields; the status field is
// never touched here
func (s *DocumentService) UpdateDocument(documentID uint64, input UpdateDocumentInput) (*models.Document, error) {
	doc, err := s.documentRepo.FindByID(documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	if input.Subject != nil {
		if strings.TrimSpace(*input.Subject) == "" {
			return nil, ErrSubjectRequired
		}
		doc.Subject = *input.Subject
	}
	if input.Body != nil {
		doc.Body = *input.Body
	}
	if input.DocumentTypeID != nil {
		doc.DocumentTypeID = *input.DocumentTypeID
	}
	if input.OriginAreaID != nil {
		doc.OriginAreaID = input.OriginAreaID
	}
	if input.CaseID != nil {
		doc.CaseID = input.CaseID
	}

	if err := s.documentRepo.Update(doc); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	return s.documentRepo.FindByID(doc.ID, "DocumentType", "Creator")
}

// DeleteDocument deletes a document together with its assignments
func (s *DocumentService) DeleteDocument(documentID uint64) error {
	if _, err := s.documentRepo.FindByID(documentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to find document: %w", err)
	}

	if err := s.documentRepo.Delete(documentID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}
