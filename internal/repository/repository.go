package repository

import (
	"github.com/jmcastellanos/doctrack-api/internal/models"
)

// AssignmentRepository defines the interface for assignment data access
type AssignmentRepository interface {
	// Create creates a new assignment
	Create(assignment *models.Assignment) error

	// FindByID finds an assignment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Assignment, error)

	// ListByDocument lists all assignments of a document
	ListByDocument(documentID uint64) ([]models.Assignment, error)

	// Update updates an assignment
	Update(assignment *models.Assignment) error

	// CountActiveByDocument counts assignments of a document that still
	// represent outstanding work
	CountActiveByDocument(documentID uint64) (int64, error)

	// ListPendingExtensions lists assignments whose extension has been
	// requested but not yet approved
	ListPendingExtensions() ([]models.Assignment, error)
}

// DocumentFilter holds filtering options for listing documents
type DocumentFilter struct {
	Status         *models.DocumentStatus
	CaseID         *uint64
	DocumentTypeID *uint64
	Subject        string
	Page           int
	PageSize       int
}

// DocumentRepository defines the interface for document data access
type DocumentRepository interface {
	// Create creates a new document
	Create(doc *models.Document) error

	// FindByID finds a document by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Document, error)

	// List retrieves documents with filtering and pagination
	List(filter DocumentFilter) ([]models.Document, int64, error)

	// Update updates a document
	Update(doc *models.Document) error

	// UpdateStatus sets only the status column of a document
	UpdateStatus(id uint64, status models.DocumentStatus) error

	// Delete soft deletes a document and its assignments
	Delete(id uint64) error
}

// CaseFilter holds filtering options for listing cases
type CaseFilter struct {
	Status   *models.CaseStatus
	Subject  string
	Page     int
	PageSize int
}

// CaseRepository defines the interface for case data access
type CaseRepository interface {
	// Create creates a new case
	Create(c *models.Case) error

	// FindByID finds a case by ID
	FindByID(id uint64, preload ...string) (*models.Case, error)

	// List retrieves cases with filtering and pagination
	List(filter CaseFilter) ([]models.Case, int64, error)

	// Update updates a case
	Update(c *models.Case) error

	// UpdateStatus sets only the status column of a case
	UpdateStatus(id uint64, status models.CaseStatus) error

	// Delete soft deletes a case
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
