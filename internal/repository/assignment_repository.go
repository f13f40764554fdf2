package repository

import (
	"gorm.io/gorm"

	"github.com/jmcastellanos/doctrack-api/internal/models"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Create creates a new assignment
func (r *GormAssignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

// FindByID finds an assignment by ID with optional preloading
func (r *GormAssignmentRepository) FindByID(id uint64, preload ...string) (*models.Assignment, error) {
	var assignment models.Assignment
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&assignment, id).Error; err != nil {
		return nil, err
	}

	return &assignment, nil
}

// ListByDocument lists all assignments of a document, newest first
func (r *GormAssignmentRepository) ListByDocument(documentID uint64) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.
		Where("document_id = ?", documentID).
		Order("assigned_at DESC").
		Preload("Assignee").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// Update updates an assignment
func (r *GormAssignmentRepository) Update(assignment *models.Assignment) error {
	return r.db.Save(assignment).Error
}

// CountActiveByDocument counts assignments of a document with active = true
func (r *GormAssignmentRepository) CountActiveByDocument(documentID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Assignment{}).
		Where("document_id = ? AND active = ?", documentID, true).
		Count(&count).Error
	return count, err
}

// ListPendingExtensions lists assignments where an extension was requested
// and has not been approved yet
func (r *GormAssignmentRepository) ListPendingExtensions() ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.
		Where("extension_requested_at IS NOT NULL AND extension_due_at IS NULL").
		Order("extension_requested_at ASC").
		Preload("Assignee").
		Preload("Document").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
