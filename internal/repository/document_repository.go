package repository

import (
	"gorm.io/gorm"

	"github.com/jmcastellanos/doctrack-api/internal/models"
)

// GormDocumentRepository is a GORM implementation of DocumentRepository
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create creates a new document
func (r *GormDocumentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

// FindByID finds a document by ID with optional preloading
func (r *GormDocumentRepository) FindByID(id uint64, preload ...string) (*models.Document, error) {
	var doc models.Document
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&doc, id).Error; err != nil {
		return nil, err
	}

	return &doc, nil
}

// List retrieves documents with filtering and pagination
func (r *GormDocumentRepository) List(filter DocumentFilter) ([]models.Document, int64, error) {
	var docs []models.Document

	query := r.db.Model(&models.Document{})

	if filter.Status != nil {
		query = query.Where("documents.status = ?", *filter.Status)
	}
	if filter.CaseID != nil {
		query = query.Where("documents.case_id = ?", *filter.CaseID)
	}
	if filter.DocumentTypeID != nil {
		query = query.Where("documents.document_type_id = ?", *filter.DocumentTypeID)
	}
	if filter.Subject != "" {
		query = query.Where("documents.subject LIKE ?", "%"+filter.Subject+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("documents.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("DocumentType").Preload("Creator").Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// Update updates a document
func (r *GormDocumentRepository) Update(doc *models.Document) error {
	return r.db.Save(doc).Error
}

// UpdateStatus sets only the status column of a document
func (r *GormDocumentRepository) UpdateStatus(id uint64, status models.DocumentStatus) error {
	return r.db.Model(&models.Document{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete soft deletes a document together with its assignments
func (r *GormDocumentRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Document{}, id).Error
	})
}
