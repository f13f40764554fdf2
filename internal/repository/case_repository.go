package repository

import (
	"gorm.io/gorm"

	"github.com/jmcastellanos/doctrack-api/internal/models"
)

// GormCaseRepository is a GORM implementation of CaseRepository
type GormCaseRepository struct {
	db *gorm.DB
}

// NewCaseRepository creates a new CaseRepository
func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &GormCaseRepository{db: db}
}

// Create creates a new case
func (r *GormCaseRepository) Create(c *models.Case) error {
	return r.db.Create(c).Error
}

// FindByID finds a case by ID with optional preloading
func (r *GormCaseRepository) FindByID(id uint64, preload ...string) (*models.Case, error) {
	var cs models.Case
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&cs, id).Error; err != nil {
		return nil, err
	}

	return &cs, nil
}

// List retrieves cases with filtering and pagination
func (r *GormCaseRepository) List(filter CaseFilter) ([]models.Case, int64, error) {
	var cases []models.Case

	query := r.db.Model(&models.Case{})

	if filter.Status != nil {
		query = query.Where("cases.status = ?", *filter.Status)
	}
	if filter.Subject != "" {
		query = query.Where("cases.subject LIKE ?", "%"+filter.Subject+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("cases.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Creator").Find(&cases).Error; err != nil {
		return nil, 0, err
	}

	return cases, total, nil
}

// Update updates a case
func (r *GormCaseRepository) Update(c *models.Case) error {
	return r.db.Save(c).Error
}

// UpdateStatus sets only the status column of a case
func (r *GormCaseRepository) UpdateStatus(id uint64, status models.CaseStatus) error {
	return r.db.Model(&models.Case{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete soft deletes a case
func (r *GormCaseRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Case{}, id).Error
}
