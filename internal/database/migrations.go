package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate
// creates. Only runs against PostgreSQL; MySQL deployments rely on the
// AutoMigrate tags.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Assignment indexes driving the completion gate and the
		// pending-extension listing
		{"assignments", "idx_assignments_document_active", "document_id, active"},
		{"assignments", "idx_assignments_extension_pending", "extension_requested_at, extension_due_at"},
		{"assignments", "idx_assignments_due_at", "due_at"},

		// Document indexes for filtering
		{"documents", "idx_documents_case_id", "case_id"},
		{"documents", "idx_documents_status", "status"},
		{"documents", "idx_documents_document_type_id", "document_type_id"},
		{"documents", "idx_documents_created_at", "created_at"},

		// Case lookups by code
		{"cases", "idx_cases_status", "status"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.WithField("index", idx.name).Info("Created index")
	}

	return nil
}
