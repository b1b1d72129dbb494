package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker/internal/models"
)

// AddIndexes adds the composite indexes the list queries sort and filter on.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		name    string
		columns string
	}{
		{&models.Project{}, "idx_projects_owner_deadline", "owner_id, deadline"},
		{&models.Project{}, "idx_projects_owner_status", "owner_id, status"},
		{&models.Person{}, "idx_persons_owner_name", "owner_id, last_name, first_name"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			slog.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", stmt.Schema.Table, "columns", idx.columns)
	}

	return nil
}
