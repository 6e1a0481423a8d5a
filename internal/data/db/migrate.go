package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Asset{},
		&types.Sequence{},
		&types.Shot{},
		&types.Department{},
		&types.Task{},
		&types.SetVariant{},
		&types.Variant{},
		&types.VariantVersion{},
		&types.File{},
	)
}

// EnsurePinTriggers installs the pin-exclusivity triggers on variant_versions.
// The rule is a database-level invariant, not an application convention. Any
// write path that sets pinned = 1, including raw SQL bypassing the repos,
// clears pinned on every sibling row in the same scope (same variant_id, or
// same department_id) within the same transaction.
func EnsurePinTriggers(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TRIGGER IF NOT EXISTS variant_versions_single_pin_after_insert
		AFTER INSERT ON variant_versions
		FOR EACH ROW
		WHEN NEW.pinned = 1
		BEGIN
			UPDATE variant_versions SET pinned = 0
			WHERE id != NEW.id
			  AND ((NEW.variant_id IS NOT NULL AND variant_id = NEW.variant_id)
			    OR (NEW.department_id IS NOT NULL AND department_id = NEW.department_id));
		END;
	`).Error; err != nil {
		return fmt.Errorf("create insert pin trigger: %w", err)
	}

	if err := db.Exec(`
		CREATE TRIGGER IF NOT EXISTS variant_versions_single_pin_before_update
		BEFORE UPDATE ON variant_versions
		FOR EACH ROW
		WHEN NEW.pinned = 1 AND OLD.pinned != 1
		BEGIN
			UPDATE variant_versions SET pinned = 0
			WHERE id != NEW.id
			  AND ((NEW.variant_id IS NOT NULL AND variant_id = NEW.variant_id)
			    OR (NEW.department_id IS NOT NULL AND department_id = NEW.department_id));
		END;
	`).Error; err != nil {
		return fmt.Errorf("create update pin trigger: %w", err)
	}

	return nil
}

// EnsureLookupIndexes adds the scoped-name lookup indexes the resolver leans
// on. Names are unique within their scope, not globally.
func EnsureLookupIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_shots_sequence_name ON shots(sequence_id, name);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_department_name ON tasks(department_id, name);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_set_variants_department_name ON set_variants(department_id, name);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_variants_set_variant_name ON variants(set_variant_id, name);`,
		`CREATE INDEX IF NOT EXISTS idx_variant_versions_variant ON variant_versions(variant_id, version);`,
		`CREATE INDEX IF NOT EXISTS idx_variant_versions_department ON variant_versions(department_id, version);`,
		`CREATE INDEX IF NOT EXISTS idx_files_task_version ON files(task_id, version);`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure lookup index: %w", err)
		}
	}
	return nil
}

// Initialize runs the full first-access setup: tables, triggers, indexes.
func Initialize(db *gorm.DB) error {
	if err := AutoMigrateAll(db); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := EnsurePinTriggers(db); err != nil {
		return err
	}
	return EnsureLookupIndexes(db)
}
