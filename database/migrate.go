package database

import (
	"fmt"

	"salesproject-backend/models"

	"gorm.io/gorm"
)

// AutoMigrate creates tables for every model and, on postgres, pins enum columns
// to their names with CHECK constraints.
func AutoMigrate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.Customer{},
			&models.Order{},
			&models.Project{},
			&models.Task{},
			&models.User{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		if tx.Dialector.Name() != "postgres" {
			return nil
		}

		checks := []struct{ table, name, expr string }{
			{"orders", "chk_orders_status", `status IN ('PENDENTE_ENVIO','ENVIO_EM_PROCESSAMENTO','FINALIZADO')`},
			{"projects", "chk_projects_status", `status IS NULL OR status IN ('REFINE','WIP','REVIEW','COMPLETED')`},
			{"tasks", "chk_tasks_priority", `priority IS NULL OR priority IN ('LOW','MID','HIGH')`},
		}
		for _, c := range checks {
			stmt := fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = '%s'::regclass
		  AND conname  = '%s'
	) THEN
		ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
	END IF;
END $$;`, c.table, c.name, c.table, c.name, c.expr)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed on %s: %w", c.name, err)
			}
		}
		return nil
	})
}
