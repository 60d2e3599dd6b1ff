package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

	// Таблица el_inspections - результаты классификации EL снимков
	`CREATE TABLE IF NOT EXISTS el_inspections (
		id              UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		fault_type      TEXT NOT NULL,
		confidence      NUMERIC(6,5) NOT NULL,
		distribution    JSONB NOT NULL,
		severity        TEXT,
		image_name      TEXT,
		image_url       TEXT,
		pincode         TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_el_inspections_fault_type ON el_inspections(fault_type);`,
	`CREATE INDEX IF NOT EXISTS idx_el_inspections_created_at ON el_inspections(created_at);`,

	// Таблица fault_reports - отчеты о неисправностях, отправленные в сервисные офисы
	`CREATE TABLE IF NOT EXISTS fault_reports (
		id              UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		inspection_id   UUID REFERENCES el_inspections(id) ON DELETE SET NULL,
		reporter_name   TEXT NOT NULL,
		reporter_phone  TEXT NOT NULL,
		reporter_email  TEXT NOT NULL,
		pincode         TEXT,
		panel_location  TEXT,
		notes           TEXT,
		fault_type      TEXT NOT NULL,
		confidence      NUMERIC(6,5) NOT NULL,
		severity        TEXT,
		office_name     TEXT NOT NULL,
		office_email    TEXT NOT NULL,
		office_phone    TEXT NOT NULL,
		office_address  TEXT NOT NULL,
		report_text     TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_fault_reports_inspection_id ON fault_reports(inspection_id);`,
	`CREATE INDEX IF NOT EXISTS idx_fault_reports_fault_type ON fault_reports(fault_type);`,
	`CREATE INDEX IF NOT EXISTS idx_fault_reports_created_at ON fault_reports(created_at);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
