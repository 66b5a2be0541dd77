package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_client_folders",
		SQL: `CREATE TABLE IF NOT EXISTS client_folders (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  trustee_name TEXT        NOT NULL,
  client_name  TEXT        NOT NULL,
  client_email TEXT        NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_records",
		SQL: `CREATE TABLE IF NOT EXISTS records (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  record_number  TEXT        NOT NULL UNIQUE,
  title          TEXT        NOT NULL,
  submitter_name TEXT        NOT NULL,
  trustee_name   TEXT        NOT NULL DEFAULT '',
  client_name    TEXT        NOT NULL DEFAULT '',
  client_email   TEXT        NOT NULL DEFAULT '',
  private_note   TEXT        NOT NULL DEFAULT '',
  folder_id      UUID        REFERENCES client_folders (id) ON DELETE SET NULL,
  storage_path   TEXT        NOT NULL UNIQUE,
  size           BIGINT      NOT NULL CHECK (size >= 0),
  content_type   TEXT        NOT NULL,
  is_public      BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_records_is_public",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_records_is_public ON records (is_public);`,
	},
	{
		Name: "create_index_records_submitter_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_records_submitter_name ON records (submitter_name);`,
	},
	{
		Name: "create_index_records_folder_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_records_folder_id ON records (folder_id);`,
	},
	{
		Name: "create_index_records_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_records_created_at ON records (created_at);`,
	},
	{
		Name: "create_index_client_folders_trustee_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_client_folders_trustee_name ON client_folders (trustee_name);`,
	},
}

// EnsureMigrated checks if the 'records' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.records') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
