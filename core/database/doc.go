// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL, PostgreSQL (through lib/pq) or SQLite
// connections from the application's configuration. The map feature tables
// are owned by the main web application; this service only reads them and
// writes link columns, so the inspector is used by the `check` command to
// verify the expected columns exist before a run.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, mapfeatures.ExpectedSchema())
package database
