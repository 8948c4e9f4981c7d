// Package database provides SQLite connectivity for the device history store.
//
// This package manages:
//   - Database connection with WAL mode
//   - Schema migrations embedded into the binary
//   - Connection lifecycle and health checks
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path, WALMode: true})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// All queries use parameterised statements. The database file is created
// with 0600 permissions.
package database
