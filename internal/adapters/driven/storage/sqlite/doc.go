// Package sqlite provides SQLite-backed implementations of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. A single database holds:
//
//   - TokenStore: the session token, in the kv table
//   - UploadJournal: files uploaded from a watched folder
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.docdesk/data/docdesk.db
package sqlite
