// Package driving defines interfaces that external actors (TUI, CLI, MCP,
// folder watcher) use to interact with core services. These are the
// "driving" ports in hexagonal architecture terminology - they drive the
// application.
//
// Operations record their outcome in the session's state containers and
// also return the error, so a CLI command can exit non-zero while a view
// renders the failure from the snapshot.
//
// Implementations of these interfaces live in internal/core/services.
package driving
