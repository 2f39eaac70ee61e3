// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AuthGateway, DocumentGateway, CommentGateway, NotificationGateway,
//     DashboardGateway, UserGateway: the remote document API
//   - TokenStore: durable storage for the session token
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - SuggestionSource: typeahead completions. Without it, search
//     suggestions are disabled.
//   - UploadJournal: only needed by the folder watcher.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
