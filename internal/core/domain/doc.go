// Package domain defines the core business entities for docdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Session and User: who is logged in and with which role
//   - Document and Comment: managed documents and their discussion
//   - Notification: server-delivered alerts with read state
//   - SearchResult and Suggestion: search orchestration values
//   - Concern and RequestStatus: request lifecycle bookkeeping
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
