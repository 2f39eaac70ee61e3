// Package state holds the client-side snapshot of each domain.
//
// Each container owns one domain's data plus a request status and error
// slot per concern. Services drive a container through three steps:
//
//	ticket := c.Begin(concern)     // status loading, error cleared
//	result, err := gateway.Call()  // network
//	c.CompleteX(ticket, result)    // or c.Fail(ticket, err)
//
// Every transition runs under the container's lock, so a reconciliation
// is never observed half-applied.
//
// # Sequence guard
//
// Begin stamps the ticket with a per-concern sequence number. Completions
// that replace data (list, detail, search, suggestions, overview) are
// dropped when a newer ticket has been issued for the same concern, so the
// most recently issued request decides the snapshot regardless of the order
// responses arrive in. Completions that confirm a mutation always reconcile
// the entity they carry; only the concern status is left to the newest
// ticket.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: ports, services or adapters
package state
