// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every service issues a ticket from the matching state container before
// calling the gateway and completes or fails that ticket afterwards, so the
// containers only ever reflect the latest request per concern. Services
// also return the error so callers can report it.
//
// Services are pure Go with no CGO or external dependencies.
package services
