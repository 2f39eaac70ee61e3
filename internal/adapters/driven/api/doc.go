// Package api implements the driven gateway ports over the document
// management REST API.
//
// Requests carry the session token as a bearer header through an
// oauth2.Transport, are throttled by a token bucket, and every failure is
// returned as a *domain.RemoteError.
package api
