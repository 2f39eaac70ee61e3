// Package file provides the TOML-backed configuration store.
//
// Values are addressed by dot keys ("api.base_url") and written back as
// nested TOML tables, so the file stays hand-editable:
//
//	[api]
//	base_url = "http://localhost:8000/api/v1"
//	timeout_seconds = 30
package file
