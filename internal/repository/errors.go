// Package repository defines error types that are reused across the
// data access layer. These sentinel values allow higher layers such
// as handlers to distinguish between different failure scenarios
// without inspecting driver error strings themselves. For example,
// ErrEmailExists signals a uniqueness violation that handlers should
// translate into a duplicate-email response, while ErrNotFound
// covers lookups that matched no row.
package repository

import "errors"

// ErrEmailExists is returned when an insert violates the unique
// index on users.email. Handlers translate this into an HTTP 400
// "email already exists" response.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("not found")
