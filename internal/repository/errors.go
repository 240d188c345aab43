// Package repository implements durable storage for users, events,
// bookings and contracts on top of database/sql. Sentinel errors defined
// here let handlers map failures onto the HTTP error taxonomy with
// errors.Is instead of string matching.
package repository

import "errors"

// ErrNotFound is returned when an entity lookup by id matches no row.
// Handlers translate it to 404 for direct lookups and to a 400 "not
// found" body when it surfaces while resolving a parent entity.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registration collides with an existing
// account email. Translated to a 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrInsufficientTickets is returned when a booking requests more
// tickets than the event has available. The event row is left untouched.
var ErrInsufficientTickets = errors.New("not enough tickets available")
