package model

import "time"

// Role values stored in users.role. The marketplace knows three kinds of
// accounts: organizers publish events and propose contracts, musicians
// receive contract offers, and plain users book tickets.
const (
	RoleOrganizer = "ORGANIZER"
	RoleMusician  = "MUSICIAN"
	RoleUser      = "USER"
)

// ValidRole reports whether s is one of the known role values.
func ValidRole(s string) bool {
	switch s {
	case RoleOrganizer, RoleMusician, RoleUser:
		return true
	}
	return false
}

// User represents an account record as stored in the `users` table.
// PasswordHash is never serialized; handlers build response types with
// the hash omitted.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name shown to other users.
//  Email        – unique email address (stored lower-cased).
//  PasswordHash – bcrypt hashed password.
//  Role         – ORGANIZER, MUSICIAN or USER.
//  Profile      – free-form profile payload (bio, links, genres).
//  CreatedAt    – timestamp of registration.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	Profile      string    // users.profile
	CreatedAt    time.Time // users.created_at
}
