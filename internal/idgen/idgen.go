// Package idgen produces identifiers for new bills.
package idgen

import "github.com/google/uuid"

// Generator hands out identifiers that are unique with overwhelming probability.
type Generator interface {
	NewID() string
}

// UUIDv7 generates RFC 9562 version 7 UUIDs: a millisecond timestamp prefix
// followed by random bits. IDs are never checked against existing bills.
type UUIDv7 struct{}

// NewID returns a new UUIDv7 string.
func (UUIDv7) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Func adapts a plain function to the Generator interface.
type Func func() string

// NewID calls f.
func (f Func) NewID() string {
	return f()
}
