package repo

import "github.com/google/uuid"

// IDGenerator hands out record identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// IDFunc adapts a plain function, mostly for tests.
type IDFunc func() string

func (f IDFunc) NewID() string { return f() }
