// Package util provides utility functions for studentgen.
package util

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces UUIDv4 identifiers from a random byte source.
// Backed by a seeded source, it yields the same sequence on every run.
type IDGenerator struct {
	mu  sync.Mutex
	src io.Reader
}

// NewIDGenerator creates an ID generator reading from src.
// A nil src uses crypto/rand.
func NewIDGenerator(src io.Reader) *IDGenerator {
	if src == nil {
		src = rand.Reader
	}
	return &IDGenerator{src: src}
}

// NewID generates a new identifier. If the source fails, it falls back to
// a random UUID so callers never see an empty ID.
func (g *IDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// NewUUIDv7 generates a time-ordered UUIDv7, used for run identifiers.
func NewUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ParseID validates and parses a UUID string.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid ID format: %w", err)
	}
	return id.String(), nil
}

// IsValidID checks if a string is a valid UUID format.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
