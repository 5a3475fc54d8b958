// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// PreferenceStore is the small key-value store backing app preferences and the
// persisted session. Get returns ErrPreferenceNotFound for unknown keys.
type PreferenceStore interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) (string, error)

	// GetOrDefault retrieves the value stored under key, falling back to def
	// when the key is absent.
	GetOrDefault(ctx context.Context, key, def string) (string, error)

	// Set stores value under key, creating or replacing it.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
