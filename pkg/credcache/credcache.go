// Package credcache stores provider access credentials keyed by scope.
//
// Vendor clients look up a cached credential before performing a token
// exchange and publish freshly issued credentials back to the store. The
// package includes an in-memory implementation used by default and a
// BadgerDB-backed implementation so CLI invocations can reuse tokens across
// process restarts.
package credcache

import (
	"context"
	"errors"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when no credential is cached for a key.
	ErrNotFound = errors.New("credcache: not found")
)

// Credential is an issued access token together with its absolute expiry.
// ExpiresAt already accounts for any safety margin applied by the issuer.
type Credential struct {
	// Token is the opaque access token value.
	Token string `msgpack:"token"`

	// ExpiresAt is the instant after which the credential must not be used.
	ExpiresAt time.Time `msgpack:"expires_at"`
}

// Valid reports whether the credential is usable at the given instant.
func (c *Credential) Valid(now time.Time) bool {
	return c != nil && c.Token != "" && now.Before(c.ExpiresAt)
}

// Store is the interface for a credential cache.
//
// Get must never return an expired credential: implementations check expiry
// on read, and a stale entry behaves exactly like a missing one.
type Store interface {
	// Get retrieves the credential cached under key.
	// Returns ErrNotFound if absent or expired.
	Get(ctx context.Context, key string) (*Credential, error)

	// Put stores a credential under key, replacing any previous entry.
	Put(ctx context.Context, key string, cred *Credential) error

	// Delete removes the entry for key. No error if the key does not exist.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// encode serializes a credential for the persistent backends.
func encode(cred *Credential) ([]byte, error) {
	return msgpack.Marshal(cred)
}

// decode deserializes a credential. A body that fails strict decoding is
// treated as absent rather than surfaced to callers.
func decode(data []byte) (*Credential, error) {
	var cred Credential
	if err := msgpack.Unmarshal(data, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}
