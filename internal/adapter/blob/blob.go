// Package blob defines the content-addressed image store used for snapshot
// files. Drivers live in subpackages.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("blob not found")

// KeyPrefix is the namespace of content-address keys.
const KeyPrefix = "sha256/"

// Info describes a stored object.
type Info struct {
	Key         string
	Size        int64
	ContentType string
}

// Store persists immutable objects under content-address keys.
// Put is idempotent: writing an existing key is a no-op.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (Info, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) error
}

// ContentKey returns the content address of data.
func ContentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// ValidKey reports whether key has the shape produced by ContentKey.
func ValidKey(key string) bool {
	hexPart, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok || len(hexPart) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hexPart)
	return err == nil
}
