// Package memory implements an in-process blob.Store for development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/storyline-backend/internal/adapter/blob"
)

type entry struct {
	info blob.Info
	data []byte
}

// Store keeps blobs in process memory. Contents are lost on restart.
type Store struct {
	mu   sync.RWMutex
	objs map[string]entry
}

// New returns an empty in-memory blob store.
func New() *Store { return &Store{objs: make(map[string]entry)} }

func (s *Store) Put(_ context.Context, key string, data []byte, contentType string) (blob.Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.objs[key]; ok {
		return existing.info, nil
	}
	info := blob.Info{Key: key, Size: int64(len(data)), ContentType: contentType}
	s.objs[key] = entry{info: info, data: clone(data)}
	return info, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	obj, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("blob %s: %w", key, blob.ErrNotFound)
	}
	return clone(obj.data), nil
}

func (s *Store) Head(_ context.Context, key string) (blob.Info, error) {
	s.mu.RLock()
	obj, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return blob.Info{}, fmt.Errorf("blob %s: %w", key, blob.ErrNotFound)
	}
	return obj.info, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objs, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objs)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
