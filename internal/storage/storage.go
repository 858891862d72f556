package storage

import (
	"errors"
	"sync"
)

const (
	defaultContainerCount = 3
	maxContainerCount     = 100
)

var (
	// ErrInvalidContainerCount indicates the provided container count violates validation rules.
	ErrInvalidContainerCount = errors.New("container count must be between 1 and 100")
)

// Storage provides access to the default container count used by the balancer
// when a request does not specify one.
type Storage interface {
	GetContainerCount() (int, error)
	SetContainerCount(count int) error
}

// MemoryStorage keeps the container count in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu             sync.RWMutex
	containerCount int
}

// NewMemoryStorage initialises storage with the default container count.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{containerCount: defaultContainerCount}
}

// DefaultContainerCount returns the built-in default container count.
func DefaultContainerCount() int {
	return defaultContainerCount
}

// GetContainerCount returns the currently configured container count.
func (s *MemoryStorage) GetContainerCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.containerCount, nil
}

// SetContainerCount validates and stores the provided container count.
func (s *MemoryStorage) SetContainerCount(count int) error {
	if count < 1 || count > maxContainerCount {
		return ErrInvalidContainerCount
	}

	s.mu.Lock()
	s.containerCount = count
	s.mu.Unlock()

	return nil
}
