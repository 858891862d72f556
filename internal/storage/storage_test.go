package storage

import (
	"errors"
	"sync"
	"testing"
)

func TestNewMemoryStorageReturnsDefaultCount(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()

	got, err := store.GetContainerCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DefaultContainerCount() {
		t.Fatalf("expected default count %d, got %d", DefaultContainerCount(), got)
	}
}

func TestSetContainerCountUpdatesState(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	if err := store.SetContainerCount(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetContainerCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestSetContainerCountRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()

	for _, count := range []int{0, -3, 101} {
		if err := store.SetContainerCount(count); !errors.Is(err, ErrInvalidContainerCount) {
			t.Fatalf("expected ErrInvalidContainerCount for %d, got %v", count, err)
		}
	}

	got, err := store.GetContainerCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DefaultContainerCount() {
		t.Fatalf("expected count to stay at default after rejected updates, got %d", got)
	}
}

func TestConcurrentAccessIsSafe(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(2)
		go func(count int) {
			defer wg.Done()
			_ = store.SetContainerCount(count)
		}(i)
		go func() {
			defer wg.Done()
			if _, err := store.GetContainerCount(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := store.GetContainerCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got < 1 || got > 50 {
		t.Fatalf("unexpected final count %d", got)
	}
}
