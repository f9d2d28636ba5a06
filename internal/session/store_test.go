package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()

	if _, ok := store.Get("estation_session"); ok {
		t.Fatal("empty store returned a value")
	}
	if err := store.Set("estation_session", "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, ok := store.Get("estation_session")
	if !ok || value != "tok-1" {
		t.Fatalf("Get() = %q, %v", value, ok)
	}
	if err := store.Delete("estation_session"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := store.Get("estation_session"); ok {
		t.Fatal("value present after delete")
	}
}

func TestFileStore_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	if _, ok := store.Get("estation_session"); ok {
		t.Fatal("missing file returned a value")
	}
	if err := store.Set("estation_session", "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// A second store over the same path sees the write.
	other := NewFileStore(path)
	value, ok := other.Get("estation_session")
	if !ok || value != "tok-1" {
		t.Fatalf("Get() via second store = %q, %v", value, ok)
	}

	if err := store.Delete("estation_session"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := other.Get("estation_session"); ok {
		t.Fatal("value present after delete")
	}

	// Deleting an absent key is a no-op.
	if err := store.Delete("estation_session"); err != nil {
		t.Fatalf("Delete() of absent key error = %v", err)
	}
}

func TestFileStore_KeysAreIndependent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Set("estation_session", "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set("other_key", "tok-2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Delete("other_key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	value, ok := store.Get("estation_session")
	if !ok || value != "tok-1" {
		t.Fatalf("Get() = %q, %v after unrelated delete", value, ok)
	}
}

func TestFileStore_WatchSeesExternalWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	store := NewFileStore(path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to attach before mutating the file.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"estation_session":"tok-external"}`), 0o600); err != nil {
		t.Fatalf("write session file: %v", err)
	}

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("watcher did not report external write")
	}

	cancel()
	if err := <-done; err != context.Canceled && err != context.DeadlineExceeded {
		t.Fatalf("Watch() returned %v, want context cancellation", err)
	}
}
