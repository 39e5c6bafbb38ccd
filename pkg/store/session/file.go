package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/store"
)

type fileStore struct {
	dir string
}

// NewFileStore persists each session as <id>.json under dir. Used by the CLI
// and anywhere snapshots need to outlive the process.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (f *fileStore) Get(_ context.Context, id string) (store.SessionSnapshot, error) {
	raw, err := os.ReadFile(f.path(id))
	if os.IsNotExist(err) {
		return store.SessionSnapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return store.SessionSnapshot{}, fmt.Errorf("failed to read session %s: %w", id, err)
	}
	var snapshot store.SessionSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return store.SessionSnapshot{}, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return snapshot, nil
}

func (f *fileStore) Put(_ context.Context, snapshot store.SessionSnapshot) error {
	if snapshot.ID == "" {
		return fmt.Errorf("snapshot id cannot be empty")
	}
	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", snapshot.ID, err)
	}
	// Write-then-rename so a crash never leaves a truncated snapshot behind.
	tmp := f.path(snapshot.ID) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write session %s: %w", snapshot.ID, err)
	}
	return os.Rename(tmp, f.path(snapshot.ID))
}

func (f *fileStore) Delete(_ context.Context, id string) error {
	err := os.Remove(f.path(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *fileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

func (f *fileStore) path(id string) string {
	return filepath.Join(f.dir, id+".json")
}
