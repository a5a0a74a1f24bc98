package collage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FolderState is the persisted selection progress for one source folder.
type FolderState struct {
	Cursor      int      `json:"cursor"`
	Shown       []string `json:"shown,omitempty"`
	LastApplied []string `json:"last_applied,omitempty"`
}

// StateStore is a key-value store mapping a folder identity to its selection
// state. The Selector takes it as a dependency so tests can substitute an
// in-memory store.
type StateStore interface {
	Get(key string) (FolderState, bool)
	Put(key string, state FolderState) error
}

// FolderKey returns the identity string used to key a folder's state.
func FolderKey(folder string) string {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return filepath.Clean(folder)
	}
	return abs
}

// FileStore is a StateStore backed by a single JSON file. A missing or corrupt
// file is treated as empty; writes go through a temp file and rename.
type FileStore struct {
	mu     sync.Mutex
	path   string
	states map[string]FolderState
}

// NewFileStore loads the state file at path, starting fresh when the file is
// missing or unreadable.
func NewFileStore(path string) *FileStore {
	s := &FileStore{
		path:   path,
		states: make(map[string]FolderState),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.states); err != nil {
		// Corrupt state file. Favor availability over history continuity.
		s.states = make(map[string]FolderState)
	}
	return s
}

// Get returns the state for the given folder key.
func (s *FileStore) Get(key string) (FolderState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[key]
	return state, ok
}

// Put stores the state for the given folder key and persists the whole file.
func (s *FileStore) Put(key string, state FolderState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[key] = state
	return s.save()
}

// save writes the state map atomically. Caller must hold s.mu.
func (s *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.states); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

// MemoryStore is an in-memory StateStore for tests and one-shot runs.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]FolderState
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]FolderState)}
}

// Get returns the state for the given folder key.
func (s *MemoryStore) Get(key string) (FolderState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[key]
	return state, ok
}

// Put stores the state for the given folder key.
func (s *MemoryStore) Put(key string, state FolderState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[key] = state
	return nil
}
