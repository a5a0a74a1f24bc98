package collage

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// supportedExtensions is the set of image file extensions the selector picks from.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".webp": true,
}

// IsSupportedImage reports whether the path has a supported image extension.
func IsSupportedImage(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

type fileInfo struct {
	path    string
	modTime time.Time
}

// Selector picks images from a folder under a selection policy, persisting
// per-folder cursor/history state across invocations through a StateStore.
type Selector struct {
	store StateStore
}

// NewSelector creates a selector backed by the given state store.
func NewSelector(store StateStore) *Selector {
	return &Selector{store: store}
}

// Pick returns exactly count image paths from folder under the given policy.
// A count below one is treated as one. A missing or corrupt state entry is
// treated as a fresh start.
func (s *Selector) Pick(folder string, count int, policy SelectionPolicy) ([]string, error) {
	if count < 1 {
		count = 1
	}

	files, err := listImages(folder)
	if err != nil {
		return nil, err
	}

	key := FolderKey(folder)
	state, _ := s.store.Get(key)

	var picks []string
	switch policy {
	case SelectionSequential:
		picks = pickSequential(files, count, &state)
	case SelectionRandom:
		picks = pickRandom(files, count, &state)
	default:
		return nil, fmt.Errorf("unknown selection policy: %v", policy)
	}

	if err := s.store.Put(key, state); err != nil {
		return nil, fmt.Errorf("persisting selection state: %w", err)
	}
	return picks, nil
}

// RecordApplied remembers the image list of the last applied composition so a
// caller can replay it.
func (s *Selector) RecordApplied(folder string, paths []string) error {
	key := FolderKey(folder)
	state, _ := s.store.Get(key)
	state.LastApplied = append([]string(nil), paths...)
	return s.store.Put(key, state)
}

// LastApplied returns the image list of the last applied composition for the
// folder, or nil when none was recorded.
func (s *Selector) LastApplied(folder string) []string {
	state, ok := s.store.Get(FolderKey(folder))
	if !ok {
		return nil
	}
	return state.LastApplied
}

// listImages enumerates the supported image files directly inside folder,
// sorted by modification time descending, ties broken by name.
func listImages(folder string) ([]fileInfo, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrNoImages, folder, err)
	}

	var files []fileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsSupportedImage(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			path:    filepath.Join(folder, entry.Name()),
			modTime: info.ModTime(),
		})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, folder)
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].path < files[j].path
		}
		return files[i].modTime.After(files[j].modTime)
	})
	return files, nil
}

// pickSequential resumes from the stored cursor, wraps at the end of the list
// and advances the cursor by count mod length.
func pickSequential(files []fileInfo, count int, state *FolderState) []string {
	cursor := state.Cursor
	if cursor < 0 || cursor >= len(files) {
		cursor = 0
	}

	picks := make([]string, 0, count)
	for i := 0; i < count; i++ {
		picks = append(picks, files[(cursor+i)%len(files)].path)
	}
	state.Cursor = (cursor + count) % len(files)
	return picks
}

// pickRandom draws without replacement within a cycle tracked by the shown
// set. When the unseen pool runs short the cycle resets before drawing, so
// duplicates only occur when count exceeds the folder's image total.
func pickRandom(files []fileInfo, count int, state *FolderState) []string {
	shown := make(map[string]bool, len(state.Shown))
	for _, name := range state.Shown {
		shown[name] = true
	}

	var pool []fileInfo
	for _, f := range files {
		if !shown[filepath.Base(f.path)] {
			pool = append(pool, f)
		}
	}
	if len(pool) < count {
		// Cycle exhausted, start over with the full folder.
		shown = make(map[string]bool)
		state.Shown = nil
		pool = files
	}

	shuffled := make([]fileInfo, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	picks := make([]string, 0, count)
	for i := 0; i < count && i < len(shuffled); i++ {
		picks = append(picks, shuffled[i].path)
	}
	// Only possible when count exceeds the folder total: fill with uniform draws.
	for len(picks) < count {
		picks = append(picks, files[rand.Intn(len(files))].path)
	}

	for _, p := range picks {
		name := filepath.Base(p)
		if !shown[name] {
			shown[name] = true
			state.Shown = append(state.Shown, name)
		}
	}
	return picks
}
