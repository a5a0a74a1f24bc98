package wallpaper

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerAppliesImmediately(t *testing.T) {
	applied := make(chan struct{}, 1)
	s := NewScheduler(time.Hour, t.TempDir(), func() error {
		select {
		case applied <- struct{}{}:
		default:
		}
		return nil
	})

	go s.Run()
	defer s.Stop()

	select {
	case <-applied:
	case <-time.After(5 * time.Second):
		t.Fatal("no initial apply")
	}
}

func TestSchedulerTicksOnInterval(t *testing.T) {
	var count atomic.Int32
	s := NewScheduler(20*time.Millisecond, t.TempDir(), func() error {
		count.Add(1)
		return nil
	})

	go s.Run()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return count.Load() >= 3
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSchedulerReappliesOnNewImage(t *testing.T) {
	dir := t.TempDir()
	var count atomic.Int32
	s := NewScheduler(time.Hour, dir, func() error {
		count.Add(1)
		return nil
	})

	go s.Run()
	defer s.Stop()

	// Wait for the initial apply before touching the folder.
	require.Eventually(t, func() bool {
		return count.Load() >= 1
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.jpg"), []byte("x"), 0644))

	assert.Eventually(t, func() bool {
		return count.Load() >= 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSchedulerIgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	var count atomic.Int32
	s := NewScheduler(time.Hour, dir, func() error {
		count.Add(1)
		return nil
	})

	go s.Run()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return count.Load() >= 1
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
}

func TestSchedulerStops(t *testing.T) {
	s := NewScheduler(time.Hour, t.TempDir(), func() error { return nil })

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	s.Stop()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
