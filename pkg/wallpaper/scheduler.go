package wallpaper

import (
	"path/filepath"
	"time"

	"github.com/dixieflatline76/Mosaic/pkg/collage"
	"github.com/dixieflatline76/Mosaic/util/log"
	"github.com/fsnotify/fsnotify"
)

// Scheduler re-applies the wallpaper on a fixed interval and whenever new
// images appear in the source folder.
type Scheduler struct {
	interval time.Duration
	folder   string
	apply    func() error
	stop     chan struct{}
}

// NewScheduler creates a scheduler invoking apply every interval and on
// folder changes.
func NewScheduler(interval time.Duration, folder string, apply func() error) *Scheduler {
	return &Scheduler{
		interval: interval,
		folder:   folder,
		apply:    apply,
		stop:     make(chan struct{}),
	}
}

// Run applies once immediately, then blocks until Stop is called. Apply
// failures are logged and do not end the loop.
func (s *Scheduler) Run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var events chan fsnotify.Event
	var watchErrs chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Scheduler: folder watch unavailable: %v", err)
	} else {
		defer watcher.Close()
		if err := watcher.Add(s.folder); err != nil {
			log.Printf("Scheduler: cannot watch %s: %v", s.folder, err)
		} else {
			events = watcher.Events
			watchErrs = watcher.Errors
		}
	}

	s.runApply()

	for {
		select {
		case <-ticker.C:
			s.runApply()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Op.Has(fsnotify.Create) && collage.IsSupportedImage(ev.Name) {
				log.Printf("Scheduler: new image %s, reapplying", filepath.Base(ev.Name))
				s.runApply()
			}
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			log.Printf("Scheduler: watch error: %v", err)
		case <-s.stop:
			return
		}
	}
}

// Stop ends the Run loop.
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) runApply() {
	if err := s.apply(); err != nil {
		log.Printf("Scheduler: apply failed: %v", err)
	}
}
