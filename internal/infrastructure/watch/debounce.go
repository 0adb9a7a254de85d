// Package watch re-scores story files as they change on disk.
package watch

import (
	"sync"
	"time"
)

// Coalescer folds a burst of story-file saves into a single re-score of the
// most recently changed path. Editors commonly emit several write events per
// save; only the last one matters.
type Coalescer struct {
	window time.Duration
	fire   func(path string)

	mu       sync.Mutex
	timer    *time.Timer
	lastPath string
}

// NewCoalescer creates a coalescer that calls fire with the most recent path
// once the quiet window elapses with no further saves.
func NewCoalescer(window time.Duration, fire func(path string)) *Coalescer {
	return &Coalescer{
		window: window,
		fire:   fire,
	}
}

// Note records a changed story path and restarts the quiet window.
func (c *Coalescer) Note(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastPath = path
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, func() {
		c.mu.Lock()
		last := c.lastPath
		c.mu.Unlock()
		c.fire(last)
	})
}

// Stop cancels any pending re-score.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
}
