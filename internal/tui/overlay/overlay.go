// ABOUTME: Click-outside dismissal for header dropdowns
// ABOUTME: Listeners are registered with a screen region and released on teardown

package overlay

import (
	"sort"
	"sync"
)

// Region is a rectangle of terminal cells
type Region struct {
	X, Y, W, H int
}

// Contains reports whether the cell at (x, y) lies inside the region
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the region covers no cells
func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

type listener struct {
	region  func() Region
	dismiss func()
}

// Listeners dispatches mouse presses to registered dropdowns. A press outside
// a listener's region dismisses it.
type Listeners struct {
	mu      sync.Mutex
	next    int
	entries map[int]listener
}

// New creates an empty listener set
func New() *Listeners {
	return &Listeners{entries: make(map[int]listener)}
}

// Register adds a listener. region is evaluated on every press, so it may
// track a dropdown whose size changes. The returned release is idempotent.
func (l *Listeners) Register(region func() Region, dismiss func()) (release func()) {
	l.mu.Lock()
	id := l.next
	l.next++
	l.entries[id] = listener{region: region, dismiss: dismiss}
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.entries, id)
			l.mu.Unlock()
		})
	}
}

// Press handles a mouse press at (x, y) and returns how many listeners
// were dismissed.
func (l *Listeners) Press(x, y int) int {
	var outside []func()
	for _, e := range l.snapshot() {
		if !e.region().Contains(x, y) {
			outside = append(outside, e.dismiss)
		}
	}
	for _, dismiss := range outside {
		dismiss()
	}
	return len(outside)
}

// DismissAll dismisses every listener, as for Esc
func (l *Listeners) DismissAll() {
	for _, e := range l.snapshot() {
		e.dismiss()
	}
}

// Len is the number of registered listeners
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// snapshot copies the listeners in registration order so callbacks run
// without the lock held
func (l *Listeners) snapshot() []listener {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]int, 0, len(l.entries))
	for id := range l.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.entries[id])
	}
	return out
}
