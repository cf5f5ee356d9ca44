package stream

import "sync"

// Audience counts the dashboard pages currently open, one per live stream
// subscription, and reports when that count moves between zero and non-zero.
type Audience struct {
	mu       sync.Mutex
	n        int
	onChange func(watching bool)
}

// NewAudience returns an empty audience. onChange may be nil; it runs with
// the audience locked and must not block.
func NewAudience(onChange func(watching bool)) *Audience {
	return &Audience{onChange: onChange}
}

// Join adds one viewer.
func (a *Audience) Join() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.n++
	if a.n == 1 && a.onChange != nil {
		a.onChange(true)
	}
}

// Leave removes one viewer. Extra calls are ignored.
func (a *Audience) Leave() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.n == 0 {
		return
	}
	a.n--
	if a.n == 0 && a.onChange != nil {
		a.onChange(false)
	}
}

// Count returns the number of viewers.
func (a *Audience) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.n
}

// WhenEmpty runs fn with the audience locked if nobody is watching, so that
// fn cannot interleave with a Join.
func (a *Audience) WhenEmpty(fn func()) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.n != 0 {
		return false
	}
	fn()
	return true
}
