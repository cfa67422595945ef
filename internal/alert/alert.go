// Package alert is the transient user-facing notification slot: one
// alert at a time, last write wins, cleared automatically after a fixed
// delay or manually.
package alert

import (
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// DefaultTTL is how long an alert stays up before auto-dismissing.
const DefaultTTL = 3 * time.Second

type Alert struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Notifier holds at most one alert. Re-showing restarts the auto-clear
// countdown; a timer belonging to an overwritten alert can never clear
// its successor (each Show bumps a generation the timer must match).
type Notifier struct {
	mu      sync.Mutex
	current *Alert
	gen     uint64
	timer   *time.Timer
	ttl     time.Duration
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

// Show replaces any current alert and schedules the auto-clear. An empty
// kind defaults to info.
func (n *Notifier) Show(message string, kind Kind) {
	if kind == "" {
		kind = KindInfo
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	n.current = &Alert{Message: message, Kind: kind}

	gen := n.gen
	n.timer = time.AfterFunc(n.ttl, func() {
		n.clearIf(gen)
	})
}

// Clear dismisses the current alert, if any.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.current = nil
}

// Current returns the active alert and whether one is set.
func (n *Notifier) Current() (Alert, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return Alert{}, false
	}
	return *n.current, true
}

func (n *Notifier) clearIf(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.gen != gen {
		return // a newer alert took the slot
	}
	n.current = nil
	n.timer = nil
}
