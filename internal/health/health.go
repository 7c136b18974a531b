// Package health tracks the state of the database and generation provider
// for the /healthz endpoint.
package health

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Component names.
const (
	Database  = "database"
	Generator = "generator"

	// Provider holds the outcome of the most recent remote generation call.
	// It has no probe and stays unhealthy until a later call succeeds.
	Provider = "provider"
)

// Status is a point-in-time view of one component.
type Status struct {
	Healthy     bool      `json:"healthy"`
	LastCheck   time.Time `json:"last_check"`
	LastSuccess time.Time `json:"last_success,omitzero"`
	Message     string    `json:"message,omitempty"`
}

// Probe checks a component on demand.
type Probe func(ctx context.Context) error

// Tracker records component health, either from probes run by Check or from
// outcomes reported by callers.
type Tracker struct {
	mu         sync.RWMutex
	components map[string]*Status
	probes     map[string]Probe
	now        func() time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		components: make(map[string]*Status),
		probes:     make(map[string]Probe),
		now:        time.Now,
	}
}

// Register adds a probe that Check runs for component.
func (t *Tracker) Register(component string, probe Probe) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.probes[component] = probe
}

// Report records the outcome of an operation on component.
func (t *Tracker) Report(component string, err error) {
	if err != nil {
		t.SetUnhealthy(component, err)
		return
	}
	t.SetHealthy(component, "ok")
}

// SetHealthy marks a component as healthy.
func (t *Tracker) SetHealthy(component, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	s := t.status(component)
	s.Healthy = true
	s.LastCheck = now
	s.LastSuccess = now
	s.Message = message
}

// SetUnhealthy marks a component as unhealthy.
func (t *Tracker) SetUnhealthy(component string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.status(component)
	s.Healthy = false
	s.LastCheck = t.now()
	s.Message = err.Error()
}

func (t *Tracker) status(component string) *Status {
	s, ok := t.components[component]
	if !ok {
		s = &Status{}
		t.components[component] = s
	}
	return s
}

// Check runs every registered probe and returns the resulting statuses.
func (t *Tracker) Check(ctx context.Context) map[string]Status {
	t.mu.RLock()
	names := make([]string, 0, len(t.probes))
	for name := range t.probes {
		names = append(names, name)
	}
	probes := make(map[string]Probe, len(t.probes))
	for name, p := range t.probes {
		probes[name] = p
	}
	t.mu.RUnlock()

	sort.Strings(names)
	for _, name := range names {
		t.Report(name, probes[name](ctx))
	}
	return t.Statuses()
}

// Get returns the status of a component.
func (t *Tracker) Get(component string) (Status, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.components[component]
	if !ok {
		return Status{}, false
	}
	return *s, true
}

// Statuses returns a copy of all component statuses.
func (t *Tracker) Statuses() map[string]Status {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]Status, len(t.components))
	for name, s := range t.components {
		result[name] = *s
	}
	return result
}

// Healthy returns true if all components are healthy.
func (t *Tracker) Healthy() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, s := range t.components {
		if !s.Healthy {
			return false
		}
	}
	return true
}
