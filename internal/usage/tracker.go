// Package usage keeps in-memory token accounting for provider calls.
// Nothing is persisted; counters live as long as the gateway process.
package usage

import (
	"context"
	"sync"
)

// TokenCounts holds token totals for one bucket.
type TokenCounts struct {
	Input  int64 `json:"input"`
	Output int64 `json:"output"`
	Total  int64 `json:"total"`
	Calls  int64 `json:"calls"`
}

func (c *TokenCounts) add(input, output int64) {
	c.Input += input
	c.Output += output
	c.Total += input + output
	c.Calls++
}

// Stats is a snapshot of the tracker.
type Stats struct {
	Overall  TokenCounts            `json:"overall"`
	ByAction map[string]TokenCounts `json:"by_action"`
	ByModel  map[string]TokenCounts `json:"by_model"`
	Failures int64                  `json:"failures"`
}

// Tracker aggregates token usage. It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	overall  TokenCounts
	byAction map[string]TokenCounts
	byModel  map[string]TokenCounts
	failures int64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byAction: make(map[string]TokenCounts),
		byModel:  make(map[string]TokenCounts),
	}
}

// Track records one successful provider call.
func (t *Tracker) Track(action, model string, input, output int64) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.overall.add(input, output)

	a := t.byAction[action]
	a.add(input, output)
	t.byAction[action] = a

	m := t.byModel[model]
	m.add(input, output)
	t.byModel[model] = m
}

// TrackFailure records a provider call that returned an error.
func (t *Tracker) TrackFailure() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.failures++
	t.mu.Unlock()
}

// Stats returns a copy of the current counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Stats{
		Overall:  t.overall,
		ByAction: make(map[string]TokenCounts, len(t.byAction)),
		ByModel:  make(map[string]TokenCounts, len(t.byModel)),
		Failures: t.failures,
	}
	for k, v := range t.byAction {
		s.ByAction[k] = v
	}
	for k, v := range t.byModel {
		s.ByModel[k] = v
	}
	return s
}

type contextKey struct{}

// NewRequestContext returns a context that collects the tokens spent while
// serving a single request, and the counts it fills in. Calls within one
// request are sequential, so the counts are not locked.
func NewRequestContext(ctx context.Context) (context.Context, *TokenCounts) {
	c := &TokenCounts{}
	return context.WithValue(ctx, contextKey{}, c), c
}

// Record adds a provider call to the request counts carried by ctx, if any.
func Record(ctx context.Context, input, output int64) {
	if c, ok := ctx.Value(contextKey{}).(*TokenCounts); ok && c != nil {
		c.add(input, output)
	}
}
