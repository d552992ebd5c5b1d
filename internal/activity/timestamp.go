package activity

import (
	"sync"
	"time"
)

// Clock abstracts wall-clock reads so reconciliation is testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func RealClock() Clock { return realClock{} }

const (
	// Timestamps more than this far in the future are treated as clock skew.
	maxFutureSkew = 5 * time.Minute
	// Skewed timestamps are replaced with a stable backdated placeholder.
	skewBackdate = 10 * time.Minute
)

// Layouts tried after strict RFC3339 parsing fails. Raw values arrive from
// several producers and are not guaranteed to be well formed.
var permissiveLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// StampCache resolves raw timestamp strings to stable times. Once an id has
// a resolved value the same value is returned forever (append-only, cleared
// only when the process restarts), so a corrected clock-skewed or missing
// timestamp does not drift between reconciliation passes.
type StampCache struct {
	mu       sync.Mutex
	resolved map[string]time.Time
}

func NewStampCache() *StampCache {
	return &StampCache{resolved: make(map[string]time.Time)}
}

// Resolve parses raw, substituting "now" for unparseable values and a
// backdated placeholder for values skewed into the future. The result is
// cached under id; later calls with the same id return the cached time
// regardless of raw or the current clock.
func (c *StampCache) Resolve(id, raw string, clock Clock) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.resolved[id]; ok {
		return cached
	}

	now := clock.Now()
	ts, ok := parseTimestamp(raw)
	if !ok {
		ts = now
	}
	if ts.After(now.Add(maxFutureSkew)) {
		ts = now.Add(-skewBackdate)
	}

	c.resolved[id] = ts
	return ts
}

// Len reports how many ids have been resolved, for diagnostics.
func (c *StampCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.resolved)
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, true
	}
	for _, layout := range permissiveLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
