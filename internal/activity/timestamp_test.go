package activity

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func TestResolveParsesStrictAndPermissive(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "rfc3339",
			raw:  "2026-02-27T10:30:00Z",
			want: time.Date(2026, 2, 27, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "space_separated",
			raw:  "2026-02-27 10:30:00",
			want: time.Date(2026, 2, 27, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "date_only",
			raw:  "2026-02-27",
			want: time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "garbage_falls_back_to_now",
			raw:  "not a date",
			want: clock.now,
		},
		{
			name: "empty_falls_back_to_now",
			raw:  "",
			want: clock.now,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cache := NewStampCache()
			got := cache.Resolve("id:"+tc.name, tc.raw, clock)
			if !got.Equal(tc.want) {
				t.Fatalf("Resolve(%q)=%v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestResolveFutureSkewIsBackdatedAndIdempotent(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewStampCache()

	future := clock.now.Add(time.Hour).Format(time.RFC3339)
	first := cache.Resolve("journal:J1", future, clock)

	want := clock.now.Add(-10 * time.Minute)
	if !first.Equal(want) {
		t.Fatalf("skewed timestamp resolved to %v, want now-10m (%v)", first, want)
	}

	// Five seconds later the same id must yield the identical value,
	// not a newly shifted one.
	clock.now = clock.now.Add(5 * time.Second)
	second := cache.Resolve("journal:J1", future, clock)
	if !second.Equal(first) {
		t.Fatalf("second resolution = %v, want cached %v", second, first)
	}
}

func TestResolveWithinSkewToleranceIsKept(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewStampCache()

	slightlyAhead := clock.now.Add(2 * time.Minute)
	got := cache.Resolve("id", slightlyAhead.Format(time.RFC3339), clock)
	if !got.Equal(slightlyAhead) {
		t.Fatalf("timestamp within tolerance rewritten: got %v, want %v", got, slightlyAhead)
	}
}

func TestResolveCacheIsPerID(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewStampCache()

	a := cache.Resolve("a", "2026-01-01T00:00:00Z", clock)
	b := cache.Resolve("b", "2026-02-01T00:00:00Z", clock)
	if a.Equal(b) {
		t.Fatalf("distinct ids resolved to the same cached value")
	}
	if cache.Len() != 2 {
		t.Fatalf("cache.Len()=%d, want 2", cache.Len())
	}
}
