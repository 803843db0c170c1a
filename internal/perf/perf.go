// Package perf collects timing samples and counters for hot paths and
// writes periodic summaries to the log. Collection is off unless
// DRAGZONE_PROFILE is set.
package perf

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/dragzone/internal/logging"
)

const (
	// EnvProfile turns collection on when set to anything but 0/false/no.
	EnvProfile = "DRAGZONE_PROFILE"
	// EnvProfileInterval overrides the summary interval in milliseconds.
	EnvProfileInterval = "DRAGZONE_PROFILE_INTERVAL_MS"

	sampleWindow    = 256
	defaultInterval = 5 * time.Second
)

// Summary is the aggregate of one named timer since the last reset.
type Summary struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	P95   time.Duration
}

type timer struct {
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples [sampleWindow]time.Duration
	next    int
	full    bool
}

func (t *timer) add(d time.Duration) {
	t.count++
	t.total += d
	if t.count == 1 || d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
	t.samples[t.next] = d
	t.next++
	if t.next == sampleWindow {
		t.next = 0
		t.full = true
	}
}

func (t *timer) summary(name string) Summary {
	n := t.next
	if t.full {
		n = sampleWindow
	}
	return Summary{
		Name:  name,
		Count: t.count,
		Avg:   t.total / time.Duration(t.count),
		Min:   t.min,
		Max:   t.max,
		P95:   percentile95(t.samples[:n]),
	}
}

var (
	enabled  atomic.Bool
	interval atomic.Int64
	lastLog  atomic.Int64

	mu       sync.Mutex
	timers   = map[string]*timer{}
	counters = map[string]int64{}
)

func init() {
	enabled.Store(envEnabled())
	interval.Store(int64(envInterval()))
}

// Enabled reports whether collection is on.
func Enabled() bool { return enabled.Load() }

// SetEnabled turns collection on or off.
func SetEnabled(on bool) { enabled.Store(on) }

// Time starts a timer; call the returned func to record the elapsed time.
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() { Record(name, time.Since(start)) }
}

// Record adds one duration sample.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	t, ok := timers[name]
	if !ok {
		t = &timer{}
		timers[name] = t
	}
	t.add(d)
	mu.Unlock()
	maybeLog()
}

// Count adds delta to a named counter.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	counters[name] += delta
	mu.Unlock()
	maybeLog()
}

// Snapshot returns the current timers and counters sorted by name and
// resets them.
func Snapshot() ([]Summary, map[string]int64) {
	mu.Lock()
	defer mu.Unlock()

	summaries := make([]Summary, 0, len(timers))
	for name, t := range timers {
		if t.count > 0 {
			summaries = append(summaries, t.summary(name))
		}
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })

	out := make(map[string]int64, len(counters))
	for name, v := range counters {
		if v != 0 {
			out[name] = v
		}
	}
	timers = map[string]*timer{}
	counters = map[string]int64{}
	return summaries, out
}

// Flush logs everything collected so far, tagged with reason.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	write("PERF "+strings.TrimSpace(reason), Snapshot)
}

func maybeLog() {
	every := time.Duration(interval.Load())
	if every <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < every {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	write("PERF", Snapshot)
}

func write(prefix string, snap func() ([]Summary, map[string]int64)) {
	prefix = strings.TrimSpace(prefix)
	summaries, counts := snap()
	for _, s := range summaries {
		logging.Info("%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.Name, s.Count, s.Avg, s.P95, s.Min, s.Max)
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logging.Info("%s %s count=%d", prefix, name, counts[name])
	}
}

// percentile95 returns the nearest-rank 95th percentile of samples.
func percentile95(samples []time.Duration) time.Duration {
	n := len(samples)
	if n == 0 {
		return 0
	}
	sorted := make([]time.Duration, n)
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	pos := int(math.Ceil(0.95*float64(n))) - 1
	if pos < 0 {
		pos = 0
	}
	return sorted[pos]
}

func envEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvProfile))) {
	case "", "0", "false", "no":
		return false
	}
	return true
}

func envInterval() time.Duration {
	raw := strings.TrimSpace(os.Getenv(EnvProfileInterval))
	if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultInterval
}
