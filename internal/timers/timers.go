// Package timers measures the phases of a run and compares them with a
// stored baseline.
//
// A nil or disabled *Timers accepts every call and records nothing, so
// callers never check whether timing is on.
package timers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"sync"
	"time"
)

const (
	resetColor = "\x1b[0m"
	bold       = "\x1b[1m"
	boldRed    = "\x1b[1;31m"
	boldGreen  = "\x1b[1;32m"
)

// ComparisonThreshold is the smallest deviation from the baseline, in
// milliseconds, worth reporting.
const ComparisonThreshold = 20

// highlightPercent is the relative deviation above which a change is coloured.
const highlightPercent = 5

type timer struct {
	total time.Duration
	start time.Time
}

// Timers accumulates the time spent under each label.
type Timers struct {
	mu      sync.Mutex
	enabled bool
	now     func() time.Time
	timers  map[string]*timer
	labels  []string
}

// New returns timers that record only when enabled is set.
func New(enabled bool) *Timers {
	return &Timers{
		enabled: enabled,
		now:     time.Now,
		timers:  make(map[string]*timer),
	}
}

// Enabled reports whether t records anything.
func (t *Timers) Enabled() bool {
	return t != nil && t.enabled
}

// Start begins, or resumes, timing label.
func (t *Timers) Start(label string) {
	if !t.Enabled() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.timers[label]
	if !ok {
		entry = &timer{}
		t.timers[label] = entry
		t.labels = append(t.labels, label)
	}
	entry.start = t.now()
}

// End adds the time since the matching Start to label. Ending a label that
// was never started does nothing.
func (t *Timers) End(label string) {
	if !t.Enabled() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, ok := t.timers[label]; ok && !entry.start.IsZero() {
		entry.total += t.now().Sub(entry.start)
		entry.start = time.Time{}
	}
}

// Timings returns the recorded milliseconds per label.
func (t *Timers) Timings() map[string]int64 {
	out := make(map[string]int64)
	if !t.Enabled() {
		return out
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for label, entry := range t.timers {
		out[label] = entry.total.Milliseconds()
	}
	return out
}

// Flush prints every label with its deviation from the baseline in
// perfFile, then resets the timers. When no baseline exists the current
// timings are stored as the new one.
func (t *Timers) Flush(w io.Writer, perfFile string) error {
	if !t.Enabled() {
		return nil
	}

	existing, err := readTimings(perfFile)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Fprintf(w, "%sComparing with %s%s\n", bold, perfFile, resetColor)
	}

	t.mu.Lock()
	current := make(map[string]int64, len(t.labels))
	for _, label := range t.labels {
		ms := t.timers[label].total.Milliseconds()
		current[label] = ms
		fmt.Fprintf(w, "%s: %dms %s\n", label, ms, deviation(ms, existing[label]))
	}
	t.timers = make(map[string]*timer)
	t.labels = nil
	t.mu.Unlock()

	if len(existing) == 0 {
		fmt.Fprintf(w, "%sStoring performance information in %s. Delete this file to get a new baseline.%s\n", bold, perfFile, resetColor)
		if err := writeTimings(perfFile, current); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	return nil
}

// PerfFile returns the baseline path used for input.
func PerfFile(input string) string {
	return input + ".perf.json"
}

func readTimings(path string) (map[string]int64, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var timings map[string]int64
	if err := json.Unmarshal(data, &timings); err != nil {
		// An unreadable baseline is replaced.
		return nil, nil
	}
	return timings, nil
}

func writeTimings(path string, timings map[string]int64) error {
	data, err := json.MarshalIndent(timings, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// deviation describes how far current is from the baseline, or returns ""
// when there is no baseline or the difference is below the threshold.
func deviation(current, baseline int64) string {
	if baseline == 0 {
		return ""
	}
	absolute := current - baseline
	if absolute < 0 {
		absolute = -absolute
	}
	if absolute < ComparisonThreshold {
		return ""
	}

	relative := math.Abs(100 * float64(current-baseline) / float64(baseline))
	sign := "+"
	if current < baseline {
		sign = "-"
	}
	text := fmt.Sprintf("(%s%.1f%%, %s%dms)%s", sign, relative, sign, absolute, resetColor)
	if relative > highlightPercent {
		color := boldRed
		if current < baseline {
			color = boldGreen
		}
		text = color + text
	}
	return text
}
