// Package observ collects wall-clock timings for the phases of a command.
package observ

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Phase is one timed step of a command.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	done  bool
}

// Timer records phases in the order they were started. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	now    func() time.Time
	phases []Phase
}

// NewTimer creates an empty Timer.
func NewTimer() *Timer { return &Timer{now: time.Now, phases: make([]Phase, 0, 4)} }

// Start opens a phase and returns the function that closes it. Calling the
// returned function more than once keeps the first duration.
func (t *Timer) Start(name string) func(note string) {
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	t.mu.Unlock()

	return func(note string) {
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		if p.done {
			return
		}
		p.done = true
		p.Dur = t.now().Sub(p.Start)
		p.Note = note
	}
}

// PhaseReport представляет сжатую информацию о фазе для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report summarises finished phases. Phases still open are skipped.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	report := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	var total time.Duration
	for _, p := range t.phases {
		if !p.done {
			continue
		}
		total += p.Dur
		report.Phases = append(report.Phases, PhaseReport{
			Name:       p.Name,
			DurationMS: millis(p.Dur),
			Note:       p.Note,
		})
	}
	report.TotalMS = millis(total)
	return report
}

// WriteSummary prints one aligned line per finished phase and a total.
func (t *Timer) WriteSummary(w io.Writer) error {
	report := t.Report()
	if _, err := fmt.Fprintln(w, "timings:"); err != nil {
		return err
	}
	for _, p := range report.Phases {
		line := fmt.Sprintf("  %-12s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  (" + p.Note + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  %-12s %8.2f ms\n", "total", report.TotalMS)
	return err
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
