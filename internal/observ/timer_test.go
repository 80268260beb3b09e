package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(10 * time.Millisecond)

	endConfig := tm.Start("config")
	endConfig("")
	endFormat := tm.Start("format")
	endFormat("3 files")
	endFormat("ignored")
	tm.Start("render") // never closed

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("open phases must be skipped, got %+v", report.Phases)
	}
	if report.Phases[1].Note != "3 files" || report.Phases[1].DurationMS != 10 {
		t.Fatalf("second close must not overwrite the first, got %+v", report.Phases[1])
	}
	if report.TotalMS != 20 {
		t.Fatalf("total = %v", report.TotalMS)
	}

	var sb strings.Builder
	if err := tm.WriteSummary(&sb); err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := "timings:\n" +
		"  config          10.00 ms\n" +
		"  format          10.00 ms  (3 files)\n" +
		"  total           20.00 ms\n"
	if sb.String() != want {
		t.Fatalf("summary:\n%s\nwant:\n%s", sb.String(), want)
	}
}
