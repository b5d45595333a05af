package telemetry

import (
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLines(t *testing.T) {
	Start()

	for i := 0; i < 30; i++ {
		Infof("line %d", i)
	}
	// consumer is async; give it a moment to drain
	time.Sleep(100 * time.Millisecond)

	tail := Tail(10)
	if len(tail) != 10 {
		t.Fatalf("expected 10 tail entries, got %d", len(tail))
	}
	if !strings.Contains(tail[len(tail)-1], "line 29") {
		t.Errorf("last tail entry should be the newest, got %q", tail[len(tail)-1])
	}
	if !strings.Contains(tail[0], "line 20") {
		t.Errorf("tail should be chronological, got first entry %q", tail[0])
	}
}

func TestDebugGating(t *testing.T) {
	Start()
	defer func() { EnableDebug(false) }()

	EnableDebug(false)
	Debugf("should not appear %d", 1)

	EnableDebug(true)
	Debugf("debug visible")
	time.Sleep(50 * time.Millisecond)

	for _, line := range Tail(50) {
		if strings.Contains(line, "should not appear") {
			t.Errorf("gated debug line was logged: %q", line)
		}
	}
}
