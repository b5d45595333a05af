// Package telemetry is an async leveled logger. Writes go through a bounded
// channel so the trading path never blocks on stdout; a ring buffer keeps
// the recent lines for the /tail command.
package telemetry

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

const (
	queueSize = 4096
	ringSize  = 1000 // lines retained for Tail
)

type entry struct {
	at    time.Time
	level string
	text  string
}

var (
	debugOn atomic.Bool

	startOnce sync.Once
	queue     chan entry

	ring struct {
		mu      sync.Mutex
		entries []entry
		next    int
		wrapped bool
	}
)

func Start() {
	startOnce.Do(func() {
		queue = make(chan entry, queueSize)
		ring.entries = make([]entry, ringSize)

		go func() {
			for e := range queue {
				ring.mu.Lock()
				ring.entries[ring.next] = e
				ring.next = (ring.next + 1) % ringSize
				if ring.next == 0 {
					ring.wrapped = true
				}
				ring.mu.Unlock()

				fmt.Printf("%s [%s] %s\n",
					e.at.Format("2006/01/02 15:04:05.000"), e.level, e.text)
			}
		}()
	})
}

func Stop() {
	if queue != nil {
		close(queue)
	}
}

func EnableDebug(on bool) { debugOn.Store(on) }

// Non-blocking enqueue; drops on saturation rather than stalling a flow.
func enqueue(level, text string) {
	e := entry{at: time.Now(), level: level, text: text}
	select {
	case queue <- e:
	default:
		fmt.Fprintf(os.Stderr, "telemetry: buffer full, dropping: %s\n", text)
	}
}

func Infof(format string, args ...any) {
	enqueue("INFO", fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	enqueue("WARN", fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	enqueue("ERROR", fmt.Sprintf(format, args...))
}

// Debugf formats only when debug is on.
func Debugf(format string, args ...any) {
	if !debugOn.Load() {
		return
	}
	enqueue("DEBUG", fmt.Sprintf(format, args...))
}

// Tail returns up to n recent lines in chronological order.
func Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > ringSize {
		n = ringSize
	}

	ring.mu.Lock()
	defer ring.mu.Unlock()

	available := ring.next
	if ring.wrapped {
		available = ringSize
	}
	if n > available {
		n = available
	}

	out := make([]string, 0, n)
	start := ring.next - n
	if start < 0 {
		start += ringSize
	}
	for i := 0; i < n; i++ {
		e := ring.entries[(start+i)%ringSize]
		if e.at.IsZero() {
			continue
		}
		out = append(out, fmt.Sprintf("%s [%s] %s",
			e.at.Format("15:04:05.000"), e.level, e.text))
	}
	return out
}
