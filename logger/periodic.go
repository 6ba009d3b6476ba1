package logger

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff"
)

const periodicMaxSleep = 365 * 24 * time.Hour // FIXME max representable

// DebugPeriodicIntervals enables logging of periodic-logger intervals.
var DebugPeriodicIntervals = false

// PeriodicFunc is called each time a periodic logger fires, with the
// Logger to write through and the time elapsed since its previous run.
type PeriodicFunc func(l *Logger, sinceLast time.Duration)

type periodicEntry struct {
	id       string
	fn       PeriodicFunc
	interval backoff.ExponentialBackOff
	nextRun  time.Time
	lastRun  time.Time
}

// groups the periodic-logging fields embedded in Logger.
type periodic struct {
	timer   *time.Timer
	entries []*periodicEntry
	m       sync.Mutex
	stop    bool
}

func newPeriodic() periodic {
	return periodic{timer: time.NewTimer(periodicMaxSleep)}
}

func (p *periodic) Close() {
	p.m.Lock()
	defer p.m.Unlock()
	p.stop = true
	p.timer.Stop()
	p.timer.Reset(0)
}

// Find the entry with the least time remaining until it should run, and
// update the timer to fire then.
func resetTimer(l *Logger, now time.Time) {
	next := now.Add(periodicMaxSleep)
	for _, e := range l.p.entries {
		if next.After(e.nextRun) {
			next = e.nextRun
		}
	}
	if DebugPeriodicIntervals {
		l.Debugf("(%s until next periodic logger)", RoundDuration(next.Sub(now), time.Second/1000))
	}
	l.p.timer.Stop()
	l.p.timer.Reset(next.Sub(now))
}

// Run every entry due before now+minSleep.
func runPeriodic(l *Logger, minSleep time.Duration, started time.Time) {
	limit := started.Add(minSleep)
	for _, e := range l.p.entries {
		if limit.After(e.nextRun) {
			e.fn(l, started.Sub(e.lastRun))
			e.lastRun = started
			next := e.interval.NextBackOff()
			if next <= 0 {
				l.Warningf("Stopping periodic logger %s", e.id)
				next = periodicMaxSleep
			}
			if DebugPeriodicIntervals {
				l.Debugf("(%s until next %s)", RoundDuration(next, time.Second), e.id)
			}
			e.nextRun = started.Add(next)
		}
	}
}

// Runs until l.p.stop is set.
func periodicRunner(l *Logger) {
	for {
		now := <-l.p.timer.C
		l.p.m.Lock()
		if l.p.stop {
			l.p.m.Unlock()
			break
		}
		runPeriodic(l, 2*time.Second, now)
		resetTimer(l, now)
		l.p.m.Unlock()
	}
}

// RunAllPeriodic runs every periodic logger right now, ignoring intervals.
// main() calls this right before exiting so final stats always get printed.
func (l *Logger) RunAllPeriodic() {
	l.p.m.Lock()
	defer l.p.m.Unlock()
	n := time.Now()
	runPeriodic(l, periodicMaxSleep, n)
	resetTimer(l, n)
}

// AddPeriodic registers fn to run periodically, with an interval that
// backs off exponentially from minInterval up to maxInterval. This is the
// mechanism behind ais-compress/ais-decompress's throughput and dedup-hit-
// rate stats lines: the interval widens the longer the process runs so a
// long-lived stream doesn't spam logs, the same way the teacher paced its
// connection-count reporter.
func (l *Logger) AddPeriodic(id string, minInterval, maxInterval time.Duration, fn PeriodicFunc) {
	b := backoff.ExponentialBackOff{
		InitialInterval:     minInterval,
		MaxInterval:         maxInterval,
		Multiplier:          3.0,
		RandomizationFactor: 0.0,
		MaxElapsedTime:      0,
		Clock:               backoff.SystemClock,
	}
	b.Reset()

	l.p.m.Lock()
	defer l.p.m.Unlock()
	for _, e := range l.p.entries {
		if e.id == id {
			l.Errorf("A periodic logger with ID %s already exists", id)
			return
		}
	}
	added := time.Now()
	l.p.entries = append(l.p.entries, &periodicEntry{
		id:       id,
		fn:       fn,
		interval: b,
		lastRun:  added,
		nextRun:  added.Add(b.NextBackOff()),
	})
	resetTimer(l, added)
}

// RemovePeriodic removes a periodic logger so it never runs again.
func (l *Logger) RemovePeriodic(id string) {
	l.p.m.Lock()
	defer l.p.m.Unlock()
	n := len(l.p.entries)
	for i := 0; i < n; i++ {
		if l.p.entries[i].id == id {
			l.p.entries[i] = l.p.entries[n-1]
			l.p.entries = l.p.entries[:n-1]
			return
		}
	}
	l.Errorf("There is no periodic logger with ID %s to remove", id)
}
