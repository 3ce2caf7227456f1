package metrics

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

// Timers tracks the duration of the report phases (load, aggregate, render).
type Timers struct {
	Timers map[string]*Timer
	last   string
	now    func() time.Time
}

func NewTimers() Timers {
	return Timers{Timers: make(map[string]*Timer), now: time.Now}
}

// set starts a timer, or stops it when it is already running.
func (ts *Timers) set(k string) {
	if _, ok := ts.Timers[k]; !ok {
		ts.Timers[k] = &Timer{start: ts.now()}
		return
	}
	ts.Timers[k].Total = ts.now().Sub(ts.Timers[k].start).Seconds()
}

// Set stops the last timer started with Set and starts k (lap).
func (ts *Timers) Set(k string) {
	if ts.last != "" && ts.last != k {
		ts.set(ts.last)
	}
	ts.set(k)
	ts.last = k
}

// Stop stops the lap started by the last call to Set.
func (ts *Timers) Stop() {
	if ts.last == "" {
		return
	}
	ts.set(ts.last)
	ts.last = ""
}

// Add starts k, or stops it on the second call.
func (ts *Timers) Add(k string) {
	ts.set(k)
}

// Log writes every timer at debug level, sorted by name.
func (ts *Timers) Log() {
	names := make([]string, 0, len(ts.Timers))
	for k := range ts.Timers {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		log.WithField("seconds", ts.Timers[k].Total).Debugf("timer %s", k)
	}
}

type Timer struct {
	start time.Time

	// Total time in seconds
	Total float64
}
