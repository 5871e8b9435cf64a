package nfc

import (
	"time"

	"github.com/dotside-studios/nfc-tag-reader/internal/syncutil"
)

// Clock abstracts time so retry pauses and polling can be driven by tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
	NewTicker(d time.Duration) Ticker
	NewTimer(d time.Duration) Timer
}

// Ticker is the subset of time.Ticker used by the reader.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Timer is the subset of time.Timer used by the device manager.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
	Reset(d time.Duration) bool
}

// RealClock implements Clock using actual time operations
type RealClock struct{}

// NewRealClock creates a new RealClock
func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time        { return time.Now() }
func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

func (RealClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(d)}
}

func (RealClock) NewTimer(d time.Duration) Timer {
	return &realTimer{timer: time.NewTimer(d)}
}

type realTicker struct {
	ticker *time.Ticker
}

func (rt *realTicker) C() <-chan time.Time { return rt.ticker.C }
func (rt *realTicker) Stop()               { rt.ticker.Stop() }

type realTimer struct {
	timer *time.Timer
}

func (rt *realTimer) C() <-chan time.Time        { return rt.timer.C }
func (rt *realTimer) Stop() bool                 { return rt.timer.Stop() }
func (rt *realTimer) Reset(d time.Duration) bool { return rt.timer.Reset(d) }

// FakeClock implements Clock for tests. Sleep returns immediately, advances
// the clock and is recorded so tests can assert on retry pauses.
type FakeClock struct {
	mu      syncutil.RWMutex
	now     time.Time
	sleeps  []time.Duration
	tickers []*fakeTicker
	timers  []*fakeTimer
}

// NewFakeClock creates a new FakeClock starting at the given time
func NewFakeClock(startTime time.Time) *FakeClock {
	return &FakeClock{now: startTime}
}

func (fc *FakeClock) Now() time.Time {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return fc.now
}

func (fc *FakeClock) Sleep(d time.Duration) {
	fc.mu.Lock()
	fc.sleeps = append(fc.sleeps, d)
	fc.mu.Unlock()
	fc.Advance(d)
}

// Sleeps returns every duration passed to Sleep, in call order.
func (fc *FakeClock) Sleeps() []time.Duration {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	out := make([]time.Duration, len(fc.sleeps))
	copy(out, fc.sleeps)
	return out
}

func (fc *FakeClock) NewTicker(d time.Duration) Ticker {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	ft := &fakeTicker{clock: fc, interval: d, next: fc.now.Add(d), c: make(chan time.Time, 1)}
	fc.tickers = append(fc.tickers, ft)
	return ft
}

func (fc *FakeClock) NewTimer(d time.Duration) Timer {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	ft := &fakeTimer{clock: fc, deadline: fc.now.Add(d), c: make(chan time.Time, 1)}
	fc.timers = append(fc.timers, ft)
	return ft
}

// Advance moves the clock forward and fires due tickers and timers.
func (fc *FakeClock) Advance(d time.Duration) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.now = fc.now.Add(d)

	for _, ticker := range fc.tickers {
		if ticker.stopped || ticker.interval <= 0 || fc.now.Before(ticker.next) {
			continue
		}
		for !ticker.next.After(fc.now) {
			ticker.next = ticker.next.Add(ticker.interval)
		}
		select {
		case ticker.c <- fc.now:
		default:
		}
	}

	for _, timer := range fc.timers {
		if !timer.stopped && !fc.now.Before(timer.deadline) {
			select {
			case timer.c <- fc.now:
			default:
			}
			timer.stopped = true
		}
	}
}

type fakeTicker struct {
	clock    *FakeClock
	interval time.Duration
	next     time.Time
	c        chan time.Time
	stopped  bool
}

func (ft *fakeTicker) C() <-chan time.Time { return ft.c }

func (ft *fakeTicker) Stop() {
	ft.clock.mu.Lock()
	ft.stopped = true
	ft.clock.mu.Unlock()
}

type fakeTimer struct {
	clock    *FakeClock
	deadline time.Time
	c        chan time.Time
	stopped  bool
}

func (ft *fakeTimer) C() <-chan time.Time { return ft.c }

func (ft *fakeTimer) Stop() bool {
	ft.clock.mu.Lock()
	defer ft.clock.mu.Unlock()
	active := !ft.stopped
	ft.stopped = true
	return active
}

func (ft *fakeTimer) Reset(d time.Duration) bool {
	ft.clock.mu.Lock()
	defer ft.clock.mu.Unlock()
	active := !ft.stopped
	ft.stopped = false
	ft.deadline = ft.clock.now.Add(d)
	return active
}
