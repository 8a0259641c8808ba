// Package loop provides a variable-timestep frame loop.
//
package loop

import (
	"time"
)

// EventProcessor wraps the ProcessEvents method.
//
// Graphical applications that need to swap buffers should swap their buffers in
// their ProcessEvents method, before actually processing events.
//
type EventProcessor interface {
	ProcessEvents() (quit bool)
}

// Updater is called once per loop iteration with the time elapsed since the
// loop started and since the previous iteration, both in seconds.
//
type Updater interface {
	EventProcessor
	Update(t, dt float64)
}

// FrameStarter is the interface implemented by any Updater that wants the time
// stamp at the beginning of each loop iteration.
//
type FrameStarter interface {
	FrameStart(time.Time)
}

// Loop runs an Updater until it asks to quit.
//
// The delta passed to Update is the raw wall clock difference between
// iterations. It is not clamped and there is no fixed timestep.
//
type Loop struct {
	// Now returns the current time. If nil, time.Now is used.
	Now func() time.Time

	ticker *time.Ticker
	minFT  time.Duration
}

// MinFrameTime sets the minimum frame time.
//
// If the t value is greater than 0, the frame rate will be clamped
// to time.Second/t.
//
func (l *Loop) MinFrameTime(t time.Duration) {
	if t == l.minFT {
		return
	}
	l.stopTicker()
	l.minFT = t
	if l.minFT > 0 {
		l.ticker = time.NewTicker(l.minFT)
	}
}

func (l *Loop) now() time.Time {
	if l.ticker != nil {
		<-l.ticker.C
	}
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Loop) stopTicker() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
}

// Run calls a.Update until a.ProcessEvents returns true.
//
func (l *Loop) Run(a Updater) {
	fStart, _ := a.(FrameStarter)
	start := l.now()
	prev := start
	for !a.ProcessEvents() {
		now := l.now()
		if fStart != nil {
			fStart.FrameStart(now)
		}
		a.Update(now.Sub(start).Seconds(), now.Sub(prev).Seconds())
		prev = now
	}
	l.stopTicker()
}
