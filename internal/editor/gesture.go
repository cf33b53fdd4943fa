/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package editor

import (
	"sync"
	"time"
)

// GestureState is the long-press recognizer's lifecycle. A press arms the
// timer; the only transitions are armed->fired (timer elapsed) and
// armed->cancelled (competing move/release before it elapsed). Cancelling
// after firing, or firing after cancelling, is a no-op.
type GestureState int

const (
	GestureIdle GestureState = iota
	GestureArmed
	GestureFired
	GestureCancelled
)

// LongPress distinguishes a tap from a long-press on touch surfaces using a
// cancellable scheduled callback. It is safe for use from the UI goroutine
// plus the timer goroutine.
type LongPress struct {
	delay time.Duration
	fire  func()

	mu    sync.Mutex
	state GestureState
	timer *time.Timer
}

// DefaultLongPressDelay matches common platform long-press timing.
const DefaultLongPressDelay = 500 * time.Millisecond

// NewLongPress builds a recognizer calling fire once per recognized press.
// A non-positive delay falls back to DefaultLongPressDelay.
func NewLongPress(delay time.Duration, fire func()) *LongPress {
	if delay <= 0 {
		delay = DefaultLongPressDelay
	}
	return &LongPress{delay: delay, fire: fire}
}

// Press arms the recognizer. An already-armed recognizer is re-armed,
// restarting the clock.
func (lp *LongPress) Press() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.timer != nil {
		lp.timer.Stop()
	}
	lp.state = GestureArmed
	lp.timer = time.AfterFunc(lp.delay, lp.elapsed)
}

// Cancel stops a pending recognition; call on touch-move or touch-end.
// Cancelling when nothing is armed has no effect.
func (lp *LongPress) Cancel() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.state != GestureArmed {
		return
	}
	if lp.timer != nil {
		lp.timer.Stop()
	}
	lp.state = GestureCancelled
}

// State returns the recognizer's current lifecycle state.
func (lp *LongPress) State() GestureState {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.state
}

func (lp *LongPress) elapsed() {
	lp.mu.Lock()
	if lp.state != GestureArmed {
		// lost the race against Cancel; no side effect
		lp.mu.Unlock()
		return
	}
	lp.state = GestureFired
	fire := lp.fire
	lp.mu.Unlock()
	if fire != nil {
		fire()
	}
}
