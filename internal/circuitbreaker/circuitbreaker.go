// Package circuitbreaker tracks per-processor health. An open circuit makes
// the invocation layer surface the canonical unreachable error without
// touching the remote processor.
package circuitbreaker

import (
	"sync"
	"time"
)

// State of a single processor's circuit.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

const (
	defaultFailureThreshold         = 5
	defaultOpenStateTimeout         = 30 * time.Second
	defaultHalfOpenSuccessThreshold = 2
)

type processorState struct {
	state                State
	consecutiveFailures  int
	consecutiveSuccesses int
	openUntil            time.Time
}

// Breaker is an in-memory circuit breaker keyed by processor name.
type Breaker struct {
	mu                       sync.Mutex
	processors               map[string]*processorState
	failureThreshold         int
	openStateTimeout         time.Duration
	halfOpenSuccessThreshold int
}

// New creates a Breaker with default thresholds.
func New() *Breaker {
	return NewWithSettings(defaultFailureThreshold, defaultOpenStateTimeout, defaultHalfOpenSuccessThreshold)
}

// NewWithSettings creates a Breaker with custom thresholds.
func NewWithSettings(failThreshold int, openTimeout time.Duration, halfOpenSuccess int) *Breaker {
	return &Breaker{
		processors:               make(map[string]*processorState),
		failureThreshold:         failThreshold,
		openStateTimeout:         openTimeout,
		halfOpenSuccessThreshold: halfOpenSuccess,
	}
}

// caller must hold mu.
func (b *Breaker) state(name string) *processorState {
	ps, ok := b.processors[name]
	if !ok {
		ps = &processorState{state: Closed}
		b.processors[name] = ps
	}
	return ps
}

// Allow reports whether a call to the processor may proceed. An expired Open
// circuit transitions to HalfOpen and lets the probe through.
func (b *Breaker) Allow(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	ps := b.state(name)
	switch ps.state {
	case Open:
		if time.Now().After(ps.openUntil) {
			ps.state = HalfOpen
			ps.consecutiveSuccesses = 0
			return true
		}
		return false
	case HalfOpen:
		return true
	default:
		return true
	}
}

// RecordFailure notes a failed call against the processor.
func (b *Breaker) RecordFailure(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ps := b.state(name)
	switch ps.state {
	case Closed:
		ps.consecutiveFailures++
		if ps.consecutiveFailures >= b.failureThreshold {
			ps.state = Open
			ps.openUntil = time.Now().Add(b.openStateTimeout)
		}
	case HalfOpen:
		// Probe failed, re-open immediately.
		ps.state = Open
		ps.openUntil = time.Now().Add(b.openStateTimeout)
		ps.consecutiveFailures = 0
		ps.consecutiveSuccesses = 0
	}
}

// RecordSuccess notes a successful call against the processor.
func (b *Breaker) RecordSuccess(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ps := b.state(name)
	switch ps.state {
	case Closed:
		ps.consecutiveFailures = 0
	case HalfOpen:
		ps.consecutiveSuccesses++
		if ps.consecutiveSuccesses >= b.halfOpenSuccessThreshold {
			ps.state = Closed
			ps.consecutiveFailures = 0
			ps.consecutiveSuccesses = 0
		}
	}
}

// GetState returns the current circuit state without transitioning it.
func (b *Breaker) GetState(name string) State {
	b.mu.Lock()
	defer b.mu.Unlock()
	ps, ok := b.processors[name]
	if !ok {
		return Closed
	}
	return ps.state
}
