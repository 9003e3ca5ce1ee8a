// Package netmon reduces platform connectivity to a single "usably online"
// signal and schedules queue drains when the device comes back online.
package netmon

import (
	"sync"
)

// State is a raw connectivity report from a Provider.
type State struct {
	// Err is set when the platform connectivity API itself failed
	Err               error
	Connected         bool
	InternetReachable bool
}

// Online reports whether s describes a data-capable connection that
// reaches the internet. A link without internet is offline.
func Online(s State) bool {
	return s.Connected && s.InternetReachable
}

// Provider is a source of connectivity reports.
type Provider interface {
	// Subscribe registers cb for every state report and returns a function
	// that removes the subscription.
	Subscribe(cb func(State)) (unsubscribe func())
}

// subscribers is a small registry shared by the providers in this package.
type subscribers struct {
	cbs    map[int]func(State)
	nextID int
	mu     sync.Mutex
}

func (s *subscribers) add(cb func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cbs == nil {
		s.cbs = make(map[int]func(State))
	}
	id := s.nextID
	s.nextID++
	s.cbs[id] = cb

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.cbs, id)
			s.mu.Unlock()
		})
	}
}

func (s *subscribers) notify(st State) {
	s.mu.Lock()
	cbs := make([]func(State), 0, len(s.cbs))
	for _, cb := range s.cbs {
		cbs = append(cbs, cb)
	}
	s.mu.Unlock()

	for _, cb := range cbs {
		cb(st)
	}
}

// StaticProvider reports a state that is set by hand.
// It is used in tests and when the client runs with a forced network mode.
type StaticProvider struct {
	subs  subscribers
	state State
	mu    sync.Mutex
}

// NewStaticProvider creates a provider with an initial state.
func NewStaticProvider(initial State) *StaticProvider {
	return &StaticProvider{state: initial}
}

// Subscribe registers cb and immediately delivers the current state to it.
func (p *StaticProvider) Subscribe(cb func(State)) func() {
	unsubscribe := p.subs.add(cb)

	p.mu.Lock()
	st := p.state
	p.mu.Unlock()

	cb(st)
	return unsubscribe
}

// Set replaces the current state and notifies subscribers synchronously.
func (p *StaticProvider) Set(st State) {
	p.mu.Lock()
	p.state = st
	p.mu.Unlock()

	p.subs.notify(st)
}

// State returns the last state passed to Set.
func (p *StaticProvider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
