package netmon

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultSettleDelay is the pause between a false -> true transition and the drain it triggers.
const DefaultSettleDelay = time.Second

// Sink receives the reduced online signal. The sync engine implements it.
type Sink interface {
	// SetOnline records the new online state and reports whether it changed
	SetOnline(online bool) bool
	// PendingCount returns the number of actions waiting to be sent
	PendingCount() int
	// TriggerDrain schedules an asynchronous drain pass
	TriggerDrain()
}

// Config configures a Monitor.
type Config struct {
	// SettleDelay < 0 выключает задержку, 0 означает DefaultSettleDelay
	SettleDelay time.Duration
}

// Monitor turns provider reports into online/offline transitions.
//
// When the provider reports an error the monitor keeps the last known value
// instead of assuming either state. Before the first successful report the
// device is considered offline.
type Monitor struct {
	provider    Provider
	sink        Sink
	logger      *slog.Logger
	afterFunc   func(d time.Duration, f func()) (stop func() bool)
	stopTimer   func() bool
	unsubscribe func()
	listeners   map[int]func(bool)
	settle      time.Duration
	generation  uint64
	nextID      int
	online      bool
	mu          sync.Mutex
	// handleMu упорядочивает переходы: sink видит их в том же порядке
	handleMu sync.Mutex
}

// NewMonitor creates a monitor. Nothing is observed until Start is called.
func NewMonitor(provider Provider, sink Sink, cfg Config, logger *slog.Logger) *Monitor {
	settle := cfg.SettleDelay
	switch {
	case settle == 0:
		settle = DefaultSettleDelay
	case settle < 0:
		settle = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Monitor{
		provider:  provider,
		sink:      sink,
		logger:    logger,
		settle:    settle,
		listeners: make(map[int]func(bool)),
		afterFunc: func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		},
	}
}

// Start subscribes to the provider. Calling Start twice has no effect.
func (m *Monitor) Start() {
	m.mu.Lock()
	started := m.unsubscribe != nil
	m.mu.Unlock()
	if started {
		return
	}

	// Провайдер может вызвать callback синхронно, поэтому подписка вне блокировки
	unsubscribe := m.provider.Subscribe(m.handle)

	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
}

// Stop unsubscribes from the provider and cancels a pending settle timer.
func (m *Monitor) Stop() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.cancelTimerLocked()
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Online returns the current reduced state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers cb for online/offline transitions.
func (m *Monitor) Subscribe(cb func(online bool)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = cb
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Monitor) handle(st State) {
	if st.Err != nil {
		m.logger.Warn("Connectivity check failed, keeping last known state",
			"online", m.Online(), "error", st.Err)
		return
	}

	online := Online(st)

	m.handleMu.Lock()
	defer m.handleMu.Unlock()

	m.mu.Lock()
	if online == m.online {
		m.mu.Unlock()
		return
	}
	m.online = online
	m.cancelTimerLocked()

	listeners := make([]func(bool), 0, len(m.listeners))
	for _, cb := range m.listeners {
		listeners = append(listeners, cb)
	}
	m.mu.Unlock()

	m.logger.Info("Network state changed", "online", online)
	// Engine должен узнать об online до таймера, иначе drain упрется в guard offline
	m.sink.SetOnline(online)

	if online {
		m.mu.Lock()
		if m.online {
			m.armTimerLocked()
		}
		m.mu.Unlock()
	}

	for _, cb := range listeners {
		cb(online)
	}
}

// armTimerLocked планирует drain после settle delay; каждое поколение
// таймера знает свой номер, чтобы отмененный таймер ничего не делал
func (m *Monitor) armTimerLocked() {
	m.cancelTimerLocked()
	m.generation++
	gen := m.generation

	if m.settle == 0 {
		go m.settled(gen)
		return
	}
	m.stopTimer = m.afterFunc(m.settle, func() { m.settled(gen) })
}

func (m *Monitor) cancelTimerLocked() {
	if m.stopTimer != nil {
		m.stopTimer()
		m.stopTimer = nil
	}
	m.generation++
}

func (m *Monitor) settled(gen uint64) {
	m.mu.Lock()
	if gen != m.generation || !m.online {
		m.mu.Unlock()
		return
	}
	m.stopTimer = nil
	m.mu.Unlock()

	if pending := m.sink.PendingCount(); pending > 0 {
		m.logger.Info("Connection settled, draining queue", "pending", pending)
		m.sink.TriggerDrain()
	}
}
