package netmon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultProbeInterval is the polling period of ProbeProvider
	DefaultProbeInterval = 15 * time.Second
	// DefaultProbeTimeout bounds a single reachability request
	DefaultProbeTimeout = 3 * time.Second
)

// ProbeConfig configures a ProbeProvider.
type ProbeConfig struct {
	// URL проверяется GET-запросом, обычно это /api/v1/health сервера
	URL      string
	Interval time.Duration
	Timeout  time.Duration
}

// ProbeProvider polls the host network interfaces and an HTTP health endpoint.
// "Connected" means at least one up, non-loopback interface;
// "reachable" means the health endpoint answered without a server error.
type ProbeProvider struct {
	client     *http.Client
	logger     *slog.Logger
	interfaces func() ([]net.Interface, error)
	cancel     context.CancelFunc
	subs       subscribers
	cfg        ProbeConfig
	wg         sync.WaitGroup
	mu         sync.Mutex
}

// NewProbeProvider creates a provider. Call Start to begin polling.
func NewProbeProvider(cfg ProbeConfig, logger *slog.Logger) *ProbeProvider {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultProbeInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultProbeTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProbeProvider{
		cfg:        cfg,
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		interfaces: net.Interfaces,
	}
}

// Subscribe registers cb for every poll result.
func (p *ProbeProvider) Subscribe(cb func(State)) func() {
	return p.subs.add(cb)
}

// Start launches the polling loop. The first check runs immediately.
func (p *ProbeProvider) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.loop(ctx)
	}()
}

// Stop terminates the polling loop and waits for it to exit.
func (p *ProbeProvider) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *ProbeProvider) loop(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		st := p.Check(ctx)
		if ctx.Err() != nil {
			return
		}
		p.subs.notify(st)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Check performs one connectivity probe.
func (p *ProbeProvider) Check(ctx context.Context) State {
	connected, err := p.hasUsableInterface()
	if err != nil {
		return State{Err: fmt.Errorf("failed to list network interfaces: %w", err)}
	}
	if !connected {
		return State{}
	}

	return State{Connected: true, InternetReachable: p.reachable(ctx)}
}

func (p *ProbeProvider) hasUsableInterface() (bool, error) {
	ifaces, err := p.interfaces()
	if err != nil {
		return false, err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp != 0 && iface.Flags&net.FlagLoopback == 0 {
			return true, nil
		}
	}
	return false, nil
}

func (p *ProbeProvider) reachable(ctx context.Context) bool {
	if p.cfg.URL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL, nil)
	if err != nil {
		p.logger.Warn("Invalid probe URL", "url", p.cfg.URL, "error", err)
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.logger.Debug("Probe request failed", "url", p.cfg.URL, "error", err)
		}
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError
}
