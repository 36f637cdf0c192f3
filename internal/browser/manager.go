// File: internal/browser/manager.go

// Package browser owns the Chrome lifecycle and exposes live pages behind the
// schemas.Page abstraction so the scanner and executor never touch CDP types.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hireloop/autopilot/internal/config"
)

// Manager owns the shared browser allocator and the set of live sessions.
type Manager struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	cfg         config.BrowserConfig
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewManager starts a browser allocator derived from ctx. The browser process
// itself launches lazily with the first session.
func NewManager(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
	)
	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if cfg.DisableCache {
		opts = append(opts, chromedp.Flag("disable-application-cache", true))
	}
	if cfg.IgnoreTLSErrors {
		opts = append(opts, chromedp.Flag("ignore-certificate-errors", true))
	}
	for _, arg := range cfg.Args {
		opts = append(opts, chromedp.Flag(arg, true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)

	return &Manager{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		cfg:         cfg,
		logger:      logger.Named("browser"),
		sessions:    make(map[string]*Session),
	}, nil
}

// NewSession opens a fresh browser tab and registers it under a unique id.
func (m *Manager) NewSession(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, fmt.Errorf("browser manager is shut down")
	}

	sessionCtx, sessionCancel := chromedp.NewContext(m.allocCtx)

	// Force the browser to actually start so failures surface here rather than
	// on the first navigation.
	if err := chromedp.Run(sessionCtx); err != nil {
		sessionCancel()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	id := uuid.NewString()
	session := &Session{
		id:     id,
		ctx:    sessionCtx,
		cancel: sessionCancel,
		cfg:    m.cfg,
		logger: m.logger.Named("session").With(zap.String("session_id", id)),
		onClose: func() {
			m.mu.Lock()
			delete(m.sessions, id)
			m.mu.Unlock()
		},
	}
	m.sessions[id] = session

	m.logger.Debug("Browser session created.", zap.String("session_id", id))
	return session, nil
}

// Shutdown closes every live session and tears down the browser process,
// bounded by the given context.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.cancel()
	}

	// chromedp.Cancel blocks until the browser process exits; respect the
	// caller's deadline.
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Cancel(m.allocCtx)
	}()
	select {
	case err := <-done:
		m.allocCancel()
		if err != nil && err != context.Canceled {
			return fmt.Errorf("browser shutdown failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		m.allocCancel()
		m.logger.Warn("Browser shutdown timed out; forcing allocator cancel.")
		return ctx.Err()
	case <-time.After(30 * time.Second):
		m.allocCancel()
		m.logger.Warn("Browser shutdown exceeded 30s; forcing allocator cancel.")
		return nil
	}
}
