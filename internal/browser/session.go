package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Supported engines
const (
	EnginePlaywright = "playwright"
	EngineRod        = "rod"
)

// Config selects and tunes the browser engine
type Config struct {
	Engine     string
	Name       string // chromium, firefox or webkit
	Headless   bool
	SlowMo     time.Duration
	ControlURL string // rod only: connect to a running browser instead of launching one
	Stealth    bool   // rod only: open pages with the stealth evasions applied
}

// Session is one browser instance with a single open page. It is owned by
// exactly one test case or check and must be closed on every exit path.
type Session struct {
	ID     string
	Engine string
	Driver Driver

	log     *zap.Logger
	release []func() error
	closed  bool
	opened  time.Time
}

// LaunchFunc opens a new session
type LaunchFunc func(ctx context.Context) (*Session, error)

// NewSession wraps an open driver. release funcs run in reverse order on
// Close, after the driver itself is closed.
func NewSession(engine string, drv Driver, log *zap.Logger, release ...func() error) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		ID:      uuid.NewString(),
		Engine:  engine,
		Driver:  drv,
		release: release,
		opened:  time.Now(),
	}
	s.log = log.With(zap.String("session", s.ID), zap.String("engine", engine))
	s.log.Debug("session opened")
	return s
}

// Close shuts the page and the browser. Calling it twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.Driver != nil {
		err = multierr.Append(err, s.Driver.Close())
	}
	for i := len(s.release) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.release[i]())
	}

	if err != nil {
		s.log.Warn("session closed with errors", zap.Error(err), zap.Duration("lifetime", time.Since(s.opened)))
		return fmt.Errorf("failed to close session %s: %w", s.ID, err)
	}
	s.log.Debug("session closed", zap.Duration("lifetime", time.Since(s.opened)))
	return nil
}

// NewLauncher returns a LaunchFunc for the configured engine
func NewLauncher(cfg Config, log *zap.Logger) (LaunchFunc, error) {
	switch cfg.Engine {
	case EnginePlaywright, "":
		return func(ctx context.Context) (*Session, error) {
			return LaunchPlaywright(ctx, cfg, log)
		}, nil
	case EngineRod:
		if cfg.Name != "" && cfg.Name != "chromium" {
			return nil, fmt.Errorf("%w: rod drives chromium only, got %q", ErrUnsupported, cfg.Name)
		}
		return func(ctx context.Context) (*Session, error) {
			return LaunchRod(ctx, cfg, log)
		}, nil
	default:
		return nil, fmt.Errorf("%w: engine %q", ErrUnsupported, cfg.Engine)
	}
}

// WithSession opens a session, runs fn and always closes the session.
// A close failure is joined with fn's error rather than replacing it.
func WithSession(ctx context.Context, launch LaunchFunc, fn func(*Session) error) (err error) {
	s, err := launch(ctx)
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		err = multierr.Append(err, s.Close())
	}()

	return fn(s)
}
