package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/themizzi/saucecheck/internal/browser"
	"github.com/themizzi/saucecheck/internal/config"
	"github.com/themizzi/saucecheck/internal/models"
)

// Check errors
var (
	ErrMismatch     = errors.New("storefront does not match expectation")
	ErrUnknownCheck = errors.New("unknown check")
)

// Check is one named storefront verification run in its own browser session
type Check struct {
	Name        string
	Description string
	run         func(ctx context.Context, drv browser.Driver) error
}

// Result is the outcome of one check
type Result struct {
	Check     string
	SessionID string
	Duration  time.Duration
	Err       error
}

// Passed reports whether the check succeeded
func (r Result) Passed() bool { return r.Err == nil }

// Report collects the results of a run in execution order
type Report struct {
	Results []Result
}

// Passed reports whether every check succeeded
func (r *Report) Passed() bool {
	return r.Err() == nil
}

// Failed returns the failed results
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err combines the errors of every failed check
func (r *Report) Err() error {
	var err error
	for _, res := range r.Results {
		if res.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", res.Check, res.Err))
		}
	}
	return err
}

// CheckService runs storefront checks
type CheckService interface {
	Checks() []Check
	Run(ctx context.Context, names ...string) (*Report, error)
}

// CheckServiceImpl implements CheckService
type CheckServiceImpl struct {
	launch  browser.LaunchFunc
	baseURL string
	creds   *config.Credentials
	catalog *models.Catalog
	log     *zap.Logger
	checks  []Check
}

// NewCheckService creates a check service that opens a fresh session per check
func NewCheckService(launch browser.LaunchFunc, baseURL string, creds *config.Credentials, catalog *models.Catalog, log *zap.Logger) CheckService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CheckServiceImpl{
		launch:  launch,
		baseURL: baseURL,
		creds:   creds,
		catalog: catalog,
		log:     log,
	}
	s.checks = s.registry()
	return s
}

// Checks returns the available checks in run order
func (s *CheckServiceImpl) Checks() []Check {
	return append([]Check(nil), s.checks...)
}

// Run runs the named checks, or every check when names is empty. Each check
// gets its own session, closed whether or not the check passes. Unknown
// names fail before any browser is launched.
func (s *CheckServiceImpl) Run(ctx context.Context, names ...string) (*Report, error) {
	selected, err := s.selectChecks(names)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, c := range selected {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Results = append(report.Results, s.runOne(ctx, c))
	}
	return report, nil
}

func (s *CheckServiceImpl) selectChecks(names []string) ([]Check, error) {
	if len(names) == 0 {
		return s.Checks(), nil
	}
	byName := make(map[string]Check, len(s.checks))
	for _, c := range s.checks {
		byName[c.Name] = c
	}
	selected := make([]Check, 0, len(names))
	for _, n := range names {
		c, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, n)
		}
		selected = append(selected, c)
	}
	return selected, nil
}

func (s *CheckServiceImpl) runOne(ctx context.Context, c Check) Result {
	res := Result{Check: c.Name}
	start := time.Now()
	s.log.Info("check started", zap.String("check", c.Name))

	res.Err = browser.WithSession(ctx, s.launch, func(sess *browser.Session) error {
		res.SessionID = sess.ID
		return c.run(ctx, sess.Driver)
	})
	res.Duration = time.Since(start)

	fields := []zap.Field{
		zap.String("check", c.Name),
		zap.String("session", res.SessionID),
		zap.Duration("duration", res.Duration),
	}
	if res.Err != nil {
		s.log.Error("check failed", append(fields, zap.Error(res.Err))...)
	} else {
		s.log.Info("check passed", fields...)
	}
	return res
}

func mismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMismatch, fmt.Sprintf(format, args...))
}
