package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ActionTimeout bounds playwright's own actionability waits on a located
// element (reading text, clicking). Presence waits go through WaitUntil.
const ActionTimeout = 5 * time.Second

// PlaywrightDriver drives one playwright page
type PlaywrightDriver struct {
	page playwright.Page
}

// NewPlaywrightDriver wraps an open page
func NewPlaywrightDriver(page playwright.Page) *PlaywrightDriver {
	page.SetDefaultTimeout(float64(ActionTimeout.Milliseconds()))
	return &PlaywrightDriver{page: page}
}

// LaunchPlaywright starts playwright, launches the configured browser and
// opens a page in it
func LaunchPlaywright(ctx context.Context, cfg Config, log *zap.Logger) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := playwrightBrowserType(pw, cfg.Name)
	if err != nil {
		pw.Stop()
		return nil, err
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	if cfg.SlowMo > 0 {
		opts.SlowMo = playwright.Float(float64(cfg.SlowMo.Milliseconds()))
	}

	br, err := browserType.Launch(opts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", browserType.Name(), err)
	}

	page, err := br.NewPage()
	if err != nil {
		br.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return NewSession(EnginePlaywright, NewPlaywrightDriver(page), log, pw.Stop, func() error { return br.Close() }), nil
}

func playwrightBrowserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case "", "chromium":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("%w: browser %q", ErrUnsupported, name)
	}
}

// Navigate loads url and waits for the load event
func (d *PlaywrightDriver) Navigate(ctx context.Context, url string) error {
	// playwright calls are not cancellable, so race them against ctx
	errChan := make(chan error, 1)
	go func() {
		_, err := d.page.Goto(url)
		errChan <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("failed to navigate to %s: %w", url, err)
		}
		return nil
	}
}

// Back goes one step back in history
func (d *PlaywrightDriver) Back(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := d.page.GoBack()
	return err
}

// Find returns the first element matching sel
func (d *PlaywrightDriver) Find(ctx context.Context, sel Selector) (Element, error) {
	return findFirst(ctx, d.page.Locator(sel.CSS()), sel)
}

// FindAll returns every element matching sel in document order
func (d *PlaywrightDriver) FindAll(ctx context.Context, sel Selector) ([]Element, error) {
	return findAll(ctx, d.page.Locator(sel.CSS()))
}

// Close closes the page
func (d *PlaywrightDriver) Close() error {
	return d.page.Close()
}

type playwrightElement struct {
	loc playwright.Locator
}

func findFirst(ctx context.Context, loc playwright.Locator, sel Selector) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := loc.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, notFound(sel)
	}
	return &playwrightElement{loc: loc.First()}, nil
}

func findAll(ctx context.Context, loc playwright.Locator) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locs, err := loc.All()
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(locs))
	for _, l := range locs {
		out = append(out, &playwrightElement{loc: l})
	}
	return out, nil
}

// actionTimeout caps playwright's own wait at whatever is left of ctx's
// deadline, in milliseconds. Playwright treats zero as no limit, so the cap
// never drops below one millisecond.
func actionTimeout(ctx context.Context) *float64 {
	d := ActionTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < d {
			d = left
		}
	}
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return playwright.Float(float64(d.Milliseconds()))
}

func (e *playwrightElement) Find(ctx context.Context, sel Selector) (Element, error) {
	return findFirst(ctx, e.loc.Locator(sel.CSS()), sel)
}

func (e *playwrightElement) FindAll(ctx context.Context, sel Selector) ([]Element, error) {
	return findAll(ctx, e.loc.Locator(sel.CSS()))
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: actionTimeout(ctx)})
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: actionTimeout(ctx)})
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Click()
}

func (e *playwrightElement) Fill(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Fill(value)
}

func (e *playwrightElement) Press(ctx context.Context, key Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Press(string(key))
}

func (e *playwrightElement) IsEnabled(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return e.loc.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: actionTimeout(ctx)})
}

func (e *playwrightElement) IsVisible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return e.loc.IsVisible()
}
