package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"go.uber.org/zap"
)

var rodKeys = map[Key]input.Key{
	KeyEnter: input.Enter,
}

// RodDriver drives one rod page over the DevTools protocol
type RodDriver struct {
	page *rod.Page
}

// NewRodDriver wraps an open page
func NewRodDriver(page *rod.Page) *RodDriver {
	return &RodDriver{page: page}
}

// LaunchRod launches a local Chrome (or connects to cfg.ControlURL) and opens a blank page
func LaunchRod(ctx context.Context, cfg Config, log *zap.Logger) (*Session, error) {
	var release []func() error

	controlURL := cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(cfg.Headless)
		u, err := l.Context(ctx).Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch chrome: %w", err)
		}
		controlURL = u
		release = append(release, func() error {
			l.Kill()
			l.Cleanup()
			return nil
		})
	}

	b := rod.New().ControlURL(controlURL)
	if cfg.SlowMo > 0 {
		b = b.SlowMotion(cfg.SlowMo)
	}
	err := b.Connect()
	if err != nil {
		runAll(release)
		return nil, fmt.Errorf("failed to connect to %s: %w", controlURL, err)
	}
	release = append(release, b.Close)

	var page *rod.Page
	if cfg.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		runAll(release)
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return NewSession(EngineRod, NewRodDriver(page), log, release...), nil
}

func runAll(fns []func() error) {
	for i := len(fns) - 1; i >= 0; i-- {
		_ = fns[i]()
	}
}

// Navigate loads url and waits for the load event
func (d *RodDriver) Navigate(ctx context.Context, url string) error {
	p := d.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return p.WaitLoad()
}

// Back goes one step back in history
func (d *RodDriver) Back(ctx context.Context) error {
	return d.page.Context(ctx).NavigateBack()
}

// Find returns the first element matching sel
func (d *RodDriver) Find(ctx context.Context, sel Selector) (Element, error) {
	els, err := d.page.Context(ctx).Elements(sel.CSS())
	return firstRod(els, err, sel)
}

// FindAll returns every element matching sel in document order
func (d *RodDriver) FindAll(ctx context.Context, sel Selector) ([]Element, error) {
	els, err := d.page.Context(ctx).Elements(sel.CSS())
	return allRod(els, err)
}

// Close closes the page
func (d *RodDriver) Close() error {
	return d.page.Close()
}

type rodElement struct {
	el *rod.Element
}

func firstRod(els rod.Elements, err error, sel Selector) (Element, error) {
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, notFound(sel)
	}
	return &rodElement{el: els.First()}, nil
}

func allRod(els rod.Elements, err error) ([]Element, error) {
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out, nil
}

func (e *rodElement) Find(ctx context.Context, sel Selector) (Element, error) {
	els, err := e.el.Context(ctx).Elements(sel.CSS())
	return firstRod(els, err, sel)
}

func (e *rodElement) FindAll(ctx context.Context, sel Selector) ([]Element, error) {
	els, err := e.el.Context(ctx).Elements(sel.CSS())
	return allRod(els, err)
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *rodElement) Attribute(ctx context.Context, name string) (string, error) {
	v, err := e.el.Context(ctx).Attribute(name)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

func (e *rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Fill(ctx context.Context, value string) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(value)
}

func (e *rodElement) Press(ctx context.Context, key Key) error {
	k, ok := rodKeys[key]
	if !ok {
		return fmt.Errorf("%w: key %q", ErrUnsupported, key)
	}
	return e.el.Context(ctx).Type(k)
}

func (e *rodElement) IsEnabled(ctx context.Context) (bool, error) {
	disabled, err := e.el.Context(ctx).Property("disabled")
	if err != nil {
		return false, err
	}
	return !disabled.Bool(), nil
}

func (e *rodElement) IsVisible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}
