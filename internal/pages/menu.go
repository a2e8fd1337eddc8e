package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/themizzi/saucecheck/internal/browser"
)

// MenuTimeout bounds the wait for the menu to slide open or shut
const MenuTimeout = 500 * time.Millisecond

// ErrUnboundLink is returned by Link.Navigate for a link not obtained from a Menu
var ErrUnboundLink = errors.New("link is not bound to a page")

// Menu controls the slide-out navigation menu present on logged-in pages
type Menu struct {
	drv browser.Finder
}

// NewMenu returns the menu controller for the page behind drv
func NewMenu(drv browser.Finder) *Menu {
	return &Menu{drv: drv}
}

// IsOpen reports whether the menu is open, read from aria-hidden on the menu wrapper
func (m *Menu) IsOpen(ctx context.Context) (bool, error) {
	wrap, err := m.drv.Find(ctx, MenuWrap)
	if err != nil {
		return false, err
	}
	hidden, err := wrap.Attribute(ctx, "aria-hidden")
	if err != nil {
		return false, err
	}
	return hidden != "true", nil
}

// Open clicks the burger button and waits for the close button to show.
// It does not check the current state; use EnsureOpen for that.
func (m *Menu) Open(ctx context.Context) error {
	burger, err := browser.WaitFor(ctx, m.drv, MenuButton, ControlTimeout)
	if err != nil {
		return err
	}
	if err := burger.Click(ctx); err != nil {
		return fmt.Errorf("failed to open menu: %w", err)
	}
	cross, err := browser.WaitFor(ctx, m.drv, MenuCloseButton, MenuTimeout)
	if err != nil {
		return err
	}
	return browser.WaitVisible(ctx, cross, "menu close button", MenuTimeout)
}

// Close waits for the close button to show, clicks it and waits for the
// menu to report hidden
func (m *Menu) Close(ctx context.Context) error {
	cross, err := browser.WaitFor(ctx, m.drv, MenuCloseButton, MenuTimeout)
	if err != nil {
		return err
	}
	if err := browser.WaitVisible(ctx, cross, "menu close button", MenuTimeout); err != nil {
		return err
	}
	if err := cross.Click(ctx); err != nil {
		return fmt.Errorf("failed to close menu: %w", err)
	}
	wrap, err := m.drv.Find(ctx, MenuWrap)
	if err != nil {
		return err
	}
	return browser.WaitAttribute(ctx, wrap, "aria-hidden", "true", MenuTimeout)
}

// Toggle opens a closed menu and closes an open one
func (m *Menu) Toggle(ctx context.Context) error {
	open, err := m.IsOpen(ctx)
	if err != nil {
		return err
	}
	if open {
		return m.Close(ctx)
	}
	return m.Open(ctx)
}

// EnsureOpen opens the menu unless it is already open
func (m *Menu) EnsureOpen(ctx context.Context) error {
	open, err := m.IsOpen(ctx)
	if err != nil {
		return err
	}
	if open {
		return nil
	}
	return m.Open(ctx)
}

// EnsureClosed closes the menu unless it is already closed
func (m *Menu) EnsureClosed(ctx context.Context) error {
	open, err := m.IsOpen(ctx)
	if err != nil {
		return err
	}
	if !open {
		return nil
	}
	return m.Close(ctx)
}

// Link is a navigation destination. Links inside the menu open it first.
// Obtain links from a Menu; a zero Link cannot navigate.
type Link struct {
	Name     string
	Selector browser.Selector
	InMenu   bool
	// Timeout bounds the wait for the control to become enabled; zero means ControlTimeout.
	Timeout time.Duration

	menu *Menu
}

// Navigate activates the link once its control is enabled
func (l Link) Navigate(ctx context.Context) error {
	if l.menu == nil || l.menu.drv == nil {
		return fmt.Errorf("%w: %s", ErrUnboundLink, l.Name)
	}
	if l.InMenu {
		if err := l.menu.EnsureOpen(ctx); err != nil {
			return fmt.Errorf("%s: %w", l.Name, err)
		}
	}

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = ControlTimeout
	}
	el, err := browser.WaitFor(ctx, l.menu.drv, l.Selector, timeout)
	if err != nil {
		return fmt.Errorf("%s: %w", l.Name, err)
	}
	if err := browser.WaitEnabled(ctx, el, l.Name, timeout); err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("failed to click %s: %w", l.Name, err)
	}
	return nil
}

func (m *Menu) link(name string, sel browser.Selector, inMenu bool) Link {
	return Link{Name: name, Selector: sel, InMenu: inMenu, menu: m}
}

// Inventory links to the product listing
func (m *Menu) Inventory() Link { return m.link("all items", InventoryLink, true) }

// About links to the vendor's about page
func (m *Menu) About() Link { return m.link("about", AboutLink, true) }

// Logout ends the session and returns to the login page
func (m *Menu) Logout() Link { return m.link("logout", LogoutLink, true) }

// ResetAppState empties the cart without leaving the page
func (m *Menu) ResetAppState() Link { return m.link("reset app state", ResetLink, true) }

// Cart is the cart icon in the page header
func (m *Menu) Cart() Link { return m.link("cart", CartLink, false) }

// Links returns every destination
func (m *Menu) Links() []Link {
	return []Link{m.Inventory(), m.About(), m.Logout(), m.ResetAppState(), m.Cart()}
}
