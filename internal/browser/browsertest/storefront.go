// Package browsertest provides an in-memory fake of the demo storefront that
// implements browser.Driver, so page objects can be exercised without a browser.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/themizzi/saucecheck/internal/browser"
	"github.com/themizzi/saucecheck/internal/models"
)

// BaseURL is the address the fake storefront answers on
const BaseURL = "https://fake.saucedemo.test/"

// Page names reported by Tab.Page
const (
	PageBlank     = "blank"
	PageLogin     = "login"
	PageInventory = "inventory"
	PageCart      = "cart"
	PageAbout     = "about"
)

// Login error banners rendered by the storefront
const (
	LockedOutMessage   = "Epic sadface: Sorry, this user has been locked out."
	BadPasswordMessage = "Epic sadface: Username and password do not match any user in this service"
)

// Site is the server side of the fake: products, accounts and fault knobs.
// Every Open starts a fresh browser tab with its own cart.
type Site struct {
	Products    []models.ProductRecord
	Password    string
	Users       []string
	LockedUsers []string

	// PriceText overrides the rendered price text for a product id.
	PriceText map[string]string
	// DisabledLinks lists menu link ids that never become enabled.
	DisabledLinks []string
	// QuantityText overrides the quantity shown on a cart row for a product id.
	QuantityText map[string]string
	// CartAddControl lists product ids whose cart row button carries an add id.
	CartAddControl []string

	mu       sync.Mutex
	launched int
	closed   int
}

// NewSite returns a site selling the default catalog with the demo accounts
func NewSite() *Site {
	return &Site{
		Products:    models.MustDefaultCatalog().Products(),
		Password:    "secret_sauce",
		Users:       []string{"standard_user", "problem_user", "performance_glitch_user"},
		LockedUsers: []string{"locked_out_user"},
	}
}

// Open starts a new tab on a blank page
func (s *Site) Open() *Tab {
	s.mu.Lock()
	s.launched++
	s.mu.Unlock()
	return &Tab{site: s, page: PageBlank, fields: map[string]string{}}
}

// Launcher returns a browser.LaunchFunc that opens tabs on this site
func (s *Site) Launcher(log *zap.Logger) browser.LaunchFunc {
	return func(ctx context.Context) (*browser.Session, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return browser.NewSession("fake", s.Open(), log), nil
	}
}

// Launched reports how many tabs were opened
func (s *Site) Launched() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.launched
}

// Closed reports how many tabs were closed
func (s *Site) Closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Tab is one browser tab on the fake site. It implements browser.Driver.
type Tab struct {
	site *Site

	mu       sync.Mutex
	page     string
	gen      int
	history  []string
	loggedIn bool
	cart     []string
	menuOpen bool
	loginErr string
	fields   map[string]string
	closed   bool

	// Clicks records the id of every clicked element in order.
	Clicks []string
}

var _ browser.Driver = (*Tab)(nil)

// Page reports the page currently shown
func (t *Tab) Page() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

// Cart returns the product ids in the cart in insertion order
func (t *Tab) Cart() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.cart...)
}

// MenuOpen reports whether the slide-out menu is open
func (t *Tab) MenuOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.menuOpen
}

// Navigate loads a storefront url. Pages behind the login bounce to the login page.
func (t *Tab) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.New("page is closed")
	}
	if !strings.HasPrefix(url, BaseURL) {
		return fmt.Errorf("net::ERR_NAME_NOT_RESOLVED at %s", url)
	}

	switch strings.TrimPrefix(url, BaseURL) {
	case "", "index.html":
		t.loginErr = ""
		t.fields = map[string]string{}
		t.goTo(PageLogin)
	case "inventory.html":
		t.guarded(PageInventory)
	case "cart.html":
		t.guarded(PageCart)
	default:
		return fmt.Errorf("404 for %s", url)
	}
	return nil
}

// Back returns to the previous page
func (t *Tab) Back(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.New("page is closed")
	}
	if len(t.history) == 0 {
		return nil
	}
	prev := t.history[len(t.history)-1]
	t.history = t.history[:len(t.history)-1]
	t.page = prev
	t.gen++
	t.menuOpen = false
	return nil
}

// Find returns the first element on the current page matching sel
func (t *Tab) Find(ctx context.Context, sel browser.Selector) (browser.Element, error) {
	return t.root().Find(ctx, sel)
}

// FindAll returns all elements on the current page matching sel
func (t *Tab) FindAll(ctx context.Context, sel browser.Selector) ([]browser.Element, error) {
	return t.root().FindAll(ctx, sel)
}

// Close closes the tab
func (t *Tab) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.New("page is already closed")
	}
	t.closed = true
	t.site.mu.Lock()
	t.site.closed++
	t.site.mu.Unlock()
	return nil
}

func (t *Tab) root() *node {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.render()
	n.tab, n.gen = t, t.gen
	return n
}

// goTo must be called with mu held
func (t *Tab) goTo(page string) {
	if t.page != page {
		t.history = append(t.history, t.page)
	}
	t.page = page
	t.gen++
	t.menuOpen = false
}

func (t *Tab) guarded(page string) {
	if t.loggedIn {
		t.goTo(page)
		return
	}
	t.loginErr = fmt.Sprintf("Epic sadface: You can only access '/%s' when you are logged in.", page)
	t.goTo(PageLogin)
}

func (t *Tab) submitLogin() {
	user, password := t.fields["user-name"], t.fields["password"]
	switch {
	case contains(t.site.LockedUsers, user) && password == t.site.Password:
		t.loginErr = LockedOutMessage
	case contains(t.site.Users, user) && password == t.site.Password:
		t.loginErr = ""
		t.loggedIn = true
		t.goTo(PageInventory)
	default:
		t.loginErr = BadPasswordMessage
	}
}

func (t *Tab) inCart(id string) bool {
	return contains(t.cart, id)
}

func (t *Tab) toggleCart(id string) {
	if !t.inCart(id) {
		t.cart = append(t.cart, id)
		return
	}
	kept := t.cart[:0]
	for _, c := range t.cart {
		if c != id {
			kept = append(kept, c)
		}
	}
	t.cart = kept
}

func (t *Tab) product(id string) (models.ProductRecord, bool) {
	for _, p := range t.site.Products {
		if p.BaseID == id {
			return p, true
		}
	}
	return models.ProductRecord{}, false
}

func (t *Tab) priceText(p models.ProductRecord) string {
	if s, ok := t.site.PriceText[p.BaseID]; ok {
		return s
	}
	return p.Price.Display()
}

func (t *Tab) quantityText(id string) string {
	if s, ok := t.site.QuantityText[id]; ok {
		return s
	}
	return "1"
}

func (t *Tab) cartControlID(id string) string {
	if contains(t.site.CartAddControl, id) {
		return models.AddControlPrefix + id
	}
	return models.RemoveControlPrefix + id
}
