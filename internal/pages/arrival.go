package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/themizzi/saucecheck/internal/browser"
)

// ArrivalTimeout is the default bound for VerifyArrivedAt
const ArrivalTimeout = 500 * time.Millisecond

// ErrUnknownPage is returned for a PageID with no signature element
var ErrUnknownPage = errors.New("unknown page")

// PageID names a storefront page
type PageID string

const (
	ProductListing PageID = "product-listing"
	ShoppingCart   PageID = "shopping-cart"
	LoginPage      PageID = "login"
)

var signatures = map[PageID]browser.Selector{
	ProductListing: InventoryContainer,
	ShoppingCart:   CartContainer,
	LoginPage:      LoginButton,
}

// Signature returns the element whose presence confirms arrival at page
func Signature(page PageID) (browser.Selector, error) {
	sel, ok := signatures[page]
	if !ok {
		return browser.Selector{}, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	return sel, nil
}

// VerifyArrivedAt blocks until the page's signature element is present.
// A timeout of zero or less means ArrivalTimeout.
func VerifyArrivedAt(ctx context.Context, drv browser.Finder, page PageID, timeout time.Duration) error {
	sel, err := Signature(page)
	if err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = ArrivalTimeout
	}
	if _, err := browser.WaitFor(ctx, drv, sel, timeout); err != nil {
		return fmt.Errorf("not at %s: %w", page, err)
	}
	return nil
}
