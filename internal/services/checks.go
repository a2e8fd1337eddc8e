package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/themizzi/saucecheck/internal/browser"
	"github.com/themizzi/saucecheck/internal/pages"
)

// slowLoginTimeout bounds the listing wait for accounts that are known to be slow
const slowLoginTimeout = 10 * time.Second

func (s *CheckServiceImpl) registry() []Check {
	return []Check{
		{Name: "login", Description: "standard user reaches the product listing", run: s.checkLogin},
		{Name: "lockout", Description: "locked out user stays on the login page and sees an error", run: s.checkLockout},
		{Name: "accounts", Description: "every allowed account reaches the product listing", run: s.checkAccounts},
		{Name: "listing", Description: "product listing matches the catalog and reads the same twice", run: s.checkListing},
		{Name: "counter", Description: "cart badge counts added products and disappears when empty", run: s.checkCounter},
		{Name: "cart", Description: "each product added on the listing shows up once in the cart", run: s.checkCart},
		{Name: "menu", Description: "menu opens and closes and its links navigate", run: s.checkMenu},
	}
}

func (s *CheckServiceImpl) login(ctx context.Context, drv browser.Driver) error {
	return pages.LoginAs(ctx, drv, s.baseURL, s.creds.StandardUser, s.creds.Password)
}

func (s *CheckServiceImpl) checkLogin(ctx context.Context, drv browser.Driver) error {
	if err := s.login(ctx, drv); err != nil {
		return err
	}
	hasErr, err := pages.HasLoginError(ctx, drv)
	if err != nil {
		return err
	}
	if hasErr {
		return mismatch("login error shown after a successful login")
	}
	return nil
}

func (s *CheckServiceImpl) checkLockout(ctx context.Context, drv browser.Driver) error {
	if err := pages.Login(ctx, drv, s.baseURL, s.creds.LockedUser, s.creds.Password); err != nil {
		return err
	}

	err := pages.VerifyLoggedIn(ctx, drv)
	switch {
	case err == nil:
		return mismatch("locked out user %q reached the product listing", s.creds.LockedUser)
	case !errors.Is(err, browser.ErrTimeout):
		return err
	}

	hasErr, err := pages.HasLoginError(ctx, drv)
	if err != nil {
		return err
	}
	if !hasErr {
		return mismatch("no login error shown for %q", s.creds.LockedUser)
	}
	return nil
}

func (s *CheckServiceImpl) checkAccounts(ctx context.Context, drv browser.Driver) error {
	for _, user := range s.creds.AllowedUsers() {
		if err := pages.Login(ctx, drv, s.baseURL, user, s.creds.Password); err != nil {
			return err
		}
		if err := pages.VerifyArrivedAt(ctx, drv, pages.ProductListing, slowLoginTimeout); err != nil {
			return fmt.Errorf("%s: %w", user, err)
		}
		if err := pages.NewMenu(drv).Logout().Navigate(ctx); err != nil {
			return fmt.Errorf("%s: %w", user, err)
		}
		if err := pages.VerifyArrivedAt(ctx, drv, pages.LoginPage, 0); err != nil {
			return fmt.Errorf("%s: %w", user, err)
		}
	}
	return nil
}

func (s *CheckServiceImpl) checkListing(ctx context.Context, drv browser.Driver) error {
	if err := s.login(ctx, drv); err != nil {
		return err
	}

	first, err := pages.ReadProductListing(ctx, drv)
	if err != nil {
		return err
	}
	if len(first) != s.catalog.Len() {
		return mismatch("listing shows %d products, catalog has %d", len(first), s.catalog.Len())
	}
	for _, snap := range first {
		want, err := s.catalog.Lookup(snap.BaseID)
		if err != nil {
			return err
		}
		if !snap.Price.Equal(want.Price) {
			return mismatch("%s priced %s, catalog says %s", snap.BaseID, snap.Price.Display(), want.Price.Display())
		}
		if !snap.Button.CanAdd {
			return mismatch("%s shows %q on a fresh session", snap.BaseID, snap.Button.RawID)
		}
	}

	second, err := pages.ReadProductListing(ctx, drv)
	if err != nil {
		return err
	}
	if len(second) != len(first) {
		return mismatch("second read shows %d products, first showed %d", len(second), len(first))
	}
	for _, snap := range second {
		prev, ok := pages.FindSnapshot(first, snap.BaseID)
		if !ok || !prev.Price.Equal(snap.Price) {
			return mismatch("%s changed between two reads", snap.BaseID)
		}
	}
	return nil
}

func (s *CheckServiceImpl) checkCounter(ctx context.Context, drv browser.Driver) error {
	if err := s.login(ctx, drv); err != nil {
		return err
	}

	products := s.catalog.Products()
	for i, p := range products {
		if err := pages.AddToCart(ctx, drv, p.BaseID); err != nil {
			return err
		}
		if err := expectBadge(ctx, drv, i+1); err != nil {
			return err
		}
	}

	for i, p := range products {
		if err := pages.RemoveFromCart(ctx, drv, p.BaseID); err != nil {
			return err
		}
		if err := expectBadge(ctx, drv, len(products)-i-1); err != nil {
			return err
		}
	}
	return nil
}

// expectBadge checks the cart counter; want zero means the badge must be absent
func expectBadge(ctx context.Context, drv browser.Finder, want int) error {
	count, present, err := pages.CartBadge(ctx, drv)
	if err != nil {
		return err
	}
	switch {
	case want == 0 && present:
		return mismatch("cart badge shows %d on an empty cart", count)
	case want > 0 && !present:
		return mismatch("cart badge missing, want %d", want)
	case count != want:
		return mismatch("cart badge shows %d, want %d", count, want)
	}
	return nil
}

func (s *CheckServiceImpl) checkCart(ctx context.Context, drv browser.Driver) error {
	if err := s.login(ctx, drv); err != nil {
		return err
	}
	menu := pages.NewMenu(drv)

	for _, p := range s.catalog.Products() {
		listing, err := pages.ReadProductListing(ctx, drv)
		if err != nil {
			return err
		}
		listed, ok := pages.FindSnapshot(listing, p.BaseID)
		if !ok {
			return mismatch("%s is not on the listing", p.BaseID)
		}

		if err := pages.AddToCart(ctx, drv, p.BaseID); err != nil {
			return err
		}
		if err := menu.Cart().Navigate(ctx); err != nil {
			return err
		}
		if err := pages.VerifyArrivedAt(ctx, drv, pages.ShoppingCart, 0); err != nil {
			return err
		}

		cart, err := pages.ReadCartContents(ctx, drv)
		if err != nil {
			return err
		}
		if len(cart) != 1 {
			return mismatch("cart holds %d rows after adding %s", len(cart), p.BaseID)
		}
		row := cart[0]
		if row.BaseID != p.BaseID || row.Quantity != 1 || !row.Price.Equal(listed.Price) {
			return mismatch("cart row %s x%d at %s, want %s x1 at %s",
				row.BaseID, row.Quantity, row.Price.Display(), p.BaseID, listed.Price.Display())
		}

		if err := row.Control.Click(ctx); err != nil {
			return fmt.Errorf("failed to remove %s from cart: %w", p.BaseID, err)
		}
		if err := expectBadge(ctx, drv, 0); err != nil {
			return err
		}

		if err := drv.Back(ctx); err != nil {
			return err
		}
		if err := pages.VerifyArrivedAt(ctx, drv, pages.ProductListing, 0); err != nil {
			return err
		}
		if _, err := pages.WaitForControl(ctx, drv, p.AddControlID()); err != nil {
			return err
		}
	}
	return nil
}

func (s *CheckServiceImpl) checkMenu(ctx context.Context, drv browser.Driver) error {
	if err := s.login(ctx, drv); err != nil {
		return err
	}
	menu := pages.NewMenu(drv)

	if err := expectMenu(ctx, menu, false); err != nil {
		return err
	}
	if err := menu.Open(ctx); err != nil {
		return err
	}
	if err := expectMenu(ctx, menu, true); err != nil {
		return err
	}
	if err := menu.Close(ctx); err != nil {
		return err
	}
	if err := expectMenu(ctx, menu, false); err != nil {
		return err
	}

	if err := menu.Cart().Navigate(ctx); err != nil {
		return err
	}
	if err := pages.VerifyArrivedAt(ctx, drv, pages.ShoppingCart, 0); err != nil {
		return err
	}
	if err := menu.Inventory().Navigate(ctx); err != nil {
		return err
	}
	return pages.VerifyArrivedAt(ctx, drv, pages.ProductListing, 0)
}

func expectMenu(ctx context.Context, menu *pages.Menu, want bool) error {
	open, err := menu.IsOpen(ctx)
	if err != nil {
		return err
	}
	if open != want {
		return mismatch("menu open = %v, want %v", open, want)
	}
	return nil
}
