package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/themizzi/saucecheck/internal/browser"
	"github.com/themizzi/saucecheck/internal/models"
)

// ControlTimeout bounds waits on product and menu controls
const ControlTimeout = 1000 * time.Millisecond

// ProductSnapshot is a point-in-time read of one product row.
// Quantity is only set for cart rows.
type ProductSnapshot struct {
	BaseID   string
	Title    string
	Price    models.Price
	Quantity int
	Control  browser.Element
	Button   models.ButtonDescriptor
}

// ReadProductListing reads every product on the listing page in page order.
// An empty listing is not an error.
func ReadProductListing(ctx context.Context, drv browser.Finder) ([]ProductSnapshot, error) {
	return readRows(ctx, drv, InventoryItem, InventoryButton, false)
}

// ReadCartContents reads every cart row in page order. Each row must carry a
// quantity of at least one and a remove control.
func ReadCartContents(ctx context.Context, drv browser.Finder) ([]ProductSnapshot, error) {
	return readRows(ctx, drv, CartItem, CartButton, true)
}

func readRows(ctx context.Context, drv browser.Finder, row, control browser.Selector, cart bool) ([]ProductSnapshot, error) {
	rows, err := drv.FindAll(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", row, err)
	}

	snaps := make([]ProductSnapshot, 0, len(rows))
	for i, r := range rows {
		snap, err := readRow(ctx, r, control, cart)
		if err != nil {
			return nil, fmt.Errorf("%s #%d: %w", row, i, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func readRow(ctx context.Context, row browser.Element, control browser.Selector, cart bool) (ProductSnapshot, error) {
	var snap ProductSnapshot

	name, err := childText(ctx, row, ItemName)
	if err != nil {
		return snap, err
	}
	snap.Title = name

	priceText, err := childText(ctx, row, ItemPrice)
	if err != nil {
		return snap, err
	}
	if snap.Price, err = models.ParsePrice(priceText); err != nil {
		return snap, err
	}

	if snap.Control, err = row.Find(ctx, control); err != nil {
		return snap, err
	}
	id, err := snap.Control.Attribute(ctx, "id")
	if err != nil {
		return snap, fmt.Errorf("failed to read control id: %w", err)
	}
	if snap.Button, err = models.ParseButtonID(id); err != nil {
		return snap, err
	}
	snap.BaseID = snap.Button.BaseID

	if !cart {
		return snap, nil
	}
	if !snap.Button.CanRemove {
		return snap, fmt.Errorf("%w: cart row control %q is not a remove control", models.ErrMalformedIdentifier, id)
	}
	qty, err := childText(ctx, row, CartQuantity)
	if err != nil {
		return snap, err
	}
	if snap.Quantity, err = models.ParseQuantity(qty); err != nil {
		return snap, err
	}
	return snap, nil
}

func childText(ctx context.Context, parent browser.Finder, sel browser.Selector) (string, error) {
	el, err := parent.Find(ctx, sel)
	if err != nil {
		return "", err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", sel, err)
	}
	return text, nil
}

// FindSnapshot returns the snapshot for baseID
func FindSnapshot(snaps []ProductSnapshot, baseID string) (ProductSnapshot, bool) {
	for _, s := range snaps {
		if s.BaseID == baseID {
			return s, true
		}
	}
	return ProductSnapshot{}, false
}

// ItemNames returns the product titles shown on the current page in order
func ItemNames(ctx context.Context, drv browser.Finder) ([]string, error) {
	els, err := drv.FindAll(ctx, ItemName)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text(ctx)
		if err != nil {
			return nil, err
		}
		names = append(names, text)
	}
	return names, nil
}

// CartBadge reads the cart counter. present is false when the badge is not
// rendered, which is how the storefront shows an empty cart.
func CartBadge(ctx context.Context, drv browser.Finder) (count int, present bool, err error) {
	badge, err := drv.Find(ctx, CartBadgeCount)
	if errors.Is(err, browser.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	text, err := badge.Text(ctx)
	if err != nil {
		return 0, true, fmt.Errorf("failed to read cart badge: %w", err)
	}
	count, err = models.ParseQuantity(text)
	if err != nil {
		return 0, true, err
	}
	return count, true, nil
}

// WaitForControl waits until a control with the given id is on the page
func WaitForControl(ctx context.Context, drv browser.Finder, id string) (browser.Element, error) {
	return browser.WaitFor(ctx, drv, browser.ByID(id), ControlTimeout)
}

// AddToCart clicks the product's add button on the listing page and waits
// for it to turn into a remove button
func AddToCart(ctx context.Context, drv browser.Finder, baseID string) error {
	p := models.ProductRecord{BaseID: baseID}
	return toggleControl(ctx, drv, p.AddControlID(), p.RemoveControlID())
}

// RemoveFromCart clicks the product's remove button on the listing page and
// waits for it to turn back into an add button
func RemoveFromCart(ctx context.Context, drv browser.Finder, baseID string) error {
	p := models.ProductRecord{BaseID: baseID}
	return toggleControl(ctx, drv, p.RemoveControlID(), p.AddControlID())
}

func toggleControl(ctx context.Context, drv browser.Finder, from, to string) error {
	el, err := WaitForControl(ctx, drv, from)
	if err != nil {
		return err
	}
	if err := browser.WaitEnabled(ctx, el, from, ControlTimeout); err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("failed to click %s: %w", from, err)
	}
	if _, err := WaitForControl(ctx, drv, to); err != nil {
		return fmt.Errorf("%s did not become %s: %w", from, to, err)
	}
	return nil
}
