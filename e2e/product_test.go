package e2e

import (
	"context"
	"testing"

	"github.com/themizzi/saucecheck/internal/models"
	"github.com/themizzi/saucecheck/internal/pages"
)

// TestProductListing tests the product listing
// Feature: Product listing
//
//	As a shopper
//	I want to see every product with its price
//	So that I can decide what to buy
func TestProductListing(t *testing.T) {
	// Scenario: View product listing
	//   Given I am logged in
	//   Then I should see every catalog product at its catalog price
	//   And every product should offer "Add to cart"

	ctx := context.Background()
	drv := loggedInPage(t)
	catalog := models.MustDefaultCatalog()

	snaps, err := pages.ReadProductListing(ctx, drv)
	if err != nil {
		t.Fatalf("Failed to read listing: %v", err)
	}

	// Then I should see every catalog product at its catalog price
	if len(snaps) != catalog.Len() {
		t.Fatalf("Expected %d products, got %d", catalog.Len(), len(snaps))
	}
	for _, s := range snaps {
		want, err := catalog.Lookup(s.BaseID)
		if err != nil {
			t.Errorf("Unexpected product on listing: %v", err)
			continue
		}
		if !s.Price.Equal(want.Price) {
			t.Errorf("Expected %s at %s, got %s", s.BaseID, want.Price.Display(), s.Price.Display())
		}

		// And every product should offer "Add to cart"
		if !s.Button.CanAdd {
			t.Errorf("Expected add control for %s, got %q", s.BaseID, s.Button.RawID)
		}
	}
}

func TestCartCounter(t *testing.T) {
	// Scenario: Cart badge counts products
	//   Given I am logged in
	//   When I add every product to the cart
	//   Then the cart badge should count each one
	//   When I remove every product
	//   Then the cart badge should disappear

	ctx := context.Background()
	drv := loggedInPage(t)
	products := models.MustDefaultCatalog().Products()

	// When I add every product to the cart
	for i, p := range products {
		if err := pages.AddToCart(ctx, drv, p.BaseID); err != nil {
			t.Fatalf("Failed to add %s: %v", p.BaseID, err)
		}

		// Then the cart badge should count each one
		count, present, err := pages.CartBadge(ctx, drv)
		if err != nil {
			t.Fatalf("Failed to read badge: %v", err)
		}
		if !present || count != i+1 {
			t.Errorf("Expected badge %d, got %d (present=%v)", i+1, count, present)
		}
	}

	// When I remove every product
	for _, p := range products {
		if err := pages.RemoveFromCart(ctx, drv, p.BaseID); err != nil {
			t.Fatalf("Failed to remove %s: %v", p.BaseID, err)
		}
	}

	// Then the cart badge should disappear
	_, present, err := pages.CartBadge(ctx, drv)
	if err != nil {
		t.Fatalf("Failed to read badge: %v", err)
	}
	if present {
		t.Error("Expected no cart badge on an empty cart")
	}
}
