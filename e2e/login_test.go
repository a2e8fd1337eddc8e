package e2e

import (
	"context"
	"errors"
	"testing"

	"github.com/themizzi/saucecheck/internal/browser"
	"github.com/themizzi/saucecheck/internal/pages"
)

// TestLogin tests logging in
// Feature: Login
//
//	As a shopper
//	I want to log in with my account
//	So that I can browse the shop
func TestLogin(t *testing.T) {
	// Scenario: Standard user logs in
	//   Given I am on the login page
	//   When I log in as the standard user
	//   Then I should see the product listing within one second
	//   And I should not see a login error

	ctx := context.Background()
	drv := newPage(t)

	// Given I am on the login page
	// When I log in as the standard user
	if err := pages.Login(ctx, drv, baseURL, creds.StandardUser, creds.Password); err != nil {
		t.Fatalf("Failed to submit login: %v", err)
	}

	// Then I should see the product listing within one second
	if err := pages.VerifyLoggedIn(ctx, drv); err != nil {
		t.Fatalf("Expected product listing: %v", err)
	}

	// And I should not see a login error
	hasErr, err := pages.HasLoginError(ctx, drv)
	if err != nil {
		t.Fatalf("Failed to look for login error: %v", err)
	}
	if hasErr {
		t.Error("Login error shown after successful login")
	}
}

// TestLockedOutUser tests that a locked account cannot log in
// Feature: Account lockout
//
//	As the shop owner
//	I want locked accounts kept out
//	So that suspended users cannot shop
func TestLockedOutUser(t *testing.T) {
	// Scenario: Locked out user tries to log in
	//   Given I am on the login page
	//   When I log in as the locked out user
	//   Then I should not reach the product listing
	//   And I should see a login error

	ctx := context.Background()
	drv := newPage(t)

	// Given I am on the login page
	// When I log in as the locked out user
	if err := pages.Login(ctx, drv, baseURL, creds.LockedUser, creds.Password); err != nil {
		t.Fatalf("Failed to submit login: %v", err)
	}

	// Then I should not reach the product listing
	err := pages.VerifyLoggedIn(ctx, drv)
	if err == nil {
		t.Fatal("Locked out user reached the product listing")
	}
	if !errors.Is(err, browser.ErrTimeout) {
		t.Fatalf("Expected timeout, got: %v", err)
	}

	// And I should see a login error
	hasErr, err := pages.HasLoginError(ctx, drv)
	if err != nil {
		t.Fatalf("Failed to look for login error: %v", err)
	}
	if !hasErr {
		t.Error("Expected login error banner")
	}
}
