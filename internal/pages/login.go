package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/themizzi/saucecheck/internal/browser"
)

// LoginTimeout bounds the wait for the product listing after submitting credentials
const LoginTimeout = 1000 * time.Millisecond

// formTimeout bounds the wait for the login form to render
const formTimeout = 2 * time.Second

// Login opens baseURL and submits the credentials with the Enter key.
// It does not check the outcome; call VerifyLoggedIn or HasLoginError afterwards.
func Login(ctx context.Context, drv browser.Driver, baseURL, username, password string) error {
	if err := drv.Navigate(ctx, baseURL); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}

	user, err := browser.WaitFor(ctx, drv, UserNameInput, formTimeout)
	if err != nil {
		return fmt.Errorf("login form: %w", err)
	}
	if err := user.Fill(ctx, username); err != nil {
		return fmt.Errorf("failed to enter username: %w", err)
	}

	pass, err := drv.Find(ctx, PasswordInput)
	if err != nil {
		return fmt.Errorf("login form: %w", err)
	}
	if err := pass.Fill(ctx, password); err != nil {
		return fmt.Errorf("failed to enter password: %w", err)
	}
	if err := pass.Press(ctx, browser.KeyEnter); err != nil {
		return fmt.Errorf("failed to submit login: %w", err)
	}
	return nil
}

// VerifyLoggedIn waits for the product listing that follows a successful login
func VerifyLoggedIn(ctx context.Context, drv browser.Finder) error {
	return VerifyArrivedAt(ctx, drv, ProductListing, LoginTimeout)
}

// HasLoginError reports whether the rejected-login banner is shown
func HasLoginError(ctx context.Context, drv browser.Finder) (bool, error) {
	return browser.Exists(ctx, drv, LoginError)
}

// LoginAs logs in and waits for the product listing
func LoginAs(ctx context.Context, drv browser.Driver, baseURL, username, password string) error {
	if err := Login(ctx, drv, baseURL, username, password); err != nil {
		return err
	}
	if err := VerifyLoggedIn(ctx, drv); err != nil {
		return fmt.Errorf("login as %s: %w", username, err)
	}
	return nil
}
