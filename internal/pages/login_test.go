package pages

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themizzi/saucecheck/internal/browser"
	"github.com/themizzi/saucecheck/internal/browser/browsertest"
)

const password = "secret_sauce"

// loggedIn opens a tab on a fresh fake site and logs in as the standard user
func loggedIn(t *testing.T) (*browsertest.Site, *browsertest.Tab) {
	t.Helper()
	site := browsertest.NewSite()
	tab := site.Open()
	require.NoError(t, LoginAs(context.Background(), tab, browsertest.BaseURL, "standard_user", password))
	return site, tab
}

func TestLoginAs_StandardUser(t *testing.T) {
	ctx := context.Background()
	tab := browsertest.NewSite().Open()

	start := time.Now()
	err := LoginAs(ctx, tab, browsertest.BaseURL, "standard_user", password)

	require.NoError(t, err)
	assert.Less(t, time.Since(start), LoginTimeout)
	assert.Equal(t, browsertest.PageInventory, tab.Page())

	hasErr, err := HasLoginError(ctx, tab)
	require.NoError(t, err)
	assert.False(t, hasErr)
}

func TestLogin_LockedOutUser(t *testing.T) {
	ctx := context.Background()
	tab := browsertest.NewSite().Open()

	require.NoError(t, Login(ctx, tab, browsertest.BaseURL, "locked_out_user", password))

	err := VerifyLoggedIn(ctx, tab)
	assert.ErrorIs(t, err, browser.ErrTimeout)

	hasErr, err := HasLoginError(ctx, tab)
	require.NoError(t, err)
	assert.True(t, hasErr)

	banner, err := tab.Find(ctx, LoginError)
	require.NoError(t, err)
	text, err := banner.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, browsertest.LockedOutMessage, text)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	tab := browsertest.NewSite().Open()

	err := LoginAs(ctx, tab, browsertest.BaseURL, "standard_user", "hunter2")

	assert.ErrorIs(t, err, browser.ErrTimeout)
	hasErr, err := HasLoginError(ctx, tab)
	require.NoError(t, err)
	assert.True(t, hasErr)
	assert.Equal(t, browsertest.PageLogin, tab.Page())
}

func TestHasLoginError_CleanForm(t *testing.T) {
	ctx := context.Background()
	tab := browsertest.NewSite().Open()
	require.NoError(t, tab.Navigate(ctx, browsertest.BaseURL))

	hasErr, err := HasLoginError(ctx, tab)

	require.NoError(t, err)
	assert.False(t, hasErr)
	require.NoError(t, VerifyArrivedAt(ctx, tab, LoginPage, 0))
}

func TestLogin_NavigateFails(t *testing.T) {
	tab := browsertest.NewSite().Open()

	err := Login(context.Background(), tab, "https://elsewhere.test/", "standard_user", password)

	assert.Error(t, err)
}

func TestVerifyArrivedAt(t *testing.T) {
	ctx := context.Background()
	_, tab := loggedIn(t)

	tests := []struct {
		name    string
		page    PageID
		wantErr error
	}{
		{"listing", ProductListing, nil},
		{"cart", ShoppingCart, browser.ErrTimeout},
		{"login", LoginPage, browser.ErrTimeout},
		{"unknown", PageID("checkout"), ErrUnknownPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyArrivedAt(ctx, tab, tt.page, 100*time.Millisecond)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifyArrivedAt_DefaultTimeout(t *testing.T) {
	tab := browsertest.NewSite().Open()

	start := time.Now()
	err := VerifyArrivedAt(context.Background(), tab, ProductListing, 0)

	assert.ErrorIs(t, err, browser.ErrTimeout)
	assert.GreaterOrEqual(t, time.Since(start), ArrivalTimeout)
}
