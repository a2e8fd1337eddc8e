// Package pages holds the page objects for the demo storefront: login,
// product listing, cart, and the slide-out navigation menu.
package pages

import "github.com/themizzi/saucecheck/internal/browser"

// Login form
var (
	UserNameInput = browser.ByName("user-name")
	PasswordInput = browser.ByName("password")
	LoginButton   = browser.ByID("login-button")
	LoginError    = browser.ByClass("error-message-container error")
)

// Page signatures
var (
	InventoryContainer = browser.ByID("inventory_container")
	CartContainer      = browser.ByID("cart_contents_container")
)

// Menu
var (
	MenuButton      = browser.ByID("react-burger-menu-btn")
	MenuCloseButton = browser.ByID("react-burger-cross-btn")
	MenuWrap        = browser.ByClass("bm-menu-wrap")
	InventoryLink   = browser.ByID("inventory_sidebar_link")
	AboutLink       = browser.ByID("about_sidebar_link")
	LogoutLink      = browser.ByID("logout_sidebar_link")
	ResetLink       = browser.ByID("reset_sidebar_link")
	CartLink        = browser.ByClass("shopping_cart_link")
	CartBadgeCount  = browser.ByClass("shopping_cart_badge")
)

// Product rows
var (
	InventoryItem   = browser.ByClass("inventory_item")
	CartItem        = browser.ByClass("cart_item")
	ItemName        = browser.ByClass("inventory_item_name")
	ItemPrice       = browser.ByClass("inventory_item_price")
	InventoryButton = browser.ByClass("btn_inventory")
	CartButton      = browser.ByClass("cart_button")
	CartQuantity    = browser.ByClass("cart_quantity")
)
