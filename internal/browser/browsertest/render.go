package browsertest

import (
	"strconv"

	"github.com/themizzi/saucecheck/internal/browser"
	"github.com/themizzi/saucecheck/internal/models"
)

// render builds the element tree for the current page. Must be called with mu held.
func (t *Tab) render() *node {
	root := elem(map[string]string{"id": "root"})
	switch t.page {
	case PageLogin:
		root.children = []*node{t.loginForm()}
	case PageInventory:
		root.children = []*node{t.header(), t.inventory()}
	case PageCart:
		root.children = []*node{t.header(), t.cartContents()}
	case PageAbout:
		root.children = []*node{elem(map[string]string{"id": "about_page"})}
	}
	return root
}

func (t *Tab) input(name string) *node {
	n := elem(map[string]string{"id": name, "name": name, "class": "input_error form_input"})
	n.attrs["value"] = func() string { return t.fields[name] }
	n.fill = func(v string) { t.fields[name] = v }
	n.press = func(k browser.Key) {
		if k == browser.KeyEnter {
			t.submitLogin()
		}
	}
	return n
}

func (t *Tab) loginForm() *node {
	button := elem(map[string]string{"id": "login-button", "class": "submit-button btn_action"})
	button.click = func() error {
		t.submitLogin()
		return nil
	}

	message := elem(map[string]string{"data-test": "error"})
	message.text = func() string { return t.loginErr }
	message.visible = func() bool { return t.loginErr != "" }

	banner := elem(nil, message)
	banner.attrs["class"] = func() string {
		if t.loginErr != "" {
			return "error-message-container error"
		}
		return "error-message-container"
	}
	banner.text = message.text

	return elem(map[string]string{"class": "login_wrapper"},
		t.input("user-name"),
		t.input("password"),
		banner,
		button,
	)
}

func (t *Tab) header() *node {
	burger := elem(map[string]string{"id": "react-burger-menu-btn"})
	burger.click = func() error {
		t.menuOpen = true
		return nil
	}

	cross := elem(map[string]string{"id": "react-burger-cross-btn"})
	cross.visible = func() bool { return t.menuOpen }
	cross.click = func() error {
		t.menuOpen = false
		return nil
	}

	menu := elem(map[string]string{"class": "bm-menu-wrap"},
		elem(map[string]string{"class": "bm-menu"},
			t.menuLink("inventory_sidebar_link", "All Items", func() { t.goTo(PageInventory) }),
			t.menuLink("about_sidebar_link", "About", func() { t.goTo(PageAbout) }),
			t.menuLink("logout_sidebar_link", "Logout", func() {
				t.loggedIn = false
				t.goTo(PageLogin)
			}),
			t.menuLink("reset_sidebar_link", "Reset App State", func() { t.cart = nil }),
		),
		cross,
	)
	menu.attrs["aria-hidden"] = func() string {
		if t.menuOpen {
			return "false"
		}
		return "true"
	}
	menu.visible = func() bool { return t.menuOpen }

	cartLink := elem(map[string]string{"class": "shopping_cart_link"})
	if n := len(t.cart); n > 0 {
		badge := elem(map[string]string{"class": "shopping_cart_badge"})
		badge.text = static(strconv.Itoa(n))
		cartLink.children = append(cartLink.children, badge)
	}
	cartLink.click = func() error {
		t.goTo(PageCart)
		return nil
	}

	return elem(map[string]string{"id": "header_container", "class": "header_container"},
		burger, menu, cartLink)
}

func (t *Tab) menuLink(id, label string, action func()) *node {
	link := elem(map[string]string{"id": id, "class": "bm-item menu-item"})
	link.text = static(label)
	link.visible = func() bool { return t.menuOpen }
	link.enabled = func() bool { return t.menuOpen && !contains(t.site.DisabledLinks, id) }
	link.click = func() error {
		action()
		return nil
	}
	return link
}

func (t *Tab) itemBody(p models.ProductRecord) []*node {
	name := elem(map[string]string{"class": "inventory_item_name"})
	name.text = static(p.Title)
	price := elem(map[string]string{"class": "inventory_item_price"})
	price.text = static(t.priceText(p))
	return []*node{name, price}
}

func (t *Tab) inventory() *node {
	list := elem(map[string]string{"class": "inventory_list"})
	for _, p := range t.site.Products {
		id := p.BaseID

		button := elem(map[string]string{"class": "btn btn_primary btn_small btn_inventory"})
		button.attrs["id"] = func() string {
			if t.inCart(id) {
				return models.RemoveControlPrefix + id
			}
			return models.AddControlPrefix + id
		}
		button.text = func() string {
			if t.inCart(id) {
				return "Remove"
			}
			return "Add to cart"
		}
		button.click = func() error {
			t.toggleCart(id)
			return nil
		}

		item := elem(map[string]string{"class": "inventory_item"}, append(t.itemBody(p), button)...)
		list.children = append(list.children, item)
	}
	return elem(map[string]string{"id": "inventory_container", "class": "inventory_container"}, list)
}

func (t *Tab) cartContents() *node {
	list := elem(map[string]string{"class": "cart_list"})
	for _, id := range t.cart {
		p, ok := t.product(id)
		if !ok {
			continue
		}
		id := id

		qty := elem(map[string]string{"class": "cart_quantity"})
		qty.text = static(t.quantityText(id))

		button := elem(map[string]string{
			"id":    t.cartControlID(id),
			"class": "btn btn_secondary btn_small cart_button",
		})
		button.text = static("Remove")
		button.click = func() error {
			if t.inCart(id) {
				t.toggleCart(id)
			}
			return nil
		}

		row := elem(map[string]string{"class": "cart_item"}, append([]*node{qty}, append(t.itemBody(p), button)...)...)
		list.children = append(list.children, row)
	}

	back := elem(map[string]string{"id": "continue-shopping", "class": "btn btn_secondary back btn_medium"})
	back.click = func() error {
		t.goTo(PageInventory)
		return nil
	}

	return elem(map[string]string{"id": "cart_contents_container"}, list, back)
}
