package browsertest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/themizzi/saucecheck/internal/browser"
)

// ErrDetached is returned when acting on an element from a page that has since been replaced
var ErrDetached = errors.New("element is not attached to the page")

// node is one element of a rendered fake page. Dynamic properties are
// closures over the tab state so handles observe later changes, the way a
// live DOM element does.
type node struct {
	tab      *Tab
	gen      int
	attrs    map[string]func() string
	text     func() string
	enabled  func() bool
	visible  func() bool
	click    func() error
	fill     func(string)
	press    func(browser.Key)
	children []*node
}

func static(s string) func() string { return func() string { return s } }

func elem(attrs map[string]string, children ...*node) *node {
	n := &node{attrs: make(map[string]func() string, len(attrs)), children: children}
	for k, v := range attrs {
		n.attrs[k] = static(v)
	}
	return n
}

func (n *node) attr(name string) string {
	if f, ok := n.attrs[name]; ok {
		return f()
	}
	return ""
}

func (n *node) matches(sel browser.Selector) (bool, error) {
	switch sel.Kind {
	case browser.SelectByID:
		return n.attr("id") == sel.Value, nil
	case browser.SelectByName:
		return n.attr("name") == sel.Value, nil
	case browser.SelectByClass:
		have := strings.Fields(n.attr("class"))
		for _, want := range strings.Fields(sel.Value) {
			found := false
			for _, c := range have {
				if c == want {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, fmt.Errorf("%w: fake pages do not evaluate %s", browser.ErrUnsupported, sel)
	}
}

func (n *node) collect(sel browser.Selector, out *[]*node) error {
	for _, c := range n.children {
		c.tab, c.gen = n.tab, n.gen
		ok, err := c.matches(sel)
		if err != nil {
			return err
		}
		if ok {
			*out = append(*out, c)
		}
		if err := c.collect(sel, out); err != nil {
			return err
		}
	}
	return nil
}

func (n *node) live() error {
	if n.tab.closed {
		return errors.New("page is closed")
	}
	if n.gen != n.tab.gen {
		return ErrDetached
	}
	return nil
}

func (n *node) Find(ctx context.Context, sel browser.Selector) (browser.Element, error) {
	all, err := n.FindAll(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s", browser.ErrNotFound, sel)
	}
	return all[0], nil
}

func (n *node) FindAll(ctx context.Context, sel browser.Selector) ([]browser.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.tab.mu.Lock()
	defer n.tab.mu.Unlock()
	if err := n.live(); err != nil {
		return nil, err
	}

	var found []*node
	if err := n.collect(sel, &found); err != nil {
		return nil, err
	}
	out := make([]browser.Element, len(found))
	for i, f := range found {
		out[i] = f
	}
	return out, nil
}

func (n *node) Text(ctx context.Context) (string, error) {
	n.tab.mu.Lock()
	defer n.tab.mu.Unlock()
	if err := n.live(); err != nil {
		return "", err
	}
	if n.text == nil {
		return "", nil
	}
	return n.text(), nil
}

func (n *node) Attribute(ctx context.Context, name string) (string, error) {
	n.tab.mu.Lock()
	defer n.tab.mu.Unlock()
	if err := n.live(); err != nil {
		return "", err
	}
	return n.attr(name), nil
}

func (n *node) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.tab.mu.Lock()
	defer n.tab.mu.Unlock()
	if err := n.live(); err != nil {
		return err
	}
	if !n.isVisible() || !n.isEnabled() {
		return fmt.Errorf("element %q is not clickable", n.attr("id"))
	}
	n.tab.Clicks = append(n.tab.Clicks, n.attr("id"))
	if n.click == nil {
		return nil
	}
	return n.click()
}

func (n *node) Fill(ctx context.Context, value string) error {
	n.tab.mu.Lock()
	defer n.tab.mu.Unlock()
	if err := n.live(); err != nil {
		return err
	}
	if n.fill == nil {
		return fmt.Errorf("element %q does not accept input", n.attr("id"))
	}
	n.fill(value)
	return nil
}

func (n *node) Press(ctx context.Context, key browser.Key) error {
	n.tab.mu.Lock()
	defer n.tab.mu.Unlock()
	if err := n.live(); err != nil {
		return err
	}
	if n.press != nil {
		n.press(key)
	}
	return nil
}

func (n *node) IsEnabled(ctx context.Context) (bool, error) {
	n.tab.mu.Lock()
	defer n.tab.mu.Unlock()
	if err := n.live(); err != nil {
		return false, err
	}
	return n.isEnabled(), nil
}

func (n *node) IsVisible(ctx context.Context) (bool, error) {
	n.tab.mu.Lock()
	defer n.tab.mu.Unlock()
	if err := n.live(); err != nil {
		return false, err
	}
	return n.isVisible(), nil
}

func (n *node) isEnabled() bool { return n.enabled == nil || n.enabled() }

func (n *node) isVisible() bool { return n.visible == nil || n.visible() }
