// Package browser adapts browser automation engines to the small surface the
// page objects need: locate, read, click, type, and wait.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Browser errors
var (
	ErrNotFound    = errors.New("element not found")
	ErrTimeout     = errors.New("timed out")
	ErrUnsupported = errors.New("unsupported browser option")
)

// Key names a keyboard key that can be sent to an element
type Key string

// Keys used by the storefront flows
const (
	KeyEnter Key = "Enter"
)

// SelectorKind is how a Selector addresses elements
type SelectorKind int

// Selector kinds
const (
	SelectByID SelectorKind = iota
	SelectByClass
	SelectByName
	SelectByCSS
)

// Selector addresses elements by id, class, name attribute, or raw CSS
type Selector struct {
	Kind  SelectorKind
	Value string
}

// ByID selects the element whose id attribute equals id
func ByID(id string) Selector { return Selector{Kind: SelectByID, Value: id} }

// ByClass selects elements carrying every class in a space separated list
func ByClass(class string) Selector { return Selector{Kind: SelectByClass, Value: class} }

// ByName selects elements whose name attribute equals name
func ByName(name string) Selector { return Selector{Kind: SelectByName, Value: name} }

// ByCSS selects elements with a raw CSS selector
func ByCSS(css string) Selector { return Selector{Kind: SelectByCSS, Value: css} }

// CSS renders the selector for engines that take CSS.
// Ids use an attribute selector since product ids contain '.', '(' and ')'.
func (s Selector) CSS() string {
	switch s.Kind {
	case SelectByID:
		return fmt.Sprintf(`[id=%q]`, s.Value)
	case SelectByClass:
		return "." + strings.Join(strings.Fields(s.Value), ".")
	case SelectByName:
		return fmt.Sprintf(`[name=%q]`, s.Value)
	default:
		return s.Value
	}
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectByID:
		return "id=" + s.Value
	case SelectByClass:
		return "class=" + s.Value
	case SelectByName:
		return "name=" + s.Value
	default:
		return "css=" + s.Value
	}
}

// Finder locates elements. Find never waits: it returns ErrNotFound when
// nothing matches right now. FindAll returns an empty slice in that case.
type Finder interface {
	Find(ctx context.Context, sel Selector) (Element, error)
	FindAll(ctx context.Context, sel Selector) ([]Element, error)
}

// Driver is one open page in a browser
type Driver interface {
	Finder
	Navigate(ctx context.Context, url string) error
	Back(ctx context.Context) error
	Close() error
}

// Element is a handle to a DOM element on the current page
type Element interface {
	Finder
	Text(ctx context.Context) (string, error)
	// Attribute returns "" when the attribute is absent.
	Attribute(ctx context.Context, name string) (string, error)
	Click(ctx context.Context) error
	Fill(ctx context.Context, value string) error
	Press(ctx context.Context, key Key) error
	IsEnabled(ctx context.Context) (bool, error)
	IsVisible(ctx context.Context) (bool, error)
}

// Exists reports whether sel currently matches at least one element
func Exists(ctx context.Context, f Finder, sel Selector) (bool, error) {
	_, err := f.Find(ctx, sel)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func notFound(sel Selector) error {
	return fmt.Errorf("%w: %s", ErrNotFound, sel)
}
