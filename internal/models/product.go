package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Control id prefixes used by the storefront for product buttons.
// If these change, change buttonIDPattern as well.
const (
	AddControlPrefix    = "add-to-cart-"
	RemoveControlPrefix = "remove-"
)

// Domain errors
var (
	ErrMalformedIdentifier = errors.New("malformed product control id")
	ErrPriceParse          = errors.New("price text is not a currency amount")
	ErrQuantityParse       = errors.New("quantity text is not a positive integer")
	ErrProductNotFound     = errors.New("product not found in catalog")
	ErrInvalidProduct      = errors.New("invalid product record")
	ErrReservedPrefix      = errors.New("product id starts with a control prefix")
	ErrDuplicateProduct    = errors.New("duplicate product id")
)

var buttonIDPattern = regexp.MustCompile(`^(?:(add-to-cart-)|(remove-))(\S+)$`)

// ProductRecord is a catalog entry for a product sold by the storefront
type ProductRecord struct {
	BaseID string `yaml:"id"`
	Title  string `yaml:"title"`
	Price  Price  `yaml:"price"`
}

// AddControlID returns the id of the product's add-to-cart button
func (p ProductRecord) AddControlID() string {
	return AddControlPrefix + p.BaseID
}

// RemoveControlID returns the id of the product's remove button
func (p ProductRecord) RemoveControlID() string {
	return RemoveControlPrefix + p.BaseID
}

// validate checks a single record; catalog-wide rules live in NewCatalog
func (p ProductRecord) validate() error {
	if p.BaseID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	}
	if strings.IndexFunc(p.BaseID, isSpace) >= 0 {
		return fmt.Errorf("%w: id %q contains whitespace", ErrInvalidProduct, p.BaseID)
	}
	if strings.HasPrefix(p.BaseID, AddControlPrefix) || strings.HasPrefix(p.BaseID, RemoveControlPrefix) {
		return fmt.Errorf("%w: %q", ErrReservedPrefix, p.BaseID)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: %q has non-positive price %s", ErrInvalidProduct, p.BaseID, p.Price)
	}
	return nil
}

// ButtonDescriptor describes a product add/remove control read from the page
type ButtonDescriptor struct {
	BaseID    string
	CanAdd    bool
	CanRemove bool
	RawID     string
}

// ToggledID returns the id the control carries after being clicked
func (b ButtonDescriptor) ToggledID() string {
	if b.CanAdd {
		return RemoveControlPrefix + b.BaseID
	}
	return AddControlPrefix + b.BaseID
}

// ParseButtonID splits a control id into its action prefix and product id.
// The id is matched as an exact token: no trimming or case folding.
func ParseButtonID(rawID string) (ButtonDescriptor, error) {
	m := buttonIDPattern.FindStringSubmatch(rawID)
	if m == nil {
		return ButtonDescriptor{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, rawID)
	}

	return ButtonDescriptor{
		BaseID:    m[3],
		CanAdd:    m[1] == AddControlPrefix,
		CanRemove: m[2] == RemoveControlPrefix,
		RawID:     rawID,
	}, nil
}

// ParseQuantity converts cart quantity text to a count of at least one
func ParseQuantity(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrQuantityParse, text)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %q is below one", ErrQuantityParse, text)
	}
	return n, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}
