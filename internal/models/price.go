package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CurrencySymbol is the prefix the storefront renders in front of prices
const CurrencySymbol = "$"

// priceScale is the number of fraction digits a price may carry
const priceScale = 2

// Price is an exact, non-negative money amount with at most two fraction digits.
// Compare prices with Equal.
type Price struct {
	amount decimal.Decimal
}

// NewPrice returns the price of the given number of cents
func NewPrice(cents int64) Price {
	return Price{amount: decimal.New(cents, -priceScale)}
}

// ParsePrice converts displayed price text such as "$29.99" to a Price
func ParsePrice(text string) (Price, error) {
	amount := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), CurrencySymbol))
	p, err := parseAmount(amount)
	if err != nil {
		return Price{}, fmt.Errorf("%w: %q: %v", ErrPriceParse, text, err)
	}
	return p, nil
}

// Decimal returns the amount
func (p Price) Decimal() decimal.Decimal { return p.amount }

// Equal reports whether both prices are the same amount
func (p Price) Equal(q Price) bool { return p.amount.Equal(q.amount) }

// IsPositive reports whether the price is above zero
func (p Price) IsPositive() bool { return p.amount.IsPositive() }

// String formats the price without currency symbol, e.g. "29.99"
func (p Price) String() string {
	return p.amount.StringFixed(priceScale)
}

// Display formats the price the way the storefront renders it
func (p Price) Display() string {
	return CurrencySymbol + p.String()
}

// UnmarshalYAML reads a decimal scalar such as 29.99 without going through float64
func (p *Price) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected scalar", ErrPriceParse, value.Line)
	}
	parsed, err := parseAmount(value.Value)
	if err != nil {
		return fmt.Errorf("%w: line %d: %q: %v", ErrPriceParse, value.Line, value.Value, err)
	}
	*p = parsed
	return nil
}

// parseAmount accepts plain non-negative decimals with at most two fraction digits
func parseAmount(s string) (Price, error) {
	if strings.ContainsAny(s, "eE") || strings.HasSuffix(s, ".") {
		return Price{}, errors.New("not a plain decimal")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, err
	}
	if d.IsNegative() || strings.HasPrefix(s, "-") {
		return Price{}, errors.New("negative amount")
	}
	if d.Exponent() < -priceScale {
		return Price{}, fmt.Errorf("more than %d fraction digits", priceScale)
	}
	return Price{amount: d}, nil
}
