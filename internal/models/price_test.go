package models

import (
	"errors"
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		text    string
		want    string
		wantErr bool
	}{
		{text: "$29.99", want: "29.99"},
		{text: "$7.99", want: "7.99"},
		{text: "$49.99", want: "49.99"},
		{text: "29.99", want: "29.99"},
		{text: " $15.99 ", want: "15.99"},
		{text: "$1.5", want: "1.50"},
		{text: "$10", want: "10.00"},
		{text: "$100000000000000000.00", want: "100000000000000000.00"},
		{text: "$", wantErr: true},
		{text: "$abc", wantErr: true},
		{text: "$1.999", wantErr: true},
		{text: "$-1.00", wantErr: true},
		{text: "$-0", wantErr: true},
		{text: "€1.00", wantErr: true},
		{text: "$1.", wantErr: true},
		{text: "$1e3", wantErr: true},
		{text: "$1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParsePrice(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrPriceParse) {
					t.Fatalf("ParsePrice(%q) error = %v, want ErrPriceParse", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePrice(%q) unexpected error = %v", tt.text, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParsePrice(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestParsePrice_LargeAmountStaysPositive(t *testing.T) {
	got, err := ParsePrice("$100000000000000000.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsPositive() {
		t.Fatalf("ParsePrice returned non-positive %s", got.Display())
	}
	if got.Equal(NewPrice(0)) {
		t.Fatal("large amount compared equal to zero")
	}
}

func TestPrice_String(t *testing.T) {
	if got := NewPrice(2999).String(); got != "29.99" {
		t.Errorf("String() = %q, want 29.99", got)
	}
	if got := NewPrice(5).String(); got != "0.05" {
		t.Errorf("String() = %q, want 0.05", got)
	}
	if got := NewPrice(1000).Display(); got != "$10.00" {
		t.Errorf("Display() = %q, want $10.00", got)
	}
}

func TestPrice_Equal(t *testing.T) {
	a, err := ParsePrice("$1.5")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(NewPrice(150)) {
		t.Errorf("%s != %s", a, NewPrice(150))
	}
	if a.Equal(NewPrice(151)) {
		t.Errorf("%s == %s", a, NewPrice(151))
	}
}

func TestPrice_DisplayRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(0, 10_000_000).Draw(t, "cents")
		p := NewPrice(cents)

		got, err := ParsePrice(p.Display())
		if err != nil {
			t.Fatalf("ParsePrice(%q): %v", p.Display(), err)
		}
		if !got.Equal(p) {
			t.Fatalf("round trip %s -> %s", p.Display(), got)
		}
	})
}

func TestParsePrice_TwoDigitFractions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		whole := rapid.IntRange(0, 9999).Draw(t, "whole")
		frac := rapid.IntRange(0, 99).Draw(t, "frac")

		got, err := ParsePrice(fmt.Sprintf("$%d.%02d", whole, frac))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := NewPrice(int64(whole*100 + frac)); !got.Equal(want) {
			t.Fatalf("got %s, want %s", got, want)
		}
	})
}
