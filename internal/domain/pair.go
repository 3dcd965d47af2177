package domain

import (
	"fmt"
	"strings"
)

const pairSeparator = "-"

// CurrencyPair is a BASE-QUOTE market identifier, always upper case.
type CurrencyPair struct {
	Base  string
	Quote string
}

func (p CurrencyPair) String() string {
	return p.Base + pairSeparator + p.Quote
}

func ParseCurrencyPair(raw string) (CurrencyPair, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	base, quote, ok := strings.Cut(normalized, pairSeparator)
	if !ok || base == "" || quote == "" || strings.Contains(quote, pairSeparator) {
		return CurrencyPair{}, fmt.Errorf("invalid currency pair %q: expected BASE-QUOTE", raw)
	}
	return CurrencyPair{Base: base, Quote: quote}, nil
}
