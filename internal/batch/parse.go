package batch

import (
	"fmt"
	"strconv"
)

// Chaincode arguments arrive as strings; quantities are whole kilograms
// and price is a decimal. Parse failures are rejected before any state
// access.

// ParseQuantity parses a whole-kilogram quantity argument.
func ParseQuantity(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a whole number", ErrMalformedInput, name, value)
	}
	return n, nil
}

// ParsePrice parses a price-per-kg argument.
func ParsePrice(name, value string) (float64, error) {
	p, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrMalformedInput, name, value)
	}
	return p, nil
}
