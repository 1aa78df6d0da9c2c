package utils

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/holiman/uint256"
)

var errEmptyAmount = errors.New("empty amount")

// ParseAmount parses a base-10 amount expressed in ledger units
func ParseAmount(value string) (*uint256.Int, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if value == "" {
		return nil, errEmptyAmount
	}

	amount, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", value, err)
	}

	return amount, nil
}

// SaturatingAdd returns a + b, or math.MaxUint64 when the sum does not fit
func SaturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}

	return a + b
}
