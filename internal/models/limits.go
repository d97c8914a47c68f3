package models

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Column limits of the products table: price is NUMERIC(12,2), stock INTEGER.
const (
	PriceScale     = 2
	PriceIntDigits = 10
	MaxStock       = math.MaxInt32
)

var (
	ErrPriceNegative  = errors.New("price must not be negative")
	ErrPriceScale     = errors.New("price must have at most 2 decimal places")
	ErrPriceTooLarge  = errors.New("price must be less than 10000000000")
	maxPriceExclusive = decimal.New(1, PriceIntDigits)
)

// CheckPrice reports whether p fits the price column without rounding.
func CheckPrice(p decimal.Decimal) error {
	switch {
	case p.IsNegative():
		return ErrPriceNegative
	case !p.Equal(p.Truncate(PriceScale)):
		return ErrPriceScale
	case p.GreaterThanOrEqual(maxPriceExclusive):
		return ErrPriceTooLarge
	}
	return nil
}
