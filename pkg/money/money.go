// Package money holds exact minor-unit monetary arithmetic for the escrow
// ledger. Amounts never pass through binary floating point.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places between major and minor units.
const Scale int32 = 2

// BasisPoints is the denominator of fee rates expressed in basis points.
const BasisPoints int64 = 10000

var (
	ErrPrecision = errors.New("amount has more decimal places than supported")
	ErrOverflow  = errors.New("amount out of range")
)

// Amount is a monetary quantity in minor units (e.g. cents).
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

// Parse converts a decimal string in major units ("12.50") into minor units.
// Inputs carrying more precision than Scale are rejected, never rounded.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return FromDecimal(d)
}

// FromDecimal converts a major-unit decimal into minor units.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	minor := d.Shift(Scale)
	if !minor.IsInteger() {
		return 0, ErrPrecision
	}
	bi := minor.BigInt()
	if !bi.IsInt64() {
		return 0, ErrOverflow
	}
	return Amount(bi.Int64()), nil
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Scale)
}

// String formats the amount in major units with exactly Scale decimals.
func (a Amount) String() string {
	return a.Decimal().StringFixed(Scale)
}

// Int64 returns the raw minor-unit value.
func (a Amount) Int64() int64 {
	return int64(a)
}

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool {
	return a > 0
}

// IsNegative reports whether a < 0.
func (a Amount) IsNegative() bool {
	return a < 0
}

// Ptr returns a pointer to a copy of a.
func (a Amount) Ptr() *Amount {
	return &a
}

// Fee returns round(a * bps / 10000), rounding half away from zero.
func Fee(a Amount, bps int64) Amount {
	fee := decimal.NewFromInt(int64(a)).
		Mul(decimal.NewFromInt(bps)).
		Div(decimal.NewFromInt(BasisPoints)).
		Round(0)
	return Amount(fee.IntPart())
}

// SplitFee splits a into (payee, fee) where fee = Fee(a, bps) and the two
// parts always sum to a exactly.
func SplitFee(a Amount, bps int64) (payee Amount, fee Amount) {
	fee = Fee(a, bps)
	return a - fee, fee
}

// Sum adds amounts, failing on int64 overflow.
func Sum(amounts ...Amount) (Amount, error) {
	var total Amount
	for _, a := range amounts {
		next := total + a
		if (a > 0 && next < total) || (a < 0 && next > total) {
			return 0, ErrOverflow
		}
		total = next
	}
	return total, nil
}
