package kin

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QuarksPerKin is the number of quarks in one Kin. A quark is the smallest
// indivisible unit of Kin.
const QuarksPerKin = 100_000

var quarkFactor = decimal.New(1, 5)

// KinToQuarks converts a Kin amount, expressed as a decimal string, to
// quarks. Sub-quark precision is truncated toward zero: "0.000018" converts
// to 1 quark, not 2.
//
// Amounts routinely exceed the safe range of binary floating point, so the
// conversion is done entirely in decimal arithmetic.
func KinToQuarks(val string) (int64, error) {
	d, err := decimal.NewFromString(val)
	if err != nil {
		return 0, fmt.Errorf("invalid kin amount %q: %w", val, err)
	}

	return d.Mul(quarkFactor).Truncate(0).IntPart(), nil
}

// MustKinToQuarks behaves like KinToQuarks, panicking on malformed input.
// Intended for constants.
func MustKinToQuarks(val string) int64 {
	quarks, err := KinToQuarks(val)
	if err != nil {
		panic(err)
	}
	return quarks
}

// QuarksToKin converts a quark amount to its canonical Kin decimal string,
// with no trailing zero padding beyond what is significant.
func QuarksToKin(quarks int64) string {
	return decimal.New(quarks, -5).String()
}
