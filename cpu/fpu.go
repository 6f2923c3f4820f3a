package cpu

import (
	"math"
)

// Floating point word layout: sign(1) | exponent(7) | mantissa(8)
//
// The exponent is a 7-bit two's complement field, the mantissa is the
// fraction mantissa/256. The value is (-1)^sign * mantissa/256 * 2^exponent.
const (
	FP_SIGN_SHIFT     = 15
	FP_EXPONENT_SHIFT = 8
	FP_EXPONENT_MASK  = 0x7f
	FP_EXPONENT_SIGN  = 0x40
	FP_EXPONENT_MIN   = -63
	FP_EXPONENT_MAX   = 63
	FP_MANTISSA_MASK  = 0xff
	FP_MANTISSA_SCALE = 256.0
)

// FpToFloat decodes a floating point word.
func FpToFloat(word uint16) float64 {
	sign := (word >> FP_SIGN_SHIFT) & 1
	exp := int((word >> FP_EXPONENT_SHIFT) & FP_EXPONENT_MASK)
	if (exp & FP_EXPONENT_SIGN) != 0 {
		exp -= 0x80
	}
	mant := float64(word&FP_MANTISSA_MASK) / FP_MANTISSA_SCALE

	value := math.Ldexp(mant, exp)
	if sign == 1 {
		value = -value
	}

	return value
}

// FloatToFp encodes a value as a floating point word, normalizing the
// mantissa into [0.5, 1) and rounding it to the nearest 1/256.
func FloatToFp(value float64) (word uint16) {
	var sign uint16
	if value < 0 {
		sign = 1
	}

	abs := math.Abs(value)
	if abs == 0 {
		return sign << FP_SIGN_SHIFT
	}

	frac, exp := math.Frexp(abs)

	mant := int(math.Floor(frac*FP_MANTISSA_SCALE + 0.5))
	mant = min(mant, FP_MANTISSA_MASK)

	exp = max(FP_EXPONENT_MIN, min(exp, FP_EXPONENT_MAX))

	word = sign << FP_SIGN_SHIFT
	word |= (uint16(exp) & FP_EXPONENT_MASK) << FP_EXPONENT_SHIFT
	word |= uint16(mant) & FP_MANTISSA_MASK

	return
}

// FpAdd returns a + b.
func FpAdd(a, b uint16) uint16 {
	return FloatToFp(FpToFloat(a) + FpToFloat(b))
}

// FpSub returns a - b.
func FpSub(a, b uint16) uint16 {
	return FloatToFp(FpToFloat(a) - FpToFloat(b))
}

// IntToFp converts a two's complement word to floating point.
func IntToFp(word uint16) uint16 {
	return FloatToFp(float64(int16(word)))
}

// FpToInt converts a floating point word to a two's complement word,
// rounding to nearest and saturating to the int16 range.
func FpToInt(word uint16) uint16 {
	value := math.Floor(FpToFloat(word) + 0.5)
	value = max(math.MinInt16, min(value, math.MaxInt16))

	return uint16(int16(value))
}
