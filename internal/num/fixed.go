package num

import (
	"fmt"
	"math"
)

// Fixed-point layout: Q19.12 in a signed 32-bit word.
const (
	FracBits = 12
	One      = 1 << FracBits
)

// Fixed is a signed Q19.12 fixed-point scalar. Products and quotients are
// computed in 64 bits and narrowed back, truncating toward negative infinity.
type Fixed int32

// FixedFromRaw wraps a raw Q19.12 bit pattern.
func FixedFromRaw(raw int32) Fixed { return Fixed(raw) }

// Raw returns the underlying Q19.12 bit pattern.
func (a Fixed) Raw() int32 { return int32(a) }

func (a Fixed) Add(b Fixed) Fixed { return a + b }
func (a Fixed) Sub(b Fixed) Fixed { return a - b }

func (a Fixed) Mul(b Fixed) Fixed {
	return Fixed((int64(a) * int64(b)) >> FracBits)
}

// Div panics on a zero divisor.
func (a Fixed) Div(b Fixed) Fixed {
	if b == 0 {
		panic("num: fixed-point division by zero")
	}
	return Fixed((int64(a) << FracBits) / int64(b))
}

func (a Fixed) Neg() Fixed { return -a }

func (a Fixed) Cmp(b Fixed) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (a Fixed) IsZero() bool { return a == 0 }

// Int floors to the nearest integer below.
func (a Fixed) Int() int { return int(a >> FracBits) }

func (a Fixed) Float() float64 { return float64(a) / One }

func (Fixed) FromInt(v int) Fixed { return Fixed(v << FracBits) }

func (Fixed) FromFloat(v float64) Fixed { return Fixed(math.Round(v * One)) }

func (a Fixed) String() string {
	return fmt.Sprintf("%.4f", a.Float())
}
