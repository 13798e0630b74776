package num

import "math"

// Float is an IEEE-754 double precision scalar.
type Float float64

func (a Float) Add(b Float) Float { return a + b }
func (a Float) Sub(b Float) Float { return a - b }
func (a Float) Mul(b Float) Float { return a * b }

// Div panics on a zero divisor instead of producing Inf.
func (a Float) Div(b Float) Float {
	if b == 0 {
		panic("num: float division by zero")
	}
	return a / b
}

func (a Float) Neg() Float { return -a }

func (a Float) Cmp(b Float) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (a Float) IsZero() bool   { return a == 0 }
func (a Float) Int() int       { return int(math.Floor(float64(a))) }
func (a Float) Float() float64 { return float64(a) }

func (Float) FromInt(v int) Float       { return Float(v) }
func (Float) FromFloat(v float64) Float { return Float(v) }
