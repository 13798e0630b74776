package num

import "math"

// Int is a native signed 32-bit scalar. Division truncates toward zero and
// panics on a zero divisor.
type Int int32

func (a Int) Add(b Int) Int { return a + b }
func (a Int) Sub(b Int) Int { return a - b }
func (a Int) Mul(b Int) Int { return a * b }
func (a Int) Div(b Int) Int { return a / b }
func (a Int) Neg() Int      { return -a }

func (a Int) Cmp(b Int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (a Int) IsZero() bool   { return a == 0 }
func (a Int) Int() int       { return int(a) }
func (a Int) Float() float64 { return float64(a) }

func (Int) FromInt(v int) Int { return Int(v) }

func (Int) FromFloat(v float64) Int { return Int(math.Trunc(v)) }
