// Package num defines the arithmetic capability set the physics engine is
// written against, plus its three concrete scalar representations: a native
// signed integer, an IEEE float and a Q19.12 fixed-point value.
//
// Physics code never switches on the representation. It only calls the
// methods of Number, so one algorithm serves every scalar type.
package num

// Number is the capability set required of a physics scalar.
// Methods are value-receiver and never mutate the receiver.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T

	// Cmp returns -1, 0 or +1 when the receiver is less than, equal to or
	// greater than the argument.
	Cmp(T) int
	IsZero() bool

	// Int truncates toward negative infinity for display coordinates.
	Int() int
	Float() float64

	// FromInt and FromFloat ignore the receiver; they let generic code
	// construct values of T from a zero value.
	FromInt(int) T
	FromFloat(float64) T
}

// Zero returns the additive identity of T.
func Zero[T Number[T]]() T {
	var z T
	return z
}

// Of converts an integer constant into T.
func Of[T Number[T]](v int) T {
	var z T
	return z.FromInt(v)
}

// OfFloat converts a float constant into T. Integer representations truncate.
func OfFloat[T Number[T]](v float64) T {
	var z T
	return z.FromFloat(v)
}

// Tick converts a time increment into T. A positive increment the
// representation rounds to zero becomes one unit, so integer ensembles
// still move.
func Tick[T Number[T]](dt float64) T {
	t := OfFloat[T](dt)
	if dt > 0 && t.Cmp(Zero[T]()) <= 0 {
		return Of[T](1)
	}
	return t
}

// Less reports a < b.
func Less[T Number[T]](a, b T) bool {
	return a.Cmp(b) < 0
}

// Min returns the smaller of a and b.
func Min[T Number[T]](a, b T) T {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T Number[T]](a, b T) T {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Clamp restricts v to [lo, hi].
func Clamp[T Number[T]](v, lo, hi T) T {
	if v.Cmp(lo) < 0 {
		return lo
	}
	if v.Cmp(hi) > 0 {
		return hi
	}
	return v
}

// Sq returns v*v.
func Sq[T Number[T]](v T) T {
	return v.Mul(v)
}

// Kind names a scalar representation, used by configuration and the CLI.
type Kind string

const (
	KindInt   Kind = "int"
	KindFloat Kind = "float"
	KindFixed Kind = "fixed"
)

// Valid reports whether k names a supported representation.
func (k Kind) Valid() bool {
	switch k {
	case KindInt, KindFloat, KindFixed:
		return true
	default:
		return false
	}
}
