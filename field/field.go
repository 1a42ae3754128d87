// Package field implements prime-field arithmetic over arbitrary-precision
// integers.
//
// Each prime p is bound to its own Go type via a Modulus type parameter, so
// that e.g. Mersenne89 and Mersenne61 are distinct types and cannot be mixed
// by accident. Every Element is a value type: operations never mutate their
// receiver or arguments, they return a new Element.
//
// The modulus itself is read through a lazily-initialized, process-wide
// holder (see the P method of each concrete Modulus), computed once
// and treated as read-only afterward, matching the "compile-time prime
// constants" described for this toolkit's global state.
package field

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Modulus names the prime p associated with an Element instantiation.
//
// Implementations are expected to be zero-size marker types; P must be safe
// to call on the zero value and must always return the same *big.Int.
type Modulus interface {
	P() *big.Int
}

// Element is a residue class value in Z/pZ for the prime p named by M.
//
// The zero value of Element is NOT valid; use Zero[M]() or one of the
// From* constructors.
type Element[M Modulus] struct {
	v *big.Int
}

func modulus[M Modulus]() *big.Int {
	var m M
	return m.P()
}

func wrap[M Modulus](v *big.Int) Element[M] {
	return Element[M]{v: v}
}

// Zero returns the additive identity.
func Zero[M Modulus]() Element[M] {
	return wrap[M](big.NewInt(0))
}

// One returns the multiplicative identity.
func One[M Modulus]() Element[M] {
	return wrap[M](big.NewInt(1))
}

// FromUint reduces n modulo p.
func FromUint[M Modulus](n uint64) Element[M] {
	v := new(big.Int).SetUint64(n)
	v.Mod(v, modulus[M]())
	return wrap[M](v)
}

// FromBigUint reduces a non-negative big.Int modulo p.
//
// FromBigUint panics if n is negative; use FromSigned for negative values.
func FromBigUint[M Modulus](n *big.Int) Element[M] {
	if n.Sign() < 0 {
		panic("field: FromBigUint called with a negative integer")
	}
	v := new(big.Int).Mod(n, modulus[M]())
	return wrap[M](v)
}

// FromSigned wraps a signed integer into the field: for n < 0 the result is
// p - |n|, reduced mod p.
func FromSigned[M Modulus](n int64) Element[M] {
	if n >= 0 {
		return FromUint[M](uint64(n))
	}
	v := new(big.Int).SetUint64(uint64(-n))
	v.Mod(v, modulus[M]())
	v.Sub(modulus[M](), v)
	v.Mod(v, modulus[M]())
	return wrap[M](v)
}

// FromStringRadix parses a non-negative integer in the given radix and
// reduces it modulo p. It returns ErrParse if s is not a valid number in
// that radix.
func FromStringRadix[M Modulus](s string, radix int) (Element[M], error) {
	v, ok := new(big.Int).SetString(s, radix)
	if !ok {
		return Element[M]{}, fmt.Errorf("field: %w: %q is not a base-%d integer", ErrParse, s, radix)
	}
	if v.Sign() < 0 {
		return Element[M]{}, fmt.Errorf("field: %w: %q is negative", ErrParse, s)
	}
	v.Mod(v, modulus[M]())
	return wrap[M](v), nil
}

// ToStringRadix renders the element's residue in the given radix.
func (e Element[M]) ToStringRadix(radix int) string {
	return e.v.Text(radix)
}

func (e Element[M]) String() string {
	return e.ToStringRadix(10)
}

// AsUint returns the raw non-negative residue, always in [0, p).
func (e Element[M]) AsUint() *big.Int {
	return new(big.Int).Set(e.v)
}

// IsZero reports whether e is the additive identity.
func (e Element[M]) IsZero() bool {
	return e.v.Sign() == 0
}

// Equal reports value equality.
func (e Element[M]) Equal(o Element[M]) bool {
	return e.v.Cmp(o.v) == 0
}

// Add returns (e + o) mod p.
func (e Element[M]) Add(o Element[M]) Element[M] {
	v := new(big.Int).Add(e.v, o.v)
	v.Mod(v, modulus[M]())
	return wrap[M](v)
}

// Sub returns e - o, reduced into [0, p) without ever underflowing the
// unsigned representation: if e >= o it computes (e - o) mod p directly,
// otherwise it adds (p - o) before reducing.
func (e Element[M]) Sub(o Element[M]) Element[M] {
	var v *big.Int
	if e.v.Cmp(o.v) >= 0 {
		v = new(big.Int).Sub(e.v, o.v)
	} else {
		inv := new(big.Int).Sub(modulus[M](), o.v)
		v = new(big.Int).Add(e.v, inv)
	}
	v.Mod(v, modulus[M]())
	return wrap[M](v)
}

// Mul returns (e * o) mod p.
func (e Element[M]) Mul(o Element[M]) Element[M] {
	v := new(big.Int).Mul(e.v, o.v)
	v.Mod(v, modulus[M]())
	return wrap[M](v)
}

// Div returns the integer quotient of the two residues, reduced mod p. This
// is NOT the modular inverse; see Inverse for that.
//
// Div returns ErrPrecondition if o is zero.
func (e Element[M]) Div(o Element[M]) (Element[M], error) {
	if o.IsZero() {
		return Element[M]{}, fmt.Errorf("field: %w: division by zero", ErrPrecondition)
	}
	v := new(big.Int).Quo(e.v, o.v)
	v.Mod(v, modulus[M]())
	return wrap[M](v), nil
}

// Rem returns e mod (residue of o); defined only for nonzero o.
//
// Rem returns ErrPrecondition if o is zero.
func (e Element[M]) Rem(o Element[M]) (Element[M], error) {
	if o.IsZero() {
		return Element[M]{}, fmt.Errorf("field: %w: remainder by zero", ErrPrecondition)
	}
	v := new(big.Int).Mod(e.v, o.v)
	return wrap[M](v), nil
}

// ModPow returns e^exp mod p, for a non-negative exponent.
func (e Element[M]) ModPow(exp *big.Int) Element[M] {
	v := new(big.Int).Exp(e.v, exp, modulus[M]())
	return wrap[M](v)
}

// Inverse returns the modular multiplicative inverse of e, computed via the
// extended Euclidean algorithm.
//
// Inverse returns ErrPrecondition if e is zero; zero has no inverse.
func (e Element[M]) Inverse() (Element[M], error) {
	if e.IsZero() {
		return Element[M]{}, fmt.Errorf("field: %w: zero has no inverse", ErrPrecondition)
	}
	_, _, t := ExtendedGCD(wrap[M](new(big.Int).Set(modulus[M]())), e)
	return t, nil
}

// ExtendedGCD returns (d, s, t) such that d = gcd(a, b) and a*s + b*t = d,
// all represented as field elements.
func ExtendedGCD[M Modulus](a, b Element[M]) (d, s, t Element[M]) {
	if b.IsZero() {
		return a, One[M](), Zero[M]()
	}
	rem, err := a.Rem(b)
	if err != nil {
		// b is nonzero here; Rem cannot fail.
		panic(err)
	}
	d2, s2, t2 := ExtendedGCD(b, rem)
	q, err := a.Div(b)
	if err != nil {
		panic(err)
	}
	delta := q.Mul(t2)
	return d2, t2, s2.Sub(delta)
}

// Sqrt returns a square root of e when the field supports one efficiently,
// i.e. when p ≡ 3 (mod 4): sqrt = e^((p+1)/4).
//
// Sqrt returns ErrSqrtUnsupported for fields where p mod 4 != 3, since no
// cheap square-root algorithm is assumed for them.
func (e Element[M]) Sqrt() (Element[M], error) {
	p := modulus[M]()
	four := big.NewInt(4)
	mod4 := new(big.Int).Mod(p, four)
	if mod4.Int64() != 3 {
		return Element[M]{}, fmt.Errorf("field: %w", ErrSqrtUnsupported)
	}
	exp := new(big.Int).Add(p, big.NewInt(1))
	exp.Div(exp, four)
	return e.ModPow(exp), nil
}

// GenerateRandomMember samples a uniformly random element in [0, p),
// consuming entropy from r. Pass crypto/rand.Reader in production code.
func GenerateRandomMember[M Modulus](r io.Reader) (Element[M], error) {
	p := modulus[M]()
	v, err := rand.Int(r, p)
	if err != nil {
		return Element[M]{}, fmt.Errorf("field: sampling random member: %w", err)
	}
	return wrap[M](v), nil
}

// Sum adds a slice of elements, returning Zero for an empty slice.
func Sum[M Modulus](xs []Element[M]) Element[M] {
	acc := Zero[M]()
	for _, x := range xs {
		acc = acc.Add(x)
	}
	return acc
}

// Product multiplies a slice of elements, returning One for an empty slice.
func Product[M Modulus](xs []Element[M]) Element[M] {
	acc := One[M]()
	for _, x := range xs {
		acc = acc.Mul(x)
	}
	return acc
}
