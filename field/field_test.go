package field

import (
	"crypto/rand"
	"math/big"
	"testing"
)

// TestMersenne89Addition is spec §8 scenario 1.
func TestMersenne89Addition(t *testing.T) {
	a, err := FromStringRadix[Mersenne89Modulus]("618970019642690137449561873", 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromStringRadix[Mersenne89Modulus]("618970019642690137449560877", 10)
	if err != nil {
		t.Fatal(err)
	}
	want, err := FromStringRadix[Mersenne89Modulus]("618970019642690137449560639", 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Add(b); !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

// TestMersenne89WrapSubtraction is spec §8 scenario 2: a wrap-around
// subtraction that must never underflow the unsigned representation.
func TestMersenne89WrapSubtraction(t *testing.T) {
	b, err := FromStringRadix[Mersenne89Modulus]("645784", 10)
	if err != nil {
		t.Fatal(err)
	}
	want, err := FromStringRadix[Mersenne89Modulus]("618970019642690137448916328", 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := One[Mersenne89Modulus]().Sub(b); !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func randomMersenne61(t *testing.T) Mersenne61 {
	t.Helper()
	e, err := GenerateRandomMember[Mersenne61Modulus](rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// TestFieldAxioms checks invariant 1 from spec §8 across random samples.
func TestFieldAxioms(t *testing.T) {
	for i := 0; i < 50; i++ {
		a := randomMersenne61(t)
		b := randomMersenne61(t)

		if !a.Add(b).Equal(b.Add(a)) {
			t.Fatalf("addition not commutative: %s + %s", a, b)
		}
		if !a.Mul(b).Equal(b.Mul(a)) {
			t.Fatalf("multiplication not commutative: %s * %s", a, b)
		}
		if got := a.Add(b).Sub(b); !got.Equal(a) {
			t.Fatalf("sub(add(a,b),b) != a: got %s want %s", got, a)
		}
		if !a.IsZero() {
			inv, err := a.Inverse()
			if err != nil {
				t.Fatalf("inverse of nonzero element failed: %v", err)
			}
			if got := a.Mul(inv); !got.Equal(One[Mersenne61Modulus]()) {
				t.Fatalf("a * inverse(a) != 1: got %s", got)
			}
		}
	}
}

// TestRoundTripStringRadix checks invariant 2 from spec §8.
func TestRoundTripStringRadix(t *testing.T) {
	for _, radix := range []int{2, 10, 16, 36} {
		for i := 0; i < 20; i++ {
			x := randomMersenne61(t)
			s := x.ToStringRadix(radix)
			got, err := FromStringRadix[Mersenne61Modulus](s, radix)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(x) {
				t.Fatalf("round trip failed at radix %d: %s -> %s -> %s", radix, x, s, got)
			}
		}
	}
}

func TestFromSigned(t *testing.T) {
	neg := FromSigned[Mersenne61Modulus](-5)
	p := Mersenne61Modulus{}.P()
	want := FromBigUint[Mersenne61Modulus](new(big.Int).Sub(p, big.NewInt(5)))
	if !neg.Equal(want) {
		t.Fatalf("FromSigned(-5) = %s, want %s", neg, want)
	}
}

func TestDivIsIntegerDivisionNotInverse(t *testing.T) {
	a := FromUint[Mersenne13Modulus](10)
	b := FromUint[Mersenne13Modulus](3)
	got, err := a.Div(b)
	if err != nil {
		t.Fatal(err)
	}
	// 10 / 3 = 3 remainder 1, so integer quotient is 3, not 10 * inverse(3).
	want := FromUint[Mersenne13Modulus](3)
	if !got.Equal(want) {
		t.Fatalf("Div: got %s, want %s (integer quotient, not modular inverse)", got, want)
	}

	inv, err := b.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	viaInverse := a.Mul(inv)
	if got.Equal(viaInverse) {
		t.Fatalf("Div should differ from multiplication by inverse for non-exact division")
	}
}

func TestDivByZeroIsPrecondition(t *testing.T) {
	a := FromUint[Mersenne13Modulus](10)
	if _, err := a.Div(Zero[Mersenne13Modulus]()); err == nil {
		t.Fatal("expected precondition error dividing by zero")
	}
}

// TestSqrtOnSupportedField checks the happy path of Sqrt for a field whose
// prime satisfies p ≡ 3 (mod 4); every Mersenne prime 2^k-1 with odd k
// does, since 2^k ≡ 0 (mod 4) for k>=2 makes 2^k-1 ≡ 3 (mod 4).
func TestSqrtOnSupportedField(t *testing.T) {
	x := FromUint[Mersenne13Modulus](9)
	root, err := x.Sqrt()
	if err != nil {
		t.Fatal(err)
	}
	if got := root.Mul(root); !got.Equal(x) {
		t.Fatalf("sqrt(9)^2 = %s, want 9", got)
	}
}
