package shamir

import (
	"crypto/rand"
	"testing"

	"github.com/silverline-crypto/mpctoolkit/field"
)

func TestGenerateSharesCount(t *testing.T) {
	shares, err := GenerateShares[field.Mersenne61Modulus](rand.Reader, field.One[field.Mersenne61Modulus](), 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(shares) != 5 {
		t.Fatalf("got %d shares, want 5", len(shares))
	}
}

func TestGenerateSharesRejectsLowThreshold(t *testing.T) {
	if _, err := GenerateShares[field.Mersenne61Modulus](rand.Reader, field.One[field.Mersenne61Modulus](), 5, 1); err != ErrInvalidThreshold {
		t.Fatalf("got %v, want ErrInvalidThreshold", err)
	}
}

func TestReconstructSecret(t *testing.T) {
	secret := field.FromUint[field.Mersenne61Modulus](3)
	shares, err := GenerateShares(rand.Reader, secret, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReconstructSecret(shares, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(secret) {
		t.Fatalf("reconstructed %s, want %s", got, secret)
	}
}

func TestReconstructSecretWithThresholdSubset(t *testing.T) {
	secret := field.FromUint[field.Mersenne61Modulus](42)
	shares, err := GenerateShares(rand.Reader, secret, 7, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Any 4 of the 7 shares should reconstruct the same secret.
	got, err := ReconstructSecret(shares[2:6], 4)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(secret) {
		t.Fatalf("reconstructed %s from a later subset, want %s", got, secret)
	}
}

func TestLinearityOfAddition(t *testing.T) {
	sharesA, err := GenerateShares(rand.Reader, field.FromUint[field.Mersenne61Modulus](2), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	sharesB, err := GenerateShares(rand.Reader, field.FromUint[field.Mersenne61Modulus](3), 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	summed := make([]Share[field.Mersenne61Modulus], len(sharesA))
	for i := range sharesA {
		s, err := AddShares(sharesA[i], sharesB[i])
		if err != nil {
			t.Fatal(err)
		}
		summed[i] = s
	}

	got, err := ReconstructSecret(summed, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := field.FromUint[field.Mersenne61Modulus](5)
	if !got.Equal(want) {
		t.Fatalf("reconstructed sum %s, want %s", got, want)
	}
}

func TestMultiplyScalarLinearity(t *testing.T) {
	secret := field.FromUint[field.Mersenne61Modulus](6)
	shares, err := GenerateShares(rand.Reader, secret, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	scalar := field.FromUint[field.Mersenne61Modulus](7)

	scaled := make([]Share[field.Mersenne61Modulus], len(shares))
	for i, s := range shares {
		scaled[i] = MultiplyScalar(s, scalar)
	}

	got, err := ReconstructSecret(scaled, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := secret.Mul(scalar)
	if !got.Equal(want) {
		t.Fatalf("reconstructed %s, want %s", got, want)
	}
}

func TestAddSharesRejectsMismatchedX(t *testing.T) {
	a := Share[field.Mersenne61Modulus]{X: 1, Y: field.One[field.Mersenne61Modulus]()}
	b := Share[field.Mersenne61Modulus]{X: 2, Y: field.One[field.Mersenne61Modulus]()}
	if _, err := AddShares(a, b); err == nil {
		t.Fatal("expected an error combining shares at different x-coordinates")
	}
}

func TestSumSharesRejectsEmpty(t *testing.T) {
	if _, err := SumShares[field.Mersenne61Modulus](nil); err == nil {
		t.Fatal("expected an error summing zero shares")
	}
}
