package mpc

import (
	"context"
	"crypto/rand"
	"sync"
	"testing"

	"github.com/silverline-crypto/mpctoolkit/beaver"
	"github.com/silverline-crypto/mpctoolkit/clique"
	"github.com/silverline-crypto/mpctoolkit/field"
	"github.com/silverline-crypto/mpctoolkit/shamir"
)

const testParties = 5
const testThreshold = 3

func newTestProtocols(t *testing.T) []*Protocol[field.Mersenne61Modulus] {
	t.Helper()
	transports := clique.NewInMemoryClique[field.Mersenne61Modulus](testParties)
	suppliers := beaver.NewTrustedDealerSuppliers[field.Mersenne61Modulus](rand.Reader, testParties, testThreshold)
	protocols := make([]*Protocol[field.Mersenne61Modulus], testParties)
	for i := range protocols {
		protocols[i] = NewProtocol[field.Mersenne61Modulus](transports[i], suppliers[i], rand.Reader, testParties, testThreshold)
	}
	return protocols
}

// runParties calls fn once per party concurrently, since every joint
// primitive here requires every party's participation to complete a
// clique round trip, and fails the test immediately if any party errors.
func runParties[R any](t *testing.T, n int, fn func(i int) (R, error)) []R {
	t.Helper()
	results := make([]R, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = fn(i)
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("party %d: %v", i, err)
		}
	}
	return results
}

func TestMultiplyRecoversProduct(t *testing.T) {
	protocols := newTestProtocols(t)

	lhsSecret := field.FromUint[field.Mersenne61Modulus](6)
	rhsSecret := field.FromUint[field.Mersenne61Modulus](7)
	lhsShares, err := shamir.GenerateShares(rand.Reader, lhsSecret, testParties, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	rhsShares, err := shamir.GenerateShares(rand.Reader, rhsSecret, testParties, testThreshold)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	results := runParties(t, testParties, func(i int) (shamir.Share[field.Mersenne61Modulus], error) {
		return protocols[i].Multiply(ctx, lhsShares[i], rhsShares[i])
	})

	got, err := shamir.ReconstructSecret(results, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	want := lhsSecret.Mul(rhsSecret)
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestUnboundedMultiplyRecoversAllProducts(t *testing.T) {
	protocols := newTestProtocols(t)

	secrets := [][2]uint64{{2, 3}, {4, 5}, {6, 7}}
	lhsShares := make([][]shamir.Share[field.Mersenne61Modulus], len(secrets))
	rhsShares := make([][]shamir.Share[field.Mersenne61Modulus], len(secrets))
	for i, pair := range secrets {
		var err error
		lhsShares[i], err = shamir.GenerateShares(rand.Reader, field.FromUint[field.Mersenne61Modulus](pair[0]), testParties, testThreshold)
		if err != nil {
			t.Fatal(err)
		}
		rhsShares[i], err = shamir.GenerateShares(rand.Reader, field.FromUint[field.Mersenne61Modulus](pair[1]), testParties, testThreshold)
		if err != nil {
			t.Fatal(err)
		}
	}

	ctx := context.Background()
	results := runParties(t, testParties, func(party int) ([]shamir.Share[field.Mersenne61Modulus], error) {
		pairs := make([]Pair[field.Mersenne61Modulus], len(secrets))
		for i := range secrets {
			pairs[i] = Pair[field.Mersenne61Modulus]{Lhs: lhsShares[i][party], Rhs: rhsShares[i][party]}
		}
		return protocols[party].UnboundedMultiply(ctx, pairs)
	})

	for i, pair := range secrets {
		shares := make([]shamir.Share[field.Mersenne61Modulus], testParties)
		for party := 0; party < testParties; party++ {
			shares[party] = results[party][i]
		}
		got, err := shamir.ReconstructSecret(shares, testThreshold)
		if err != nil {
			t.Fatal(err)
		}
		want := field.FromUint[field.Mersenne61Modulus](pair[0]).Mul(field.FromUint[field.Mersenne61Modulus](pair[1]))
		if !got.Equal(want) {
			t.Fatalf("pair %d: got %s, want %s", i, got, want)
		}
	}
}

func TestInverseRecoversReciprocal(t *testing.T) {
	protocols := newTestProtocols(t)

	secret := field.FromUint[field.Mersenne61Modulus](9)
	shares, err := shamir.GenerateShares(rand.Reader, secret, testParties, testThreshold)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	results := runParties(t, testParties, func(i int) (shamir.Share[field.Mersenne61Modulus], error) {
		return protocols[i].Inverse(ctx, shares[i])
	})

	got, err := shamir.ReconstructSecret(results, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	want, err := secret.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestConditionalSelectPicksLhsWhenConditionIsOne(t *testing.T) {
	protocols := newTestProtocols(t)

	lhs := field.FromUint[field.Mersenne61Modulus](11)
	rhs := field.FromUint[field.Mersenne61Modulus](22)
	condition := field.One[field.Mersenne61Modulus]()

	lhsShares, err := shamir.GenerateShares(rand.Reader, lhs, testParties, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	rhsShares, err := shamir.GenerateShares(rand.Reader, rhs, testParties, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	conditionShares, err := shamir.GenerateShares(rand.Reader, condition, testParties, testThreshold)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	results := runParties(t, testParties, func(i int) (shamir.Share[field.Mersenne61Modulus], error) {
		return protocols[i].ConditionalSelect(ctx, conditionShares[i], lhsShares[i], rhsShares[i])
	})

	got, err := shamir.ReconstructSecret(results, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(lhs) {
		t.Fatalf("got %s, want lhs=%s", got, lhs)
	}
}

func TestConditionalSelectPicksRhsWhenConditionIsZero(t *testing.T) {
	protocols := newTestProtocols(t)

	lhs := field.FromUint[field.Mersenne61Modulus](11)
	rhs := field.FromUint[field.Mersenne61Modulus](22)
	condition := field.Zero[field.Mersenne61Modulus]()

	lhsShares, err := shamir.GenerateShares(rand.Reader, lhs, testParties, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	rhsShares, err := shamir.GenerateShares(rand.Reader, rhs, testParties, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	conditionShares, err := shamir.GenerateShares(rand.Reader, condition, testParties, testThreshold)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	results := runParties(t, testParties, func(i int) (shamir.Share[field.Mersenne61Modulus], error) {
		return protocols[i].ConditionalSelect(ctx, conditionShares[i], lhsShares[i], rhsShares[i])
	})

	got, err := shamir.ReconstructSecret(results, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(rhs) {
		t.Fatalf("got %s, want rhs=%s", got, rhs)
	}
}

func TestRandomNumberGenerationAgreesAcrossParties(t *testing.T) {
	protocols := newTestProtocols(t)

	ctx := context.Background()
	results := runParties(t, testParties, func(i int) (shamir.Share[field.Mersenne61Modulus], error) {
		return protocols[i].RandomNumber(ctx)
	})

	first, err := shamir.ReconstructSecret(results[:testThreshold], testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	last, err := shamir.ReconstructSecret(results[testParties-testThreshold:], testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(last) {
		t.Fatalf("parties disagree: first subset reconstructs %s, last subset %s", first, last)
	}
}

func TestRandomBitIsZeroOrOne(t *testing.T) {
	protocols := newTestProtocols(t)

	ctx := context.Background()
	results := runParties(t, testParties, func(i int) (shamir.Share[field.Mersenne61Modulus], error) {
		return protocols[i].RandomBit(ctx)
	})

	got, err := shamir.ReconstructSecret(results, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	zero := field.Zero[field.Mersenne61Modulus]()
	one := field.One[field.Mersenne61Modulus]()
	if !got.Equal(zero) && !got.Equal(one) {
		t.Fatalf("got %s, want 0 or 1", got)
	}
}

func TestUnboundedOrOfZeroZeroIsZero(t *testing.T) {
	testOr(t, []uint64{0, 0}, field.Zero[field.Mersenne61Modulus]())
}

func TestUnboundedOrOfOneZeroIsOne(t *testing.T) {
	testOr(t, []uint64{1, 0}, field.One[field.Mersenne61Modulus]())
}

func TestUnboundedOrOfOneOneIsOne(t *testing.T) {
	testOr(t, []uint64{1, 1}, field.One[field.Mersenne61Modulus]())
}

func testOr(t *testing.T, bits []uint64, want field.Element[field.Mersenne61Modulus]) {
	t.Helper()
	protocols := newTestProtocols(t)

	perBitShares := make([][]shamir.Share[field.Mersenne61Modulus], len(bits))
	for i, b := range bits {
		var err error
		perBitShares[i], err = shamir.GenerateShares(rand.Reader, field.FromUint[field.Mersenne61Modulus](b), testParties, testThreshold)
		if err != nil {
			t.Fatal(err)
		}
	}

	ctx := context.Background()
	results := runParties(t, testParties, func(party int) (shamir.Share[field.Mersenne61Modulus], error) {
		partyBits := make([]shamir.Share[field.Mersenne61Modulus], len(bits))
		for i := range bits {
			partyBits[i] = perBitShares[i][party]
		}
		return protocols[party].UnboundedOr(ctx, partyBits)
	})

	got, err := shamir.ReconstructSecret(results, testThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Fatalf("OR(%v) = %s, want %s", bits, got, want)
	}
}
