package mpc

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/silverline-crypto/mpctoolkit/field"
)

// The inverse of a Vandermonde matrix V factors as V^-1 = U*L, an upper
// times a lower triangular matrix. Both factors are generated recursively
// and memoized process-wide, grounded in
// shared_or_function/joint_unbounded_or.rs's get_inverted_vandermonde_upper
// and get_inverted_vandermonde_lower. Recursive calls take the lock only to
// read or write their own entry, never while waiting on a child, so
// concurrent computations over distinct fields (or distinct (row, column)
// pairs) do not serialize on each other.
type vandermondeCache[M field.Modulus] struct {
	mu    *sync.Mutex
	upper map[string]field.Element[M]
	lower map[string]field.Element[M]
}

var vandermondeRegistryMu sync.Mutex
var vandermondeRegistry = map[string]any{}

func cacheFor[M field.Modulus]() *vandermondeCache[M] {
	var m M
	key := reflect.TypeOf(m).String()

	vandermondeRegistryMu.Lock()
	defer vandermondeRegistryMu.Unlock()
	if c, ok := vandermondeRegistry[key]; ok {
		return c.(*vandermondeCache[M])
	}
	c := &vandermondeCache[M]{
		mu:    &sync.Mutex{},
		upper: map[string]field.Element[M]{},
		lower: map[string]field.Element[M]{},
	}
	vandermondeRegistry[key] = c
	return c
}

// inverseVandermondeUpper computes U[row][column] in the U*L = V^-1
// factorization, memoized across calls for the same M.
func inverseVandermondeUpper[M field.Modulus](row, column int) field.Element[M] {
	c := cacheFor[M]()
	key := fmt.Sprintf("%d:%d", row, column)

	c.mu.Lock()
	if v, ok := c.upper[key]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	var v field.Element[M]
	switch {
	case row == column:
		v = field.One[M]()
	case column == 0 || row == -1:
		v = field.Zero[M]()
	default:
		a := inverseVandermondeUpper[M](row-1, column-1)
		b := inverseVandermondeUpper[M](row, column-1)
		x := field.FromUint[M](uint64(column))
		v = a.Sub(b.Mul(x))
	}

	c.mu.Lock()
	c.upper[key] = v
	c.mu.Unlock()
	return v
}

// inverseVandermondeLower computes L[row][column].
func inverseVandermondeLower[M field.Modulus](row, column int) field.Element[M] {
	c := cacheFor[M]()
	key := fmt.Sprintf("%d:%d", row, column)

	c.mu.Lock()
	if v, ok := c.lower[key]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	var v field.Element[M]
	switch {
	case row < column:
		v = field.Zero[M]()
	case row == 0 && column == 0:
		v = field.One[M]()
	default:
		product := field.One[M]()
		for k := 0; k <= row; k++ {
			if k == column {
				continue
			}
			product = product.Mul(field.FromSigned[M](int64(column - k)))
		}
		inv, err := product.Inverse()
		if err != nil {
			// product is a nonzero product of nonzero field elements over a
			// prime field, so it cannot be zero; Inverse cannot fail here.
			panic(fmt.Sprintf("mpc: unexpected zero product in inverse-Vandermonde lower factor: %v", err))
		}
		v = inv
	}

	c.mu.Lock()
	c.lower[key] = v
	c.mu.Unlock()
	return v
}

// inverseVandermondeEntry computes one entry of the size x size inverse
// Vandermonde matrix as the dot product of U's row and L's column; it is
// not itself memoized since it depends on matrixSize.
func inverseVandermondeEntry[M field.Modulus](row, column, matrixSize int) field.Element[M] {
	acc := field.Zero[M]()
	for index := 0; index < matrixSize; index++ {
		u := inverseVandermondeUpper[M](row, index)
		l := inverseVandermondeLower[M](index, column)
		acc = acc.Add(u.Mul(l))
	}
	return acc
}
