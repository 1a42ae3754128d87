package field

import (
	"math/big"
	"sync"
)

// newMersenne lazily parses a decimal literal into a *big.Int once, and
// caches it for the lifetime of the process — the "compile-time prime
// constants" read through a lazily-initialized holder.
func newMersenne(decimal string) func() *big.Int {
	var once sync.Once
	var cached *big.Int
	return func() *big.Int {
		once.Do(func() {
			v, ok := new(big.Int).SetString(decimal, 10)
			if !ok {
				panic("field: invalid mersenne prime literal: " + decimal)
			}
			cached = v
		})
		return cached
	}
}

// Mersenne2Modulus names the Mersenne prime 2^2-1 = 3.
type Mersenne2Modulus struct{}

var mersenne2P = newMersenne("3")

// P returns 2^2-1.
func (Mersenne2Modulus) P() *big.Int { return mersenne2P() }

// Mersenne2 is the prime field of order 2^2-1.
type Mersenne2 = Element[Mersenne2Modulus]

// Mersenne3Modulus names the Mersenne prime 2^3-1 = 7.
type Mersenne3Modulus struct{}

var mersenne3P = newMersenne("7")

// P returns 2^3-1.
func (Mersenne3Modulus) P() *big.Int { return mersenne3P() }

// Mersenne3 is the prime field of order 2^3-1 (p=7).
type Mersenne3 = Element[Mersenne3Modulus]

// Mersenne5Modulus names the Mersenne prime 2^5-1 = 31.
type Mersenne5Modulus struct{}

var mersenne5P = newMersenne("31")

// P returns 2^5-1.
func (Mersenne5Modulus) P() *big.Int { return mersenne5P() }

// Mersenne5 is the prime field of order 2^5-1.
type Mersenne5 = Element[Mersenne5Modulus]

// Mersenne13Modulus names the Mersenne prime 2^13-1 = 8191.
type Mersenne13Modulus struct{}

var mersenne13P = newMersenne("8191")

// P returns 2^13-1.
func (Mersenne13Modulus) P() *big.Int { return mersenne13P() }

// Mersenne13 is the prime field of order 2^13-1.
type Mersenne13 = Element[Mersenne13Modulus]

// Mersenne17Modulus names the Mersenne prime 2^17-1 = 131071.
type Mersenne17Modulus struct{}

var mersenne17P = newMersenne("131071")

// P returns 2^17-1.
func (Mersenne17Modulus) P() *big.Int { return mersenne17P() }

// Mersenne17 is the prime field of order 2^17-1.
type Mersenne17 = Element[Mersenne17Modulus]

// Mersenne19Modulus names the Mersenne prime 2^19-1 = 524287.
type Mersenne19Modulus struct{}

var mersenne19P = newMersenne("524287")

// P returns 2^19-1.
func (Mersenne19Modulus) P() *big.Int { return mersenne19P() }

// Mersenne19 is the prime field of order 2^19-1.
type Mersenne19 = Element[Mersenne19Modulus]

// Mersenne31Modulus names the Mersenne prime 2^31-1 = 2147483647.
type Mersenne31Modulus struct{}

var mersenne31P = newMersenne("2147483647")

// P returns 2^31-1.
func (Mersenne31Modulus) P() *big.Int { return mersenne31P() }

// Mersenne31 is the prime field of order 2^31-1.
type Mersenne31 = Element[Mersenne31Modulus]

// Mersenne61Modulus names the Mersenne prime 2^61-1 = 2305843009213693951.
type Mersenne61Modulus struct{}

var mersenne61P = newMersenne("2305843009213693951")

// P returns 2^61-1.
func (Mersenne61Modulus) P() *big.Int { return mersenne61P() }

// Mersenne61 is the prime field of order 2^61-1.
type Mersenne61 = Element[Mersenne61Modulus]

// Mersenne89Modulus names the Mersenne prime 2^89-1.
type Mersenne89Modulus struct{}

var mersenne89P = newMersenne("618970019642690137449562111")

// P returns 2^89-1.
func (Mersenne89Modulus) P() *big.Int { return mersenne89P() }

// Mersenne89 is the prime field of order 2^89-1, used by this toolkit's
// end-to-end scenarios (§8 of the spec).
type Mersenne89 = Element[Mersenne89Modulus]

// Mersenne107Modulus names the Mersenne prime 2^107-1.
type Mersenne107Modulus struct{}

var mersenne107P = newMersenne("162259276829213363391578010288127")

// P returns 2^107-1.
func (Mersenne107Modulus) P() *big.Int { return mersenne107P() }

// Mersenne107 is the prime field of order 2^107-1.
type Mersenne107 = Element[Mersenne107Modulus]

// Mersenne127Modulus names the Mersenne prime 2^127-1.
type Mersenne127Modulus struct{}

var mersenne127P = newMersenne("170141183460469231731687303715884105727")

// P returns 2^127-1.
func (Mersenne127Modulus) P() *big.Int { return mersenne127P() }

// Mersenne127 is the prime field of order 2^127-1.
type Mersenne127 = Element[Mersenne127Modulus]
