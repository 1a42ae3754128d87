package field

import (
	"math/big"
	"sync"
)

// newModpPrime lazily parses an IETF MODP group's hex-encoded safe prime N
// once and caches it, mirroring newMersenne.
func newModpPrime(hexLiteral string) func() *big.Int {
	var once sync.Once
	var cached *big.Int
	return func() *big.Int {
		once.Do(func() {
			v, ok := new(big.Int).SetString(hexLiteral, 16)
			if !ok {
				panic("field: invalid MODP group literal")
			}
			cached = v
		})
		return cached
	}
}

// IETFGroup2Modulus is the 1024-bit MODP group (RFC 2409 group 2).
type IETFGroup2Modulus struct{}

var ietfGroup2P = newModpPrime("FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD" +
	"129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B" +
	"302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0" +
	"BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE65381FF" +
	"FFFFFFFFFFFFFF")

// P returns the 1024-bit MODP group's safe prime N.
func (IETFGroup2Modulus) P() *big.Int { return ietfGroup2P() }

// IETFGroup2 is the field of the 1024-bit IETF MODP group; its generator
// is 2 (IETFGroup2Generator).
type IETFGroup2 = Element[IETFGroup2Modulus]

// IETFGroup2Generator returns the group's publicly known generator g=2.
func IETFGroup2Generator() IETFGroup2 { return FromUint[IETFGroup2Modulus](2) }

// IETFGroup14Modulus is the 2048-bit MODP group (RFC 3526 §3).
type IETFGroup14Modulus struct{}

var ietfGroup14P = newModpPrime("FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD" +
	"129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B" +
	"302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0" +
	"BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2" +
	"007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C6" +
	"2F356208552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C3290" +
	"5E462E36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BC" +
	"BF6955817183995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFF" +
	"FFFFFFFFFF")

// P returns the 2048-bit MODP group's safe prime N.
func (IETFGroup14Modulus) P() *big.Int { return ietfGroup14P() }

// IETFGroup14 is the field of the 2048-bit IETF MODP group.
type IETFGroup14 = Element[IETFGroup14Modulus]

// IETFGroup14Generator returns the group's publicly known generator g=2.
func IETFGroup14Generator() IETFGroup14 { return FromUint[IETFGroup14Modulus](2) }

// IETFGroup3Modulus is a 3072-bit MODP group (RFC 3526 §4), used by this
// toolkit's default Double-Ratchet test fixtures (spec §8 scenario 7).
type IETFGroup3Modulus struct{}

var ietfGroup3P = newModpPrime("FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD" +
	"129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B" +
	"302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0" +
	"BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2" +
	"007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C6" +
	"2F356208552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C3290" +
	"5E462E36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BC" +
	"BF6955817183995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD3317" +
	"0D04507A33A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F8" +
	"5A6E1E4C7ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06" +
	"D98A0864D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0B" +
	"AD946E208E24FA074E5AB3143DB5BFCE0FD108E4B82D120A93AD2CAFFFFFFFFFF" +
	"FFFFFF")

// P returns the 3072-bit MODP group's safe prime N.
func (IETFGroup3Modulus) P() *big.Int { return ietfGroup3P() }

// IETFGroup3 is the field of the 3072-bit IETF MODP group.
type IETFGroup3 = Element[IETFGroup3Modulus]

// IETFGroup3Generator returns the group's publicly known generator g=2.
func IETFGroup3Generator() IETFGroup3 { return FromUint[IETFGroup3Modulus](2) }
