package ecdsacanon

import "github.com/holiman/uint256"

// Secp256k1CurveOrder is the order of the secp256k1 curve
var Secp256k1CurveOrder = uint256.MustFromHex("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

// secp256k1HalfOrder is (N-1)/2.  Since N is odd, 2*s >= N exactly when
// s > secp256k1HalfOrder, which avoids overflowing 256 bits on 2*s.
var secp256k1HalfOrder = new(uint256.Int).Rsh(Secp256k1CurveOrder, 1)

const (
	// ScalarSize is the size of the big-endian encoding of r and s.
	ScalarSize = 32

	// DigestSize is the size of a message digest accepted by signers.
	DigestSize = 32
)

// IsLowS reports whether s is in the lower half of the group order, that is
// whether 2*s < N.
func IsLowS(s *uint256.Int) bool {
	return !s.Gt(secp256k1HalfOrder)
}
