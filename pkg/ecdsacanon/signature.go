package ecdsacanon

import "github.com/holiman/uint256"

// SignatureComponents represents the raw (r, s, recovery bit) triple returned
// by a signer, before normalization.
type SignatureComponents struct {
	R           *uint256.Int // r component of the signature
	S           *uint256.Int // s component of the signature
	RecoveryBit bool         // Parity of the y coordinate of the nonce point
}

// NormalizedSignature is a signature in canonical low-s form together with
// the legacy v encoding of its chain factor and recovery bit.
type NormalizedSignature struct {
	R           *uint256.Int // r component of the signature
	S           *uint256.Int // s component, always <= N/2
	RecoveryBit bool         // Recovery bit after any low-s correction
	V           uint64       // 35 + 2*chainFactor + RecoveryBit
}

// RawSignature is the output of a Signer: the fixed-width big-endian
// encoding of r followed by s, and the recovery id reported by the device.
type RawSignature struct {
	Signature  [64]byte
	RecoveryID byte
}
