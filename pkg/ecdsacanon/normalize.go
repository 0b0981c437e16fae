package ecdsacanon

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

const (
	// legacyVBase is the offset of the legacy v encoding,
	// v = legacyVBase + 2*chainFactor + recoveryBit.
	legacyVBase = 35

	// MaxChainFactor is the largest chain factor whose v still fits in a
	// uint64.
	MaxChainFactor = (math.MaxUint64 - legacyVBase - 1) / 2

	// minHexLen is the length of "0x" followed by r, s and a single v digit.
	minHexLen = 2 + 4*ScalarSize + 1

	// maxHexLen allows up to 16 hex digits for v.
	maxHexLen = 2 + 4*ScalarSize + 16
)

// ParseComponents builds SignatureComponents from the fixed-width big-endian
// encodings of r and s returned by a signer.
//
// Both buffers must be exactly 32 bytes long, otherwise an error with code
// ErrInvalidInput is returned.  Range checks on the values themselves are
// done by Normalize.
func ParseComponents(r, s []byte, recoveryBit bool) (*SignatureComponents, error) {
	if len(r) != ScalarSize {
		str := fmt.Sprintf("malformed signature: r must be %d bytes, got %d",
			ScalarSize, len(r))
		return nil, canonError(ErrInvalidInput, str)
	}
	if len(s) != ScalarSize {
		str := fmt.Sprintf("malformed signature: s must be %d bytes, got %d",
			ScalarSize, len(s))
		return nil, canonError(ErrInvalidInput, str)
	}

	return &SignatureComponents{
		R:           new(uint256.Int).SetBytes32(r),
		S:           new(uint256.Int).SetBytes32(s),
		RecoveryBit: recoveryBit,
	}, nil
}

// Components splits the raw signer output into r, s and the recovery bit.
//
// Only recovery ids 0 and 1 can be represented by the legacy v encoding.  Ids
// 2 and 3 (r overflowed the group order) are rejected with ErrInvalidInput.
func (raw *RawSignature) Components() (*SignatureComponents, error) {
	if raw.RecoveryID > 1 {
		str := fmt.Sprintf("recovery id %d cannot be encoded in v",
			raw.RecoveryID)
		return nil, canonError(ErrInvalidInput, str)
	}
	return ParseComponents(raw.Signature[:ScalarSize],
		raw.Signature[ScalarSize:], raw.RecoveryID == 1)
}

// Normalize converts the signature to canonical low-s form and computes its
// legacy v value for the given chain factor.
//
// When 2*s >= N the signature is replaced by (r, N-s) and the recovery bit is
// flipped, since negating s mirrors the nonce point across the x axis.  The
// input is never modified.
//
// An error with code ErrInvalidSignature is returned if r or s is zero or not
// below the group order, and ErrInvalidInput if the chain factor exceeds
// MaxChainFactor.
func Normalize(c *SignatureComponents, chainFactor uint64) (*NormalizedSignature, error) {
	if c == nil || c.R == nil || c.S == nil {
		return nil, canonError(ErrInvalidInput, "signature components are missing")
	}
	if c.R.IsZero() {
		return nil, canonError(ErrInvalidSignature, "invalid signature: r is zero")
	}
	if c.S.IsZero() {
		return nil, canonError(ErrInvalidSignature, "invalid signature: s is zero")
	}
	if !c.R.Lt(Secp256k1CurveOrder) {
		return nil, canonError(ErrInvalidSignature,
			"invalid signature: r is not less than the curve order")
	}
	if !c.S.Lt(Secp256k1CurveOrder) {
		return nil, canonError(ErrInvalidSignature,
			"invalid signature: s is not less than the curve order")
	}
	if chainFactor > MaxChainFactor {
		str := fmt.Sprintf("chain factor %d overflows v", chainFactor)
		return nil, canonError(ErrInvalidInput, str)
	}

	r := new(uint256.Int).Set(c.R)
	s := new(uint256.Int).Set(c.S)
	recoveryBit := c.RecoveryBit
	if !IsLowS(s) {
		s.Sub(Secp256k1CurveOrder, s)
		recoveryBit = !recoveryBit
		log.Tracef("Replaced high s with N-s (recovery bit now %v)", recoveryBit)
	}

	return &NormalizedSignature{
		R:           r,
		S:           s,
		RecoveryBit: recoveryBit,
		V:           legacyV(chainFactor, recoveryBit),
	}, nil
}

// legacyV folds the chain factor and recovery bit into v.
func legacyV(chainFactor uint64, recoveryBit bool) uint64 {
	v := chainFactor*2 + legacyVBase
	if recoveryBit {
		v++
	}
	return v
}

// ChainFactor returns the chain factor encoded in v.
func (sig *NormalizedSignature) ChainFactor() uint64 {
	return (sig.V - legacyVBase) / 2
}

// Hex serializes the signature as "0x" followed by r and s as 64 zero-padded
// hex digits each and v as unpadded hex digits.
func (sig *NormalizedSignature) Hex() string {
	r := sig.R.Bytes32()
	s := sig.S.Bytes32()
	return fmt.Sprintf("0x%x%x%x", r[:], s[:], sig.V)
}

// String returns the hex serialization of the signature.
func (sig *NormalizedSignature) String() string {
	return sig.Hex()
}

// RecoverableBytes returns the 65-byte r || s || recoveryBit encoding used
// by public key recovery routines such as ecrecover.
func (sig *NormalizedSignature) RecoverableBytes() [65]byte {
	var b [65]byte
	r := sig.R.Bytes32()
	s := sig.S.Bytes32()
	copy(b[:ScalarSize], r[:])
	copy(b[ScalarSize:2*ScalarSize], s[:])
	if sig.RecoveryBit {
		b[64] = 1
	}
	return b
}

// ParseNormalizedHex parses a signature previously serialized with Hex.
//
// The recovery bit is recovered from the parity of v - 35.  Signatures whose
// s is not in low-s form are rejected with ErrInvalidSignature since they
// could not have been produced by Normalize.
func ParseNormalizedHex(str string) (*NormalizedSignature, error) {
	if !strings.HasPrefix(str, "0x") && !strings.HasPrefix(str, "0X") {
		return nil, canonError(ErrInvalidInput, "signature must start with 0x")
	}
	if len(str) < minHexLen || len(str) > maxHexLen {
		desc := fmt.Sprintf("signature must be between %d and %d characters, got %d",
			minHexLen, maxHexLen, len(str))
		return nil, canonError(ErrInvalidInput, desc)
	}
	body := str[2:]

	rs, err := hex.DecodeString(body[:4*ScalarSize])
	if err != nil {
		return nil, canonError(ErrInvalidInput,
			fmt.Sprintf("malformed r or s: %v", err))
	}
	v, err := strconv.ParseUint(body[4*ScalarSize:], 16, 64)
	if err != nil {
		return nil, canonError(ErrInvalidInput,
			fmt.Sprintf("malformed v: %v", err))
	}
	if v < legacyVBase {
		desc := fmt.Sprintf("v %d is below the legacy base %d", v, legacyVBase)
		return nil, canonError(ErrInvalidInput, desc)
	}

	recoveryBit := (v-legacyVBase)%2 == 1
	c, err := ParseComponents(rs[:ScalarSize], rs[ScalarSize:], recoveryBit)
	if err != nil {
		return nil, err
	}
	if !IsLowS(c.S) {
		return nil, canonError(ErrInvalidSignature,
			"invalid signature: s is not in low-s form")
	}

	sig, err := Normalize(c, (v-legacyVBase)/2)
	if err != nil {
		return nil, err
	}
	return sig, nil
}
