package ecdsacanon

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// HashMessage hashes a message with Keccak-256, the digest signed by
// transaction signers.
func HashMessage(message []byte) []byte {
	return crypto.Keccak256(message)
}

// Address returns the account address of a public key: the last 20 bytes of
// the Keccak-256 hash of its uncompressed encoding without the prefix byte.
func Address(pubKey *secp256k1.PublicKey) common.Address {
	uncompressed := pubKey.SerializeUncompressed()
	return common.BytesToAddress(crypto.Keccak256(uncompressed[1:])[12:])
}

// RecoverPubKey recovers the public key that produced sig over digest.
func RecoverPubKey(sig *NormalizedSignature, digest []byte) (*secp256k1.PublicKey, error) {
	if err := validateDigest(digest); err != nil {
		return nil, err
	}

	var compact [65]byte
	compact[0] = compactSigMagicOffset
	if sig.RecoveryBit {
		compact[0]++
	}
	rs := sig.RecoverableBytes()
	copy(compact[1:], rs[:2*ScalarSize])

	pubKey, _, err := ecdsa.RecoverCompact(compact[:], digest)
	if err != nil {
		return nil, fmt.Errorf("failed to recover public key: %w", err)
	}
	return pubKey, nil
}

// VerifyRecoverable verifies that the public key recovered from sig and
// digest matches pubKey.
//
// Returns:
//   - True if the recovered key matches, false otherwise
func VerifyRecoverable(sig *NormalizedSignature, digest []byte, pubKey *secp256k1.PublicKey) (bool, error) {
	if pubKey == nil {
		return false, fmt.Errorf("public key cannot be nil")
	}
	recovered, err := RecoverPubKey(sig, digest)
	if err != nil {
		return false, err
	}
	return recovered.IsEqual(pubKey), nil
}
