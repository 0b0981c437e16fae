package ecdsacanon

import (
	"context"
	"fmt"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// compactSigMagicOffset is the value added to the recovery code in the first
// byte of a compact signature.
const compactSigMagicOffset = 27

// Signer defines the interface to the external device that holds keys and
// produces signatures.  Implementations must return the recovery id along
// with the signature.
type Signer interface {
	// Sign signs a 32-byte digest with the key stored in slot.  The context
	// can be used for cancellation before the device is invoked; the device
	// call itself is treated as atomic.
	Sign(ctx context.Context, digest []byte, slot KeySlot) (*RawSignature, error)
}

// SoftwareSigner is a Signer backed by in-memory secp256k1 private keys.  It
// is meant for development and tests where no hardware module is present.
type SoftwareSigner struct {
	mtx  sync.RWMutex
	keys map[KeySlot]*secp256k1.PrivateKey
}

// NewSoftwareSigner creates a software signer with no keys.
func NewSoftwareSigner() *SoftwareSigner {
	return &SoftwareSigner{
		keys: make(map[KeySlot]*secp256k1.PrivateKey),
	}
}

// Import stores key in slot, replacing any previous key.
func (s *SoftwareSigner) Import(slot KeySlot, key *secp256k1.PrivateKey) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	if key == nil {
		return fmt.Errorf("private key cannot be nil")
	}

	s.mtx.Lock()
	s.keys[slot] = key
	s.mtx.Unlock()
	return nil
}

// Generate creates a new random key in slot and returns its public key.
func (s *SoftwareSigner) Generate(slot KeySlot) (*secp256k1.PublicKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key: %w", err)
	}
	if err := s.Import(slot, key); err != nil {
		return nil, err
	}
	return key.PubKey(), nil
}

// PubKey returns the public key of the key stored in slot.
func (s *SoftwareSigner) PubKey(slot KeySlot) (*secp256k1.PublicKey, error) {
	key, err := s.key(slot)
	if err != nil {
		return nil, err
	}
	return key.PubKey(), nil
}

func (s *SoftwareSigner) key(slot KeySlot) (*secp256k1.PrivateKey, error) {
	s.mtx.RLock()
	key, ok := s.keys[slot]
	s.mtx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no key in slot %d", slot)
	}
	return key, nil
}

// Sign implements the Signer interface using RFC6979 deterministic nonces.
func (s *SoftwareSigner) Sign(ctx context.Context, digest []byte, slot KeySlot) (*RawSignature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateDigest(digest); err != nil {
		return nil, err
	}
	key, err := s.key(slot)
	if err != nil {
		return nil, err
	}

	// The compact format is <27 + recovery code (+4 if compressed)><32-byte
	// R><32-byte S>.  Only the low two bits carry the recovery code.
	compact := ecdsa.SignCompact(key, digest, false)

	raw := &RawSignature{RecoveryID: recoveryCode(compact[0])}
	copy(raw.Signature[:], compact[1:])
	return raw, nil
}

// recoveryCode extracts the recovery code from the header byte of a compact
// signature, ignoring the compressed key flag.
func recoveryCode(header byte) byte {
	return (header - compactSigMagicOffset) & 3
}

// validateDigest returns an error with code ErrInvalidDigest when digest is
// not DigestSize bytes.
func validateDigest(digest []byte) error {
	if len(digest) != DigestSize {
		str := fmt.Sprintf("digest must be %d bytes, got %d", DigestSize,
			len(digest))
		return canonError(ErrInvalidDigest, str)
	}
	return nil
}
