package ecdsacanon

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/holiman/uint256"
)

// fixturesDir returns the path to the fixtures directory (works regardless of test cwd).
func fixturesDir() string {
	_, f, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(f), "..", "..", "fixtures")
}

// testKeyInfo describes the key that produced the signature fixtures.
type testKeyInfo struct {
	PrivateKey   string `json:"private_key"`
	PublicKeyHex string `json:"public_key_hex"`
	Address      string `json:"address"`
}

// fixtureRecord is one raw signature from fixtures/raw_signatures.json along
// with the digest it signs and its expected canonical encoding for chain
// factor 1.
type fixtureRecord struct {
	Digest     string `json:"digest"`
	R          string `json:"r"`
	S          string `json:"s"`
	RecoveryID byte   `json:"recovery_id"`
	Expected   string `json:"expected"`
}

// loadTestKeyInfo reads the test key information from fixtures/test_key_info.json
func loadTestKeyInfo(t *testing.T) testKeyInfo {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(fixturesDir(), "test_key_info.json"))
	if err != nil {
		t.Fatalf("Failed to load key info: %v", err)
	}
	var keyInfo testKeyInfo
	if err := json.Unmarshal(data, &keyInfo); err != nil {
		t.Fatalf("Failed to decode key info: %v", err)
	}
	return keyInfo
}

// loadTestKey returns the private key that produced the fixtures.
func loadTestKey(t *testing.T) *secp256k1.PrivateKey {
	t.Helper()

	keyInfo := loadTestKeyInfo(t)
	return secp256k1.PrivKeyFromBytes(hexDecode(t, keyInfo.PrivateKey))
}

// loadFixtureRecords loads fixtures/raw_signatures.json.
func loadFixtureRecords(t *testing.T) []fixtureRecord {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(fixturesDir(), "raw_signatures.json"))
	if err != nil {
		t.Fatalf("Failed to load signature fixtures: %v", err)
	}
	var records []fixtureRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("Failed to decode signature fixtures: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("Expected at least one signature fixture")
	}
	return records
}

// rawSignature converts a fixture record to signer output.
func (r fixtureRecord) rawSignature(t *testing.T) *RawSignature {
	t.Helper()

	raw := &RawSignature{RecoveryID: r.RecoveryID}
	copy(raw.Signature[:ScalarSize], hexDecode(t, r.R))
	copy(raw.Signature[ScalarSize:], hexDecode(t, r.S))
	return raw
}

// hexDecode decodes a hex string, handling 0x prefix
func hexDecode(t *testing.T, s string) []byte {
	t.Helper()

	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("Failed to decode hex %q: %v", s, err)
	}
	return b
}

// scalarFromHex parses a (possibly zero-padded) hex string into a 256-bit
// integer.
func scalarFromHex(t *testing.T, s string) *uint256.Int {
	t.Helper()

	return new(uint256.Int).SetBytes(hexDecode(t, s))
}

// bytes32 returns the 32-byte big-endian encoding of v.
func bytes32(v *uint256.Int) []byte {
	b := v.Bytes32()
	return b[:]
}
