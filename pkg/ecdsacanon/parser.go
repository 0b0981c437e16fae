package ecdsacanon

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// SignatureParser defines the interface for parsing raw signer output from
// various sources.
type SignatureParser interface {
	// ParseSignatures parses raw signatures from a source and returns them.
	ParseSignatures(source string) ([]*RawSignature, error)
}

// JSONParser parses raw signatures from JSON files.
type JSONParser struct {
	RField        string // Field name for r (default: "r")
	SField        string // Field name for s (default: "s")
	RecoveryField string // Field name for the recovery id (default: "recovery_id")
}

// ParseSignatures parses raw signatures from a JSON file.
//
// Expected format:
//
//	[
//	  {"r": "0x...", "s": "0x...", "recovery_id": 0},
//	  {"r": "1234...", "s": "5678...", "recovery_id": "1"}
//	]
//
// Scalars are strings or numbers.  A string is hex when it has a 0x prefix
// or is 64 characters long with at least one digit in a-f, and decimal
// otherwise.  JSON numbers are always decimal.  Recovery ids are 0/1 or
// 27/28.  Unknown fields are ignored.
func (p *JSONParser) ParseSignatures(jsonFile string) ([]*RawSignature, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	rField := fieldOrDefault(p.RField, "r")
	sField := fieldOrDefault(p.SField, "s")
	recoveryField := fieldOrDefault(p.RecoveryField, "recovery_id")

	signatures := make([]*RawSignature, 0, len(items))
	for i, item := range items {
		rVal, ok := item[rField]
		if !ok {
			return nil, fmt.Errorf("record %d: missing %s field", i, rField)
		}
		sVal, ok := item[sField]
		if !ok {
			return nil, fmt.Errorf("record %d: missing %s field", i, sField)
		}
		recVal, ok := item[recoveryField]
		if !ok {
			return nil, fmt.Errorf("record %d: missing %s field", i, recoveryField)
		}

		sig, err := buildRawSignature(rVal, sVal, recVal)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		signatures = append(signatures, sig)
	}

	return signatures, nil
}

// CSVParser parses raw signatures from CSV files.
type CSVParser struct {
	RCol        string // Column name for r (default: "r")
	SCol        string // Column name for s (default: "s")
	RecoveryCol string // Column name for the recovery id (default: "recovery_id")
}

// ParseSignatures parses raw signatures from a CSV file with a header row.
func (p *CSVParser) ParseSignatures(csvFile string) ([]*RawSignature, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	rCol := fieldOrDefault(p.RCol, "r")
	sCol := fieldOrDefault(p.SCol, "s")
	recoveryCol := fieldOrDefault(p.RecoveryCol, "recovery_id")

	rIdx, sIdx, recIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case rCol:
			rIdx = i
		case sCol:
			sIdx = i
		case recoveryCol:
			recIdx = i
		}
	}
	if rIdx == -1 || sIdx == -1 || recIdx == -1 {
		return nil, fmt.Errorf("missing required columns: %s, %s or %s",
			rCol, sCol, recoveryCol)
	}

	signatures := make([]*RawSignature, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		sig, err := buildRawSignature(record[rIdx], record[sIdx], record[recIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		signatures = append(signatures, sig)
	}

	return signatures, nil
}

func fieldOrDefault(field, def string) string {
	if field == "" {
		return def
	}
	return field
}

func buildRawSignature(rVal, sVal, recVal interface{}) (*RawSignature, error) {
	r, err := parseScalar(rVal)
	if err != nil {
		return nil, fmt.Errorf("failed to parse r: %w", err)
	}
	s, err := parseScalar(sVal)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s: %w", err)
	}
	recoveryID, err := parseRecoveryID(recVal)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recovery id: %w", err)
	}

	sig := &RawSignature{RecoveryID: recoveryID}
	rBytes := r.Bytes32()
	sBytes := s.Bytes32()
	copy(sig.Signature[:ScalarSize], rBytes[:])
	copy(sig.Signature[ScalarSize:], sBytes[:])
	return sig, nil
}

// isBareHexScalar reports whether s is an unprefixed fixed-width hex scalar.
// A string made of decimal digits only is never treated as hex.
func isBareHexScalar(s string) bool {
	return len(s) == 2*ScalarSize && strings.ContainsAny(s, "abcdefABCDEF")
}

// parseScalar parses a 256-bit unsigned integer.  Strings with a 0x prefix
// are read as hex, as are unprefixed 64-character strings containing at
// least one of a-f.  Other strings and JSON numbers are read as decimal.
func parseScalar(val interface{}) (*uint256.Int, error) {
	switch v := val.(type) {
	case string:
		v = strings.TrimSpace(v)
		digits := strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
		if len(digits) != len(v) || isBareHexScalar(digits) {
			if len(digits)%2 != 0 {
				digits = "0" + digits
			}
			b, err := hex.DecodeString(digits)
			if err != nil {
				return nil, fmt.Errorf("invalid hex number %q: %w", v, err)
			}
			if len(b) > ScalarSize {
				return nil, fmt.Errorf("number %q exceeds %d bytes", v, ScalarSize)
			}
			return new(uint256.Int).SetBytes(b), nil
		}
		z, err := uint256.FromDecimal(v)
		if err != nil {
			return nil, fmt.Errorf("invalid number format %q: %w", v, err)
		}
		return z, nil

	case json.Number:
		z, err := uint256.FromDecimal(string(v))
		if err != nil {
			return nil, fmt.Errorf("invalid number format %q: %w", v, err)
		}
		return z, nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}

// parseRecoveryID parses a recovery id.  The 27/28 form used by compact
// signatures is accepted and mapped to 0/1.
func parseRecoveryID(val interface{}) (byte, error) {
	var s string
	switch v := val.(type) {
	case string:
		s = strings.TrimSpace(v)
	case json.Number:
		s = string(v)
	default:
		return 0, fmt.Errorf("unsupported type: %T", val)
	}

	id, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid recovery id %q: %w", s, err)
	}
	if id == compactSigMagicOffset || id == compactSigMagicOffset+1 {
		id -= compactSigMagicOffset
	}
	return byte(id), nil
}
