package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mahdiidarabi/ecdsa-canonical/pkg/ecdsacanon"
	"github.com/olekukonko/tablewriter"
)

// signCommand signs a message or digest with a key loaded from a file.
type signCommand struct {
	KeyFile     string `long:"keyfile" required:"yes" description:"File holding the hex-encoded secp256k1 private key"`
	Slot        int    `long:"slot" default:"16" description:"Key slot the key is loaded into"`
	ChainFactor uint64 `long:"chainfactor" default:"1" description:"Chain factor encoded into v"`
	Digest      string `long:"digest" description:"Hex-encoded 32-byte digest to sign instead of hashing MESSAGE"`
	Args        struct {
		Message string `positional-arg-name:"MESSAGE"`
	} `positional-args:"yes"`
}

// Execute implements the flags.Commander interface.
func (c *signCommand) Execute(args []string) error {
	keyHex, err := os.ReadFile(c.KeyFile)
	if err != nil {
		return fmt.Errorf("failed to read key file: %w", err)
	}
	keyBytes, err := decodeHex(string(keyHex))
	if err != nil {
		return fmt.Errorf("failed to parse private key: %w", err)
	}
	if len(keyBytes) != secp256k1.PrivKeyBytesLen {
		return fmt.Errorf("private key must be %d bytes, got %d",
			secp256k1.PrivKeyBytesLen, len(keyBytes))
	}
	key := secp256k1.PrivKeyFromBytes(keyBytes)

	slot := ecdsacanon.KeySlot(c.Slot)
	signer := ecdsacanon.NewSoftwareSigner()
	if err := signer.Import(slot, key); err != nil {
		return err
	}
	client := ecdsacanon.NewClient(signer).WithChainFactor(c.ChainFactor)

	sig, err := c.sign(context.Background(), client, slot)
	if err != nil {
		return err
	}

	log.Infof("Signed with key slot %d", slot)
	fmt.Fprintf(out, "address:   %s\n", ecdsacanon.Address(key.PubKey()).Hex())
	fmt.Fprintf(out, "signature: %s\n", sig.Hex())
	return nil
}

func (c *signCommand) sign(ctx context.Context, client *ecdsacanon.Client, slot ecdsacanon.KeySlot) (*ecdsacanon.NormalizedSignature, error) {
	switch {
	case c.Digest != "":
		digest, err := decodeHex(c.Digest)
		if err != nil {
			return nil, fmt.Errorf("failed to parse digest: %w", err)
		}
		return client.SignDigest(ctx, digest, slot)

	case c.Args.Message != "":
		return client.SignMessage(ctx, []byte(c.Args.Message), slot)
	}

	return nil, errors.New("either --digest or MESSAGE is required")
}

// normalizeCommand normalizes a file of raw signer output.
type normalizeCommand struct {
	Format      string `long:"format" default:"json" choice:"json" choice:"csv" description:"Signature file format"`
	ChainFactor uint64 `long:"chainfactor" default:"1" description:"Chain factor encoded into v"`
	Workers     int    `long:"workers" default:"0" description:"Number of parallel workers (0 = auto-detect based on CPU cores)"`
	Args        struct {
		File string `positional-arg-name:"FILE" required:"yes"`
	} `positional-args:"yes"`
}

// Execute implements the flags.Commander interface.
func (c *normalizeCommand) Execute(args []string) error {
	var parser ecdsacanon.SignatureParser
	if c.Format == "csv" {
		parser = &ecdsacanon.CSVParser{}
	} else {
		parser = &ecdsacanon.JSONParser{}
	}

	raws, err := parser.ParseSignatures(c.Args.File)
	if err != nil {
		return fmt.Errorf("failed to parse signatures: %w", err)
	}
	log.Infof("Loaded %d signatures from %s", len(raws), c.Args.File)

	client := ecdsacanon.NewClient(nil).
		WithChainFactor(c.ChainFactor).
		WithWorkers(c.Workers)
	sigs, err := client.NormalizeSignatures(context.Background(), raws)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "High S", "V", "Signature"})
	table.SetAutoWrapText(false)
	for i, sig := range sigs {
		s := sig.S.Bytes32()
		flipped := !bytes.Equal(raws[i].Signature[ecdsacanon.ScalarSize:], s[:])
		table.Append([]string{
			strconv.Itoa(i),
			strconv.FormatBool(flipped),
			strconv.FormatUint(sig.V, 10),
			sig.Hex(),
		})
	}
	table.Render()
	return nil
}

// verifyCommand checks a canonical signature against a public key.
type verifyCommand struct {
	PubKey  string `long:"pubkey" required:"yes" description:"Hex-encoded compressed or uncompressed public key"`
	Digest  string `long:"digest" description:"Hex-encoded 32-byte digest that was signed"`
	Message string `long:"message" description:"Message whose Keccak-256 hash was signed"`
	Args    struct {
		Signature string `positional-arg-name:"SIGNATURE" required:"yes"`
	} `positional-args:"yes"`
}

// Execute implements the flags.Commander interface.
func (c *verifyCommand) Execute(args []string) error {
	sig, err := ecdsacanon.ParseNormalizedHex(c.Args.Signature)
	if err != nil {
		return err
	}

	pubKeyBytes, err := decodeHex(c.PubKey)
	if err != nil {
		return fmt.Errorf("failed to parse public key: %w", err)
	}
	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return fmt.Errorf("failed to parse public key: %w", err)
	}

	var digest []byte
	switch {
	case c.Digest != "" && c.Message != "":
		return errors.New("--digest and --message are mutually exclusive")
	case c.Digest != "":
		digest, err = decodeHex(c.Digest)
		if err != nil {
			return fmt.Errorf("failed to parse digest: %w", err)
		}
	case c.Message != "":
		digest = ecdsacanon.HashMessage([]byte(c.Message))
	default:
		return errors.New("either --digest or --message is required")
	}

	verified, err := ecdsacanon.VerifyRecoverable(sig, digest, pubKey)
	if err != nil {
		return err
	}
	if !verified {
		return errors.New("signature does not recover the given public key")
	}

	fmt.Fprintf(out, "valid: address %s, chain factor %d\n",
		ecdsacanon.Address(pubKey).Hex(), sig.ChainFactor())
	return nil
}
