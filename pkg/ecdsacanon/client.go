package ecdsacanon

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChainFactor is the chain factor used by legacy transaction signing
// when none is configured.
const DefaultChainFactor = 1

// Client provides a high-level API for producing canonical signatures from a
// Signer and for normalizing previously captured signer output.
type Client struct {
	signer      Signer
	parser      SignatureParser
	chainFactor uint64
	numWorkers  int
}

// NewClient creates a new client with default settings around signer.  The
// signer may be nil when the client is only used to normalize files.
func NewClient(signer Signer) *Client {
	return &Client{
		signer:      signer,
		parser:      &JSONParser{},
		chainFactor: DefaultChainFactor,
	}
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithChainFactor sets the chain factor encoded into v.
func (c *Client) WithChainFactor(chainFactor uint64) *Client {
	c.chainFactor = chainFactor
	return c
}

// WithWorkers controls how many signatures are normalized concurrently by
// NormalizeSignatures (0 = auto-detect).
func (c *Client) WithWorkers(numWorkers int) *Client {
	c.numWorkers = numWorkers
	return c
}

// SignDigest signs a 32-byte digest with the key in slot and returns the
// signature in canonical form.
//
// Errors from normalization are returned unwrapped so callers can match on
// ErrInvalidInput and ErrInvalidSignature.  Neither is retried here: a new
// signature has to be requested from the signer.
func (c *Client) SignDigest(ctx context.Context, digest []byte, slot KeySlot) (*NormalizedSignature, error) {
	if c.signer == nil {
		return nil, errors.New("no signer configured")
	}
	if err := slot.Validate(); err != nil {
		return nil, err
	}
	if err := validateDigest(digest); err != nil {
		return nil, err
	}

	raw, err := c.signer.Sign(ctx, digest, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to sign digest: %w", err)
	}
	if raw == nil {
		return nil, canonError(ErrInvalidInput, "signer returned no signature")
	}

	comps, err := raw.Components()
	if err != nil {
		return nil, err
	}
	sig, err := Normalize(comps, c.chainFactor)
	if err != nil {
		log.Warnf("Signer returned unusable signature for slot %d: %v", slot, err)
		return nil, err
	}

	log.Debugf("Signed digest %x with slot %d (v=%d)", digest, slot, sig.V)
	return sig, nil
}

// SignMessage hashes message with HashMessage and signs the digest.
func (c *Client) SignMessage(ctx context.Context, message []byte, slot KeySlot) (*NormalizedSignature, error) {
	return c.SignDigest(ctx, HashMessage(message), slot)
}

// NormalizeFile parses raw signatures from source with the configured
// parser and normalizes them.
func (c *Client) NormalizeFile(ctx context.Context, source string) ([]*NormalizedSignature, error) {
	raws, err := c.parser.ParseSignatures(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}
	return c.NormalizeSignatures(ctx, raws)
}

// NormalizeSignatures normalizes a batch of raw signatures in parallel.  The
// results are in the same order as raws.  The first failure cancels the
// remaining work and is returned with the index of the offending signature.
func (c *Client) NormalizeSignatures(ctx context.Context, raws []*RawSignature) ([]*NormalizedSignature, error) {
	numWorkers := c.numWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	results := make([]*NormalizedSignature, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if raw == nil {
				return fmt.Errorf("signature %d: %w", i,
					canonError(ErrInvalidInput, "signature is missing"))
			}
			comps, err := raw.Components()
			if err != nil {
				return fmt.Errorf("signature %d: %w", i, err)
			}
			sig, err := Normalize(comps, c.chainFactor)
			if err != nil {
				return fmt.Errorf("signature %d: %w", i, err)
			}
			results[i] = sig
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debugf("Normalized %d signatures using %d workers", len(raws), numWorkers)
	return results, nil
}
