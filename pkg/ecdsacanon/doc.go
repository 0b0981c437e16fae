// Package ecdsacanon normalizes secp256k1 ECDSA signatures produced by an
// external signer into canonical low-s form and encodes them with a legacy
// recoverable v value suitable for transaction signing.
//
// A signer (usually a hardware module) returns r, s and a recovery bit.  The
// signature (r, s) and (r, N-s) both verify for the same message and key, so
// callers that publish signatures enforce s <= N/2 and flip the recovery bit
// whenever s has to be negated.  The recovery bit and a chain factor c are
// then folded into v = 35 + 2c + bit.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/ecdsa-canonical/pkg/ecdsacanon"
//
//	// Wrap any Signer, for example a hardware module binding.
//	client := ecdsacanon.NewClient(signer)
//
//	sig, err := client.SignDigest(ctx, digest, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(sig.Hex()) // 0x<r:64><s:64><v>
//
// # Normalizing Raw Output
//
// Signatures obtained elsewhere can be normalized directly:
//
//	comps, err := ecdsacanon.ParseComponents(rBytes, sBytes, recoveryBit)
//	if err != nil {
//	    return err
//	}
//	sig, err := ecdsacanon.Normalize(comps, 1)
//
// # Custom Signers
//
// Implement the Signer interface to plug in a device:
//
//	type MySigner struct{}
//
//	func (s *MySigner) Sign(ctx context.Context, digest []byte, slot KeySlot) (*RawSignature, error) {
//	    // Call into the device and return r||s plus the recovery id.
//	}
//
//	client := ecdsacanon.NewClient(&MySigner{})
package ecdsacanon
