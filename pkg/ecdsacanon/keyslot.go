package ecdsacanon

import "fmt"

// KeySlot identifies a key held by a Signer.
type KeySlot int

const (
	// MinKeySlot is the first slot available for user keys.  Slots below it
	// are reserved by the device for its own keys.
	MinKeySlot KeySlot = 16

	// MaxKeySlot is the last slot available for user keys.
	MaxKeySlot KeySlot = 512
)

// Validate returns an error with code ErrInvalidKeySlot when the slot is
// outside [MinKeySlot, MaxKeySlot].
func (k KeySlot) Validate() error {
	if k < MinKeySlot || k > MaxKeySlot {
		str := fmt.Sprintf("key slot %d is outside the user range [%d, %d]",
			k, MinKeySlot, MaxKeySlot)
		return canonError(ErrInvalidKeySlot, str)
	}
	return nil
}
