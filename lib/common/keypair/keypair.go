// Encapsulate Stellar's keypair package
//
// Provides additional wrapper and convenience functions,
// suited for usage within votebook
package keypair

import (
	"github.com/btcsuite/btcutil/base58"
	stellar "github.com/stellar/go/keypair"
)

// Aliases to stellar types
type Full = stellar.Full
type KP = stellar.KP

// Aliases to stellar functions
var Master = stellar.Master
var Parse = stellar.Parse
var RandomCanFail = stellar.Random

// MakeSignature makes signature from given hash string
func MakeSignature(kp KP, networkID []byte, hash string) ([]byte, error) {
	return kp.Sign(append(networkID, []byte(hash)...))
}

// VerifySignature checks the base58 encoded `signature` of `hash` made by
// `address`.
func VerifySignature(address string, networkID []byte, hash, signature string) error {
	kp, err := Parse(address)
	if err != nil {
		return err
	}

	return kp.Verify(append(networkID, []byte(hash)...), base58.Decode(signature))
}
