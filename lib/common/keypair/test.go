package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Random makes new keypair for tests; it panics when the random source
// fails.
func Random() *Full {
	kp, err := stellar.Random()
	if err != nil {
		panic(err)
	}

	return kp
}
