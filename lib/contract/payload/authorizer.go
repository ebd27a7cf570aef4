package payload

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
)

// SignatureAuthorizer authorizes the addresses which signed an invocation.
type SignatureAuthorizer struct {
	signers []string
}

// NewSignatureAuthorizer verifies `invocation` and authorizes its signers.
func NewSignatureAuthorizer(networkID []byte, invocation Invocation) (*SignatureAuthorizer, error) {
	if err := invocation.IsWellFormed(networkID); err != nil {
		return nil, err
	}

	return &SignatureAuthorizer{signers: invocation.Signers()}, nil
}

func (a *SignatureAuthorizer) RequireAuth(address string) error {
	if _, found := common.InStringArray(a.signers, address); !found {
		return errors.Unauthorized.Clone().SetData("address", address)
	}

	return nil
}
