package voting

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/storage"
)

// AddressAuthorizer authorizes a fixed set of addresses. It is used by tests
// and by reads which do not need any authorization.
type AddressAuthorizer struct {
	addresses []string
}

func NewAddressAuthorizer(addresses ...string) *AddressAuthorizer {
	return &AddressAuthorizer{addresses: addresses}
}

func (a *AddressAuthorizer) RequireAuth(address string) error {
	if _, found := common.InStringArray(a.addresses, address); !found {
		return errors.Unauthorized.Clone().SetData("address", address)
	}

	return nil
}

func NewTestEnv(st *storage.LevelDBBackend, addresses ...string) *Env {
	return NewEnv(NewContractStorage(st, 1), NewAddressAuthorizer(addresses...))
}
