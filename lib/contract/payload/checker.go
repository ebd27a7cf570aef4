package payload

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/errors"
)

type InvocationChecker struct {
	common.DefaultChecker

	NetworkID  []byte
	Invocation Invocation
}

func CheckInvocationExecCode(c common.Checker, args ...interface{}) error {
	checker := c.(*InvocationChecker)

	code := checker.Invocation.B.ExecCode
	if len(code.ContractAddress) < 1 || len(code.Method) < 1 {
		return errors.BadArgument.Clone().SetData("exec_code", code)
	}

	return nil
}

func CheckInvocationHash(c common.Checker, args ...interface{}) error {
	checker := c.(*InvocationChecker)

	if checker.Invocation.H.Hash != checker.Invocation.B.MakeHashString() {
		return errors.InvocationHashMismatch
	}

	return nil
}

// CheckInvocationAuthorizations verifies every signature; one bad signature
// fails the whole invocation.
func CheckInvocationAuthorizations(c common.Checker, args ...interface{}) error {
	checker := c.(*InvocationChecker)

	seen := map[string]bool{}
	for _, a := range checker.Invocation.Authorizations {
		if seen[a.Address] {
			return errors.BadArgument.Clone().SetData("duplicated-authorization", a.Address)
		}
		seen[a.Address] = true

		err := keypair.VerifySignature(a.Address, checker.NetworkID, checker.Invocation.H.Hash, a.Signature)
		if err != nil {
			return errors.Unauthorized.Clone().SetData("address", a.Address).SetData("error", err.Error())
		}
	}

	return nil
}

var InvocationWellFormedCheckerFuncs = []common.CheckerFunc{
	CheckInvocationExecCode,
	CheckInvocationHash,
	CheckInvocationAuthorizations,
}

func (i Invocation) IsWellFormed(networkID []byte) error {
	checker := &InvocationChecker{
		DefaultChecker: common.DefaultChecker{Funcs: InvocationWellFormedCheckerFuncs},
		NetworkID:      networkID,
		Invocation:     i,
	}

	return common.RunChecker(checker, common.DefaultDeferFunc)
}
