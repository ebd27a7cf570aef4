package contract

import (
	"boscoin.io/votebook/lib/contract/context"
	"boscoin.io/votebook/lib/contract/native"
	_ "boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/contract/payload"
	"boscoin.io/votebook/lib/contract/value"
	"boscoin.io/votebook/lib/errors"
)

type Executor interface {
	Execute(*payload.ExecCode) (*value.Value, error)
}

func NewExecutor(ctx *context.Context, execCode *payload.ExecCode) (Executor, error) {
	if !native.HasContract(execCode.ContractAddress) {
		return nil, errors.ContractNotFound.Clone().SetData("address", execCode.ContractAddress)
	}

	return native.NewNativeExecutor(ctx), nil
}

func Execute(ctx *context.Context, execCode *payload.ExecCode) (*value.Value, error) {
	ex, err := NewExecutor(ctx, execCode)
	if err != nil {
		return nil, err
	}

	return ex.Execute(execCode)
}
