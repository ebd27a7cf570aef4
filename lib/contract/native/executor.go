package native

import (
	"boscoin.io/votebook/lib/contract/context"
	"boscoin.io/votebook/lib/contract/payload"
	"boscoin.io/votebook/lib/contract/value"
	"boscoin.io/votebook/lib/errors"
)

type ExecFunc func(e *NativeExecutor, code *payload.ExecCode) (*value.Value, error)

type NativeExecutor struct {
	Context *context.Context

	execFuncs map[string]ExecFunc
}

func NewNativeExecutor(ctx *context.Context) *NativeExecutor {
	ex := &NativeExecutor{
		Context:   ctx,
		execFuncs: map[string]ExecFunc{},
	}

	return ex
}

func (ex *NativeExecutor) Execute(c *payload.ExecCode) (*value.Value, error) {
	ex.loadFuncs(c.ContractAddress)

	if f, ok := ex.execFuncs[c.Method]; ok {
		return f(ex, c)
	}

	return nil, errors.MethodNotFound.Clone().SetData("method", c.Method)
}

func (ex *NativeExecutor) RegisterFunc(name string, f ExecFunc) {
	ex.execFuncs[name] = f
}

func (ex *NativeExecutor) loadFuncs(addr string) {
	if r, found := getContract(addr); found {
		r(ex)
	}
}
