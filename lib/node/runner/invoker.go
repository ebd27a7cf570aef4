package runner

import (
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/observer"
	"boscoin.io/votebook/lib/contract"
	ctx "boscoin.io/votebook/lib/contract/context"
	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/contract/payload"
	"boscoin.io/votebook/lib/contract/value"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/ledger"
	"boscoin.io/votebook/lib/metrics"
	"boscoin.io/votebook/lib/storage"
	"boscoin.io/votebook/lib/voting"
)

// InvocationResult is returned for the committed invocation.
type InvocationResult struct {
	Hash           string       `json:"hash"`
	Method         string       `json:"method"`
	Value          *value.Value `json:"value"`
	LedgerSequence uint64       `json:"ledger_sequence"`
}

type InvokeChecker struct {
	common.DefaultChecker

	NetworkID   []byte
	Contract    *voting.Contract
	Transaction *storage.LevelDBBackend
	Invocation  payload.Invocation
	Log         logging.Logger

	Env            *voting.Env
	LedgerSequence uint64
	Result         *value.Value
}

// InvokeAuthorize verifies the signatures of the invocation; the signers are
// the identities of the contract operation.
func InvokeAuthorize(c common.Checker, args ...interface{}) error {
	checker := c.(*InvokeChecker)

	auth, err := payload.NewSignatureAuthorizer(checker.NetworkID, checker.Invocation)
	if err != nil {
		return err
	}

	var seq uint64
	if seq, err = ledger.GetLedgerSequence(checker.Transaction); err != nil {
		return err
	}
	checker.LedgerSequence = seq + 1

	checker.Env = voting.NewEnv(
		voting.NewContractStorage(checker.Transaction, checker.LedgerSequence),
		auth,
	)

	return nil
}

func InvokeNotProcessed(c common.Checker, args ...interface{}) error {
	checker := c.(*InvokeChecker)

	hash := checker.Invocation.GetHash()
	if found, err := ledger.ExistsInvocationHistory(checker.Transaction, hash); err != nil {
		return err
	} else if found {
		return errors.InvocationAlreadyProcessed.Clone().SetData("hash", hash)
	}

	return nil
}

func InvokeExecute(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*InvokeChecker)

	code := checker.Invocation.B.ExecCode
	checker.Result, err = contract.Execute(ctx.NewContext(checker.Env, checker.Contract), &code)

	return
}

func InvokeSaveHistory(c common.Checker, args ...interface{}) error {
	checker := c.(*InvokeChecker)

	code := checker.Invocation.B.ExecCode
	history := ledger.InvocationHistory{
		Hash:            checker.Invocation.GetHash(),
		ContractAddress: code.ContractAddress,
		Method:          code.Method,
		Args:            code.Args,
		Signers:         checker.Invocation.Signers(),
		LedgerSequence:  checker.LedgerSequence,
		Committed:       common.NowISO8601(),
	}
	if err := history.Save(checker.Transaction); err != nil {
		return err
	}

	return ledger.SetLedgerSequence(checker.Transaction, checker.LedgerSequence)
}

var DefaultInvokeCheckerFuncs = []common.CheckerFunc{
	InvokeAuthorize,
	InvokeNotProcessed,
	InvokeExecute,
	InvokeSaveHistory,
}

// Invoker runs one invocation in one leveldb transaction; any error discards
// every write of the invocation. goleveldb allows only one open transaction,
// so invocations are applied one by one.
type Invoker struct {
	networkID []byte
	storage   *storage.LevelDBBackend
	contract  *voting.Contract
	log       logging.Logger

	checkerFuncs []common.CheckerFunc
}

func NewInvoker(networkID []byte, st *storage.LevelDBBackend, config voting.Config) *Invoker {
	iv := &Invoker{
		networkID:    networkID,
		storage:      st,
		contract:     voting.NewContract(config),
		log:          log.New(logging.Ctx{"network-id": string(networkID)}),
		checkerFuncs: DefaultInvokeCheckerFuncs,
	}
	iv.contract.SetLogger(iv.log)

	return iv
}

func (iv *Invoker) NetworkID() []byte {
	return iv.networkID
}

func (iv *Invoker) Storage() *storage.LevelDBBackend {
	return iv.storage
}

func (iv *Invoker) Contract() *voting.Contract {
	return iv.contract
}

func (iv *Invoker) SetCheckerFuncs(f ...common.CheckerFunc) {
	iv.checkerFuncs = f
}

func (iv *Invoker) Invoke(invocation payload.Invocation) (result *InvocationResult, err error) {
	begin := time.Now()
	method := invocation.B.ExecCode.Method
	defer func() {
		metrics.Invocation.Observe(begin, method, err)
	}()

	var ts *storage.LevelDBBackend
	if ts, err = iv.storage.OpenTransaction(); err != nil {
		return
	}

	checker := &InvokeChecker{
		DefaultChecker: common.DefaultChecker{Funcs: iv.checkerFuncs},
		NetworkID:      iv.networkID,
		Contract:       iv.contract,
		Transaction:    ts,
		Invocation:     invocation,
		Log:            iv.log.New(logging.Ctx{"hash": invocation.GetHash(), "method": method}),
	}

	if err = common.RunChecker(checker, nil); err != nil {
		if discardErr := ts.Discard(); discardErr != nil {
			checker.Log.Error("failed to discard transaction", "error", discardErr)
		}
		checker.Log.Debug("invocation aborted", "error", err)
		return
	}

	if err = ts.Commit(); err != nil {
		checker.Log.Error("failed to commit transaction", "error", err)
		return
	}

	checker.Log.Debug("invocation committed", "ledger-sequence", checker.LedgerSequence)

	iv.observe(checker)

	result = &InvocationResult{
		Hash:           invocation.GetHash(),
		Method:         method,
		Value:          checker.Result,
		LedgerSequence: checker.LedgerSequence,
	}

	return
}

func (iv *Invoker) observe(checker *InvokeChecker) {
	metrics.Ledger.SetSequence(checker.LedgerSequence)

	code := checker.Invocation.B.ExecCode
	switch code.Method {
	case execfunc.MethodCreateProposal:
		if checker.Result != nil {
			if id, ok := checker.Result.Interface().(uint64); ok {
				metrics.Ledger.SetProposals(id)
			}
		}
	case execfunc.MethodCastVote:
		if vote, err := execfunc.ParseVote(code.Args[1]); err == nil {
			metrics.Ledger.AddVote(vote)
		}
	}

	for _, event := range checker.Env.Events() {
		observer.InvocationObserver.Trigger(event.String(), event)
	}

	event := observer.NewEvent(observer.ResourceInvocation, observer.ConditionAll, "")
	observer.InvocationObserver.Trigger(event.String(), event)
}

// Query runs the read-only method without any transaction and
// authorization.
func (iv *Invoker) Query(code payload.ExecCode) (*value.Value, error) {
	if _, found := common.InStringArray(execfunc.ReadOnlyMethods, code.Method); !found {
		return nil, errors.BadArgument.Clone().SetData("method", code.Method).SetData("error", "not read-only method")
	}

	seq, err := ledger.GetLedgerSequence(iv.storage)
	if err != nil {
		return nil, err
	}

	env := voting.NewEnv(
		voting.NewContractStorage(iv.storage, seq),
		voting.NewAddressAuthorizer(),
	)

	return contract.Execute(ctx.NewContext(env, iv.contract), &code)
}
