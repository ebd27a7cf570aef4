// Package ledger keeps the records of the invocation boundary: the ledger
// sequence and the history of the committed invocations.
package ledger

import (
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/storage"
	"boscoin.io/votebook/lib/voting"
)

const InvocationHistoryPrefix = "ih-" // ih-{hash}

func GetInvocationHistoryKey(hash string) string {
	return InvocationHistoryPrefix + hash
}

// InvocationHistory is kept for every committed invocation; its existence
// rejects the same invocation submitted again.
type InvocationHistory struct {
	Hash            string   `json:"hash"`
	ContractAddress string   `json:"contract_address"`
	Method          string   `json:"method"`
	Args            []string `json:"args"`
	Signers         []string `json:"signers"`
	LedgerSequence  uint64   `json:"ledger_sequence"`
	Committed       string   `json:"committed"`
}

func (h InvocationHistory) Save(st *storage.LevelDBBackend) error {
	return st.New(GetInvocationHistoryKey(h.Hash), h)
}

func (h InvocationHistory) String() string {
	return string(common.MustMarshalJSON(h))
}

func ExistsInvocationHistory(st *storage.LevelDBBackend, hash string) (bool, error) {
	return st.Has(GetInvocationHistoryKey(hash))
}

func GetInvocationHistory(st *storage.LevelDBBackend, hash string) (h InvocationHistory, err error) {
	err = st.Get(GetInvocationHistoryKey(hash), &h)
	return
}

// GetLedgerSequence returns the ledger sequence of the last committed
// invocation, 0 before the first one.
func GetLedgerSequence(st *storage.LevelDBBackend) (seq uint64, err error) {
	if err = st.Get(voting.KeyLedgerSequence, &seq); err == errors.StorageRecordDoesNotExist {
		err = nil
	}

	return
}

func SetLedgerSequence(st *storage.LevelDBBackend, seq uint64) error {
	return st.Put(voting.KeyLedgerSequence, seq)
}
