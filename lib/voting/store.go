package voting

import (
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/storage"
)

// Store is the persistent key-value space of the voting contract. `Get`
// returns `errors.StorageRecordDoesNotExist` for missing keys.
type Store interface {
	Has(key string) (bool, error)
	Get(key string, v interface{}) error
	Put(key string, v interface{}) error
	ExtendTTL(key string, threshold, extendTo uint32) error
}

// TTL keeps the ledger sequence until which a record is kept alive.
type TTL struct {
	Key       string `json:"key"`
	LiveUntil uint64 `json:"live_until"`
}

// ContractStorage is the `Store` over leveldb. Usually `st` is a transaction
// opened by the invoker, so every write is committed or discarded together.
type ContractStorage struct {
	st             *storage.LevelDBBackend
	ledgerSequence uint64
}

func NewContractStorage(st *storage.LevelDBBackend, ledgerSequence uint64) *ContractStorage {
	return &ContractStorage{
		st:             st,
		ledgerSequence: ledgerSequence,
	}
}

func (c *ContractStorage) LedgerSequence() uint64 {
	return c.ledgerSequence
}

func (c *ContractStorage) Has(key string) (bool, error) {
	return c.st.Has(key)
}

func (c *ContractStorage) Get(key string, v interface{}) error {
	return c.st.Get(key, v)
}

func (c *ContractStorage) Put(key string, v interface{}) error {
	return c.st.Put(key, v)
}

// ExtendTTL extends the lifetime of `key` to `extendTo` ledgers from the
// current ledger sequence when less than `threshold` ledgers are left.
func (c *ContractStorage) ExtendTTL(key string, threshold, extendTo uint32) error {
	if exists, err := c.st.Has(key); err != nil {
		return err
	} else if !exists {
		return errors.StorageRecordDoesNotExist.Clone().SetData("key", key)
	}

	ttlKey := GetTTLKey(key)
	ttl := TTL{Key: key}
	if err := c.st.Get(ttlKey, &ttl); err != nil && err != errors.StorageRecordDoesNotExist {
		return err
	}

	if ttl.LiveUntil >= c.ledgerSequence && ttl.LiveUntil-c.ledgerSequence >= uint64(threshold) {
		return nil
	}

	ttl.LiveUntil = c.ledgerSequence + uint64(extendTo)
	return c.Put(ttlKey, ttl)
}

// LiveUntil returns the ledger sequence until which `key` is kept alive, 0
// if it was never extended.
func (c *ContractStorage) LiveUntil(key string) (uint64, error) {
	var ttl TTL
	if err := c.st.Get(GetTTLKey(key), &ttl); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return 0, nil
		}
		return 0, err
	}

	return ttl.LiveUntil, nil
}
