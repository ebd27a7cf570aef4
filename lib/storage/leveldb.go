package storage

import (
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
)

// LevelDBCore is satisfied by both `leveldb.DB` and `leveldb.Transaction`.
type LevelDBCore interface {
	Has([]byte, *leveldbOpt.ReadOptions) (bool, error)
	Get([]byte, *leveldbOpt.ReadOptions) ([]byte, error)
	NewIterator(*leveldbUtil.Range, *leveldbOpt.ReadOptions) leveldbIterator.Iterator
	Put([]byte, []byte, *leveldbOpt.WriteOptions) error
	Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error
	Delete([]byte, *leveldbOpt.WriteOptions) error
}

// LevelDBBackend stores json encoded values by string key. The backend
// returned by `OpenTransaction` writes into the transaction.
type LevelDBBackend struct {
	DB *leveldb.DB

	Core LevelDBCore
}

func coreError(err error) error {
	switch err.(type) {
	case nil:
		return nil
	case *errors.Error:
		return err
	}

	return errors.StorageCoreError.Clone().SetData("error", err.Error())
}

func (st *LevelDBBackend) Init(config *Config) error {
	var db *leveldb.DB
	var err error

	switch config.Scheme {
	case SchemeFile:
		db, err = leveldb.OpenFile(config.Path, nil)
	case SchemeMemory:
		db, err = leveldb.Open(leveldbStorage.NewMemStorage(), nil)
	default:
		err = fmt.Errorf("unsupported storage scheme %q", config.Scheme)
	}
	if err != nil {
		return coreError(err)
	}

	st.DB = db
	st.Core = db

	return nil
}

func (st *LevelDBBackend) Close() error {
	return st.DB.Close()
}

func (st *LevelDBBackend) transaction() (*leveldb.Transaction, bool) {
	ts, ok := st.Core.(*leveldb.Transaction)
	return ts, ok
}

func (st *LevelDBBackend) IsTransaction() bool {
	_, ok := st.transaction()
	return ok
}

// OpenTransaction returns a new `LevelDBBackend` whose writes are kept in a
// leveldb transaction until `Commit()`. goleveldb allows only one open
// transaction per DB, so this blocks until the previous one is finished.
func (st *LevelDBBackend) OpenTransaction() (*LevelDBBackend, error) {
	if st.IsTransaction() {
		return nil, errors.StorageAlreadyTransaction
	}

	ts, err := st.DB.OpenTransaction()
	if err != nil {
		return nil, coreError(err)
	}

	return &LevelDBBackend{DB: st.DB, Core: ts}, nil
}

func (st *LevelDBBackend) Discard() error {
	ts, ok := st.transaction()
	if !ok {
		return errors.StorageNotTransaction
	}

	ts.Discard()
	return nil
}

func (st *LevelDBBackend) Commit() error {
	ts, ok := st.transaction()
	if !ok {
		return errors.StorageNotTransaction
	}

	return coreError(ts.Commit())
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	found, err := st.Core.Has([]byte(k), nil)
	if err == leveldb.ErrNotFound {
		return false, nil
	}

	return found, coreError(err)
}

func (st *LevelDBBackend) GetRaw(k string) ([]byte, error) {
	b, err := st.Core.Get([]byte(k), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.StorageRecordDoesNotExist
	}

	return b, coreError(err)
}

func (st *LevelDBBackend) Get(k string, v interface{}) error {
	b, err := st.GetRaw(k)
	if err != nil {
		return err
	}

	return coreError(json.Unmarshal(b, v))
}

type existence int

const (
	mayExist existence = iota
	mustExist
	mustNotExist
)

func (st *LevelDBBackend) put(k string, v interface{}, e existence) error {
	encoded, err := common.EncodeJSONValue(v)
	if err != nil {
		return coreError(err)
	}

	if e != mayExist {
		found, err := st.Has(k)
		if err != nil {
			return err
		}
		if e == mustExist && !found {
			return errors.StorageRecordDoesNotExist
		}
		if e == mustNotExist && found {
			return errors.StorageRecordAlreadyExists
		}
	}

	return coreError(st.Core.Put([]byte(k), encoded, nil))
}

// New stores the new record; `errors.StorageRecordAlreadyExists` if `k`
// exists.
func (st *LevelDBBackend) New(k string, v interface{}) error {
	return st.put(k, v, mustNotExist)
}

// Set overwrites the existing record; `errors.StorageRecordDoesNotExist` if
// `k` does not exist.
func (st *LevelDBBackend) Set(k string, v interface{}) error {
	return st.put(k, v, mustExist)
}

// Put stores the record whether it exists or not.
func (st *LevelDBBackend) Put(k string, v interface{}) error {
	return st.put(k, v, mayExist)
}

// News stores the new records at once; nothing is written if one of them
// exists.
func (st *LevelDBBackend) News(items ...Item) error {
	if len(items) < 1 {
		return coreError(fmt.Errorf("empty values"))
	}

	batch := new(leveldb.Batch)
	for _, i := range items {
		if found, err := st.Has(i.Key); err != nil {
			return err
		} else if found {
			return errors.StorageRecordAlreadyExists.Clone().SetData("key", i.Key)
		}

		encoded, err := common.EncodeJSONValue(i.Value)
		if err != nil {
			return coreError(err)
		}
		batch.Put([]byte(i.Key), encoded)
	}

	return coreError(st.Core.Write(batch, nil))
}

func (st *LevelDBBackend) Remove(k string) error {
	if found, err := st.Has(k); err != nil {
		return err
	} else if !found {
		return errors.StorageRecordDoesNotExist
	}

	return coreError(st.Core.Delete([]byte(k), nil))
}
