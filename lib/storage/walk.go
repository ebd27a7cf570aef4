package storage

import (
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"
)

// WalkFunc is called for each record; returning false stops the walk.
type WalkFunc func(key, value []byte) (bool, error)

type WalkOption struct {
	Cursor  string
	Limit   uint64
	Reverse bool
}

func NewWalkOption(cursor string, limit uint64, reverse bool) *WalkOption {
	return &WalkOption{Cursor: cursor, Limit: limit, Reverse: reverse}
}

// seek moves `iter` to the first record of the walk. The cursor is
// inclusive; in reverse the walk starts at the cursor or the record just
// before it.
func (o *WalkOption) seek(iter leveldbIterator.Iterator) bool {
	switch {
	case len(o.Cursor) < 1 && o.Reverse:
		return iter.Last()
	case len(o.Cursor) < 1:
		return iter.First()
	case !o.Reverse:
		return iter.Seek([]byte(o.Cursor))
	}

	if !iter.Seek([]byte(o.Cursor)) {
		return iter.Last()
	}
	if string(iter.Key()) != o.Cursor {
		return iter.Prev()
	}

	return true
}

// Walk calls `walkFunc` for the records under `prefix`, starting at
// `option.Cursor`. Limit 0 walks every record.
func (st *LevelDBBackend) Walk(prefix string, option *WalkOption, walkFunc WalkFunc) error {
	if option == nil {
		option = NewWalkOption("", 10, false)
	}

	var r *leveldbUtil.Range
	if len(prefix) > 0 {
		r = leveldbUtil.BytesPrefix([]byte(prefix))
	}

	iter := st.Core.NewIterator(r, nil)
	defer iter.Release()

	step := iter.Next
	if option.Reverse {
		step = iter.Prev
	}

	var walked uint64
	for ok := option.seek(iter); ok; ok = step() {
		if option.Limit > 0 && walked >= option.Limit {
			break
		}

		next, err := walkFunc(iter.Key(), iter.Value())
		if err != nil {
			return err
		} else if !next {
			break
		}
		walked++
	}

	return iter.Error()
}
