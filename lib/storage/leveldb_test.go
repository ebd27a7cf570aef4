package storage

import (
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/errors"
)

func TestLevelDBBackendInitFileStorage(t *testing.T) {
	path, _ := ioutil.TempDir("/tmp", "votebook")
	defer CleanDB(path)

	config, err := NewConfigFromString("file://" + path)
	require.NoError(t, err)
	require.Equal(t, SchemeFile, config.Scheme)
	require.Equal(t, path, config.Path)

	st := &LevelDBBackend{}
	require.NoError(t, st.Init(config))
	defer st.Close()

	require.NoError(t, st.New("showme", "1"))
}

func TestLevelDBBackendInitMemStorage(t *testing.T) {
	st := &LevelDBBackend{}

	config, _ := NewConfigFromString("memory://")
	require.NoError(t, st.Init(config))
	st.Close()
}

func TestNewConfigFromString(t *testing.T) {
	{
		config, err := NewConfigFromString("memory://")
		require.NoError(t, err)
		require.Equal(t, SchemeMemory, config.Scheme)
		require.Equal(t, "memory://", config.String())
	}

	{
		_, err := NewConfigFromString("file://")
		require.Error(t, err)
	}

	{
		_, err := NewConfigFromString("mysql://localhost")
		require.Error(t, err)
	}
}

func TestLevelDBBackendNew(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := "showme"
	input := map[string]string{
		"90": "99",
		"91": "91",
	}
	require.NoError(t, st.New(key, input))

	fetched := map[string]string{}
	require.NoError(t, st.Get(key, &fetched))
	require.Equal(t, input, fetched)

	err := st.New(key, input)
	require.Equal(t, errors.StorageRecordAlreadyExists, err)
}

func TestLevelDBBackendNews(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	var items []Item
	for i := 0; i < 10; i++ {
		items = append(items, Item{Key: fmt.Sprintf("k%d", i), Value: i})
	}
	require.NoError(t, st.News(items...))

	for i := 0; i < 10; i++ {
		var fetched int
		require.NoError(t, st.Get(fmt.Sprintf("k%d", i), &fetched))
		require.Equal(t, i, fetched)
	}

	// one existing key fails the whole batch
	err := st.News(Item{Key: "new", Value: 1}, Item{Key: "k3", Value: 1})
	require.Equal(t, errors.StorageRecordAlreadyExists.Code, err.(*errors.Error).Code)

	exists, err := st.Has("new")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLevelDBBackendSetAndRemove(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := "showme"
	require.Equal(t, errors.StorageRecordDoesNotExist, st.Set(key, 1))
	require.NoError(t, st.New(key, 1))
	require.NoError(t, st.Set(key, 2))

	var fetched int
	require.NoError(t, st.Get(key, &fetched))
	require.Equal(t, 2, fetched)

	require.NoError(t, st.Remove(key))
	require.Equal(t, errors.StorageRecordDoesNotExist, st.Remove(key))
	require.Equal(t, errors.StorageRecordDoesNotExist, st.Get(key, &fetched))
}

func TestLevelDBBackendPut(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.NoError(t, st.Put("showme", 1))
	require.NoError(t, st.Put("showme", 2))

	var fetched int
	require.NoError(t, st.Get("showme", &fetched))
	require.Equal(t, 2, fetched)
}

func TestLevelDBBackendTransactionCommit(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.NoError(t, err)
	require.True(t, ts.IsTransaction())

	require.NoError(t, ts.New("showme", "findme"))

	// not visible outside until commit
	exists, err := st.Has("showme")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = ts.Has("showme")
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, ts.Commit())

	var fetched string
	require.NoError(t, st.Get("showme", &fetched))
	require.Equal(t, "findme", fetched)
}

func TestLevelDBBackendTransactionDiscard(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.NoError(t, st.New("old", 1))

	ts, err := st.OpenTransaction()
	require.NoError(t, err)
	require.NoError(t, ts.New("showme", "findme"))
	require.NoError(t, ts.Set("old", 2))
	require.NoError(t, ts.Discard())

	exists, err := st.Has("showme")
	require.NoError(t, err)
	require.False(t, exists)

	var fetched int
	require.NoError(t, st.Get("old", &fetched))
	require.Equal(t, 1, fetched)

	// the next transaction can be opened once the previous one is discarded
	ts, err = st.OpenTransaction()
	require.NoError(t, err)
	require.NoError(t, ts.Discard())
}

func TestLevelDBBackendTransactionErrors(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.Equal(t, errors.StorageNotTransaction, st.Commit())
	require.Equal(t, errors.StorageNotTransaction, st.Discard())

	ts, err := st.OpenTransaction()
	require.NoError(t, err)
	defer ts.Discard()

	_, err = ts.OpenTransaction()
	require.Equal(t, errors.StorageAlreadyTransaction, err)
}

func TestLevelDBBackendWalk(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	for i := 1; i <= 5; i++ {
		require.NoError(t, st.New(fmt.Sprintf("p-%02d", i), i))
	}
	require.NoError(t, st.New("q-01", 100))

	var walked []string
	walk := func(key, value []byte) (bool, error) {
		walked = append(walked, string(key))
		return true, nil
	}

	require.NoError(t, st.Walk("p-", NewWalkOption("", 0, false), walk))
	require.Equal(t, []string{"p-01", "p-02", "p-03", "p-04", "p-05"}, walked)

	walked = nil
	require.NoError(t, st.Walk("p-", NewWalkOption("p-03", 2, false), walk))
	require.Equal(t, []string{"p-03", "p-04"}, walked)

	walked = nil
	require.NoError(t, st.Walk("p-", NewWalkOption("", 2, true), walk))
	require.Equal(t, []string{"p-05", "p-04"}, walked)

	walked = nil
	require.NoError(t, st.Walk("p-", NewWalkOption("p-03", 0, true), walk))
	require.Equal(t, []string{"p-03", "p-02", "p-01"}, walked)
}
