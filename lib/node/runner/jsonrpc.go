package runner

import (
	"net/http"

	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/votebook/lib/storage"
)

const MaxLimitWalkOptions uint64 = 10000

// DBItem is the raw record; `Value` is the json encoded value.
type DBItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

type DBEchoArgs string
type DBEchoResult string

type DBHasArgs string
type DBHasResult bool

type DBGetArgs string
type DBGetResult DBItem

type WalkOptions struct {
	Reverse bool
	Cursor  string
	Limit   uint64
}

type DBWalkArgs struct {
	Prefix  string
	Options WalkOptions
}

type DBWalkResult struct {
	Limit uint64
	Items []DBItem
}

// jsonrpcDBApp exposes the raw records of the storage for debugging.
type jsonrpcDBApp struct {
	st *storage.LevelDBBackend
}

func (j *jsonrpcDBApp) Echo(r *http.Request, args *DBEchoArgs, result *DBEchoResult) error {
	*result = DBEchoResult(string(*args))
	return nil
}

func (j *jsonrpcDBApp) Has(r *http.Request, args *DBHasArgs, result *DBHasResult) error {
	o, err := j.st.Has(string(*args))
	if err != nil {
		return err
	}

	*result = DBHasResult(o)
	return nil
}

func (j *jsonrpcDBApp) Get(r *http.Request, args *DBGetArgs, result *DBGetResult) error {
	o, err := j.st.GetRaw(string(*args))
	if err != nil {
		return err
	}

	*result = DBGetResult{Key: []byte(*args), Value: o}
	return nil
}

func (j *jsonrpcDBApp) Walk(r *http.Request, args *DBWalkArgs, result *DBWalkResult) error {
	limit := args.Options.Limit
	if limit < 1 || limit > MaxLimitWalkOptions {
		limit = MaxLimitWalkOptions
	}

	option := storage.NewWalkOption(args.Options.Cursor, limit, args.Options.Reverse)

	collected := []DBItem{}
	err := j.st.Walk(args.Prefix, option, func(key, value []byte) (bool, error) {
		collected = append(collected, DBItem{
			N:     uint64(len(collected)),
			Key:   append([]byte{}, key...),
			Value: append([]byte{}, value...),
		})
		return true, nil
	})
	if err != nil {
		return err
	}

	result.Items = collected
	result.Limit = limit

	return nil
}

type jsonrpcHandler struct {
	*rpc.Server
}

func (s *jsonrpcHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set(
		"Access-Control-Allow-Headers",
		"Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization",
	)

	if r.Method == "OPTIONS" {
		return
	}

	s.Server.ServeHTTP(w, r)
}

// NewJSONRPCHandler returns the json-rpc handler of the "DB" service.
func NewJSONRPCHandler(st *storage.LevelDBBackend) http.Handler {
	s := &jsonrpcHandler{Server: rpc.NewServer()}
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	s.RegisterService(&jsonrpcDBApp{st: st}, "DB")

	return s
}
