package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nvellon/hal"

	"boscoin.io/votebook/lib/contract/payload"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/ledger"
	"boscoin.io/votebook/lib/network/httputils"
	"boscoin.io/votebook/lib/node/runner/api/resource"
)

// MaxInvocationBodySize limits the body of `POST /invocations`.
var MaxInvocationBodySize int64 = 1 << 16

func (api *NetworkHandlerAPI) PostInvocationsHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if api.Invoke == nil {
		httputils.WriteJSONError(w, errors.NotImplemented)
		return
	}

	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, MaxInvocationBodySize))
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	var invocation payload.Invocation
	if err := json.Unmarshal(body, &invocation); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	result, err := api.Invoke(invocation)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var entry hal.Entry
	if err := json.Unmarshal(mustMarshal(result), &entry); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewInvocation(invocation.GetHash(), entry))
}

// GetInvocationHandler returns the history of the committed invocation.
func (api *NetworkHandlerAPI) GetInvocationHandler(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["id"]

	var entry hal.Entry
	if err := api.storage.Get(ledger.GetInvocationHistoryKey(hash), &entry); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.StorageRecordDoesNotExist.Clone().SetData("hash", hash)
		}
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewInvocation(hash, entry))
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
