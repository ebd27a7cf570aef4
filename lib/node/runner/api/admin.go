package api

import (
	"net/http"

	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/network/httputils"
	"boscoin.io/votebook/lib/node/runner/api/resource"
)

func (api *NetworkHandlerAPI) GetAdminHandler(w http.ResponseWriter, r *http.Request) {
	v, err := api.query(execfunc.MethodGetAdmin)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewAdmin(v.String()))
}

func (api *NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	if api.GetNodeInfo == nil {
		httputils.WriteJSONError(w, errors.NotImplemented)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewNodeInfo(api.GetNodeInfo()))
}
