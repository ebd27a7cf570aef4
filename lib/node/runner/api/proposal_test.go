package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/network/httpcache"
	"boscoin.io/votebook/lib/network/httputils"
	"boscoin.io/votebook/lib/voting"
)

func TestGetProposalHandler(t *testing.T) {
	h := prepareAPIServer(t, httpcache.NewNopClient())
	defer h.done()

	h.initialize()
	h.create(1)

	{
		status, m := h.get("/api/v1/proposals/1")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, float64(1), m["id"])
		require.Equal(t, "title", m["title"])
		require.Equal(t, true, m["is_active"])
		require.Equal(t, "/api/v1/proposals/1", link(m, "self"))
	}

	{
		status, m := h.get("/api/v1/proposals/2")
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, float64(errors.InvalidProposal.Code), m["code"])
		require.Equal(t, httputils.ProblemTypeVotebook+errors.InvalidProposal.Slug(), m["type"])
	}

	{ // 0 is never a proposal id
		status, m := h.get("/api/v1/proposals/0")
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, float64(errors.InvalidProposal.Code), m["code"])
	}

	{
		status, m := h.get("/api/v1/proposals/findme")
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, float64(errors.BadRequestParameter.Code), m["code"])
	}
}

func TestGetProposalsHandler(t *testing.T) {
	h := prepareAPIServer(t, httpcache.NewNopClient())
	defer h.done()

	h.initialize()

	{ // empty
		status, m := h.get("/api/v1/proposals")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, 0, len(records(m)))
		require.Equal(t, "", link(m, "next"))
	}

	h.create(5)

	var next string
	{
		status, m := h.get("/api/v1/proposals?limit=2")
		require.Equal(t, http.StatusOK, status)

		rs := records(m)
		require.Equal(t, 2, len(rs))
		require.Equal(t, float64(1), rs[0]["id"])
		require.Equal(t, float64(2), rs[1]["id"])

		next = link(m, "next")
		require.Equal(t, "/api/v1/proposals?cursor=3&limit=2&reverse=false", next)
		require.Equal(t, "", link(m, "prev"))
	}

	var prev string
	{
		status, m := h.get(next)
		require.Equal(t, http.StatusOK, status)

		rs := records(m)
		require.Equal(t, 2, len(rs))
		require.Equal(t, float64(3), rs[0]["id"])
		require.Equal(t, float64(4), rs[1]["id"])

		prev = link(m, "prev")
		require.Equal(t, "/api/v1/proposals?cursor=2&limit=2&reverse=true", prev)
	}

	{ // previous page does not repeat the first record of the current page
		status, m := h.get(prev)
		require.Equal(t, http.StatusOK, status)

		rs := records(m)
		require.Equal(t, 2, len(rs))
		require.Equal(t, float64(2), rs[0]["id"])
		require.Equal(t, float64(1), rs[1]["id"])
		require.Equal(t, "", link(m, "next"))
		require.Equal(t, "/api/v1/proposals?cursor=3&limit=2&reverse=false", link(m, "prev"))
	}

	{
		status, m := h.get("/api/v1/proposals?reverse=true&limit=3")
		require.Equal(t, http.StatusOK, status)

		rs := records(m)
		require.Equal(t, 3, len(rs))
		require.Equal(t, float64(5), rs[0]["id"])
		require.Equal(t, float64(3), rs[2]["id"])
	}

	{
		status, _ := h.get("/api/v1/proposals?limit=0")
		require.Equal(t, http.StatusBadRequest, status)

		status, _ = h.get("/api/v1/proposals?cursor=abc")
		require.Equal(t, http.StatusBadRequest, status)
	}
}

func TestGetProposalVotersHandler(t *testing.T) {
	h := prepareAPIServer(t, httpcache.NewNopClient())
	defer h.done()

	voters := []*keypair.Full{keypair.Random(), keypair.Random(), keypair.Random()}
	addresses := []string{h.admin.Address()}
	for _, v := range voters {
		addresses = append(addresses, v.Address())
	}
	h.env = voting.NewTestEnv(h.st, addresses...)

	h.initialize()
	h.create(1)
	for _, v := range voters {
		require.NoError(t, h.contract.CastVote(h.env, 1, true, v.Address()))
	}

	{
		status, m := h.get("/api/v1/proposals/1/voters")
		require.Equal(t, http.StatusOK, status)

		var found []string
		for _, r := range records(m) {
			found = append(found, r["address"].(string))
		}
		require.ElementsMatch(t, addresses[1:], found)
	}

	{
		status, m := h.get("/api/v1/proposals/1/voters?limit=1")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, 1, len(records(m)))
		require.Equal(t, "", link(m, "prev"))

		next := link(m, "next")
		require.NotEqual(t, "", next)
		first := records(m)[0]["address"].(string)

		status, m = h.get(next)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, 1, len(records(m)))
		require.NotEqual(t, first, records(m)[0]["address"])

		// back to the first page without repeating the second
		status, m = h.get(link(m, "prev"))
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, 1, len(records(m)))
		require.Equal(t, first, records(m)[0]["address"])
		require.Equal(t, "", link(m, "next"))
	}

	{
		status, m := h.get("/api/v1/proposals/2/voters")
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, float64(errors.InvalidProposal.Code), m["code"])
	}
}

func TestGetAdminHandler(t *testing.T) {
	h := prepareAPIServer(t, httpcache.NewNopClient())
	defer h.done()

	{
		status, m := h.get("/api/v1/admin")
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, float64(errors.NotInitialized.Code), m["code"])
	}

	h.initialize()

	{
		status, m := h.get("/api/v1/admin")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, h.admin.Address(), m["address"])
	}
}

func TestReadHandlersQueryContract(t *testing.T) {
	h := prepareAPIServer(t, httpcache.NewNopClient())
	defer h.done()

	h.initialize()
	h.create(1)

	{
		status, _ := h.get("/api/v1/admin")
		require.Equal(t, http.StatusOK, status)
		status, _ = h.get("/api/v1/proposals/1")
		require.Equal(t, http.StatusOK, status)
		status, _ = h.get("/api/v1/proposals/1/voters")
		require.Equal(t, http.StatusOK, status)

		require.Equal(t, []string{
			execfunc.MethodGetAdmin,
			execfunc.MethodViewProposal,
			execfunc.MethodViewProposal,
		}, h.queriedMethods())
	}

	{ // without contract, the reads are not served
		h.api.Query = nil

		status, m := h.get("/api/v1/admin")
		require.Equal(t, http.StatusNotImplemented, status)
		require.Equal(t, float64(errors.NotImplemented.Code), m["code"])

		status, _ = h.get("/api/v1/proposals/1")
		require.Equal(t, http.StatusNotImplemented, status)
	}
}
