package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/network/httputils"
	"boscoin.io/votebook/lib/node/runner/api/resource"
	"boscoin.io/votebook/lib/voting"
)

func (api *NetworkHandlerAPI) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := voting.ParseProposalID(mux.Vars(r)["id"])
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("id", mux.Vars(r)["id"]))
		return
	}

	p, err := api.viewProposal(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(p))
}

// viewProposal reads the proposal by the contract; the unknown proposal is
// `errors.InvalidProposal`.
func (api *NetworkHandlerAPI) viewProposal(id uint64) (p voting.Proposal, err error) {
	v, err := api.query(execfunc.MethodViewProposal, strconv.FormatUint(id, 10))
	if err != nil {
		return
	}

	b, err := v.MarshalJSON()
	if err != nil {
		return
	}
	if err = json.Unmarshal(b, &p); err != nil {
		return
	}

	if p.IsNotFound() {
		err = errors.InvalidProposal.Clone().SetData("id", id)
	}

	return
}

func (api *NetworkHandlerAPI) GetProposalsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var cursor uint64
	if len(p.Cursor()) > 0 {
		if cursor, err = strconv.ParseUint(p.Cursor(), 10, 64); err != nil {
			httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("cursor", p.Cursor()))
			return
		}
	}

	var (
		rs         []resource.Resource
		nextCursor string
		cnt        uint64
	)
	err = voting.WalkProposals(api.storage, cursor, p.Limit()+1, p.Reverse(), func(proposal voting.Proposal) (bool, error) {
		cnt++
		if cnt > p.Limit() {
			nextCursor = strconv.FormatUint(proposal.ID, 10)
			return false, nil
		}
		rs = append(rs, resource.NewProposal(proposal))
		return true, nil
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var prevCursor string
	if len(rs) > 0 {
		first := rs[0].(*resource.Proposal).ID()
		err = voting.WalkProposals(api.storage, first, 2, !p.Reverse(), func(proposal voting.Proposal) (bool, error) {
			if proposal.ID == first {
				return true, nil
			}
			prevCursor = strconv.FormatUint(proposal.ID, 10)
			return false, nil
		})
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
	}

	httputils.MustWriteJSON(w, 200, listWithLinks(p, rs, nextCursor, prevCursor))
}

func (api *NetworkHandlerAPI) GetProposalVotersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := voting.ParseProposalID(mux.Vars(r)["id"])
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("id", mux.Vars(r)["id"]))
		return
	}

	if _, err := api.viewProposal(id); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	p, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var (
		rs         []resource.Resource
		nextCursor string
		cnt        uint64
	)
	err = voting.WalkVoters(api.storage, id, p.Cursor(), p.Limit()+1, p.Reverse(), func(voter string) (bool, error) {
		cnt++
		if cnt > p.Limit() {
			nextCursor = voter
			return false, nil
		}
		rs = append(rs, resource.NewVoter(id, voter))
		return true, nil
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var prevCursor string
	if len(rs) > 0 {
		first := rs[0].(*resource.Voter).Address()
		err = voting.WalkVoters(api.storage, id, first, 2, !p.Reverse(), func(voter string) (bool, error) {
			if voter == first {
				return true, nil
			}
			prevCursor = voter
			return false, nil
		})
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
	}

	httputils.MustWriteJSON(w, 200, listWithLinks(p, rs, nextCursor, prevCursor))
}

// listWithLinks makes the list with "next" link when more records are left
// after the page, and "prev" link when records are left before it. Both
// cursors are the first record of the linked page, so the pages do not
// overlap.
func listWithLinks(p *httputils.PageQuery, rs []resource.Resource, nextCursor, prevCursor string) *resource.ResourceList {
	var nextLink, prevLink string
	if len(nextCursor) > 0 {
		nextLink = p.NextLink(nextCursor)
	}
	if len(prevCursor) > 0 {
		prevLink = p.PrevLink(prevCursor)
	}

	return resource.NewResourceList(rs, p.SelfLink(), nextLink, prevLink)
}
