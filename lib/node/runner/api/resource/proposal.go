package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/votebook/lib/voting"
)

type Proposal struct {
	p voting.Proposal
}

func NewProposal(p voting.Proposal) *Proposal {
	return &Proposal{p: p}
}

func (p Proposal) GetMap() hal.Entry {
	return hal.Entry{
		"id":          p.p.ID,
		"title":       p.p.Title,
		"description": p.p.Description,
		"yes_votes":   p.p.YesVotes,
		"no_votes":    p.p.NoVotes,
		"is_active":   p.p.IsActive,
	}
}

func (p Proposal) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink(
		"voters",
		hal.NewLink(
			strings.Replace(URLProposalVoters, "{id}", p.id(), -1)+"{?cursor,limit,reverse}",
			hal.LinkAttr{"templated": true},
		),
	)
	return r
}

func (p Proposal) LinkSelf() string {
	return strings.Replace(URLProposal, "{id}", p.id(), -1)
}

func (p Proposal) ID() uint64 {
	return p.p.ID
}

func (p Proposal) id() string {
	return strconv.FormatUint(p.p.ID, 10)
}
