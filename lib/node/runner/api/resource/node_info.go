package resource

import (
	"github.com/nvellon/hal"
)

// NodeInfo shows the settings of the node and the state of the ledger.
type NodeInfo struct {
	entry hal.Entry
}

func NewNodeInfo(entry hal.Entry) *NodeInfo {
	return &NodeInfo{entry: entry}
}

func (n NodeInfo) GetMap() hal.Entry {
	return n.entry
}

func (n NodeInfo) Resource() *hal.Resource {
	r := hal.NewResource(n, n.LinkSelf())
	r.AddLink("proposals", hal.NewLink(URLProposals+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	r.AddLink("admin", hal.NewLink(URLAdmin))
	r.AddLink("invocations", hal.NewLink(URLInvocations))
	return r
}

func (n NodeInfo) LinkSelf() string {
	return URLNodeInfo
}
