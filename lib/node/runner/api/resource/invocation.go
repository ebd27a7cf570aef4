package resource

import (
	"strings"

	"github.com/nvellon/hal"
)

// Invocation is the committed invocation; `entry` has the fields of the
// invocation history or of the invocation result.
type Invocation struct {
	hash  string
	entry hal.Entry
}

func NewInvocation(hash string, entry hal.Entry) *Invocation {
	return &Invocation{hash: hash, entry: entry}
}

func (i Invocation) GetMap() hal.Entry {
	return i.entry
}

func (i Invocation) Resource() *hal.Resource {
	return hal.NewResource(i, i.LinkSelf())
}

func (i Invocation) LinkSelf() string {
	return strings.Replace(URLInvocation, "{id}", i.hash, -1)
}
