package resource

import (
	"github.com/nvellon/hal"
)

// Resource is rendered as the HAL document by the api.
type Resource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}

// ResourceList is one page of resources. The records are embedded under
// "records"; "next" and "prev" links are added only when they are set.
type ResourceList struct {
	Resources []Resource

	self string
	next string
	prev string
}

func NewResourceList(list []Resource, selfLink, nextLink, prevLink string) *ResourceList {
	return &ResourceList{
		Resources: list,
		self:      selfLink,
		next:      nextLink,
		prev:      prevLink,
	}
}

func (l ResourceList) GetMap() hal.Entry {
	return hal.Entry{}
}

func (l ResourceList) LinkSelf() string {
	return l.self
}

func (l ResourceList) LinkNext() string {
	return l.next
}

func (l ResourceList) LinkPrev() string {
	return l.prev
}

func (l ResourceList) Resource() *hal.Resource {
	r := hal.NewResource(l, l.self)

	var records hal.ResourceCollection
	for _, i := range l.Resources {
		records = append(records, i.Resource())
	}
	r.EmbedCollection("records", records)

	if len(l.next) > 0 {
		r.AddLink("next", hal.NewLink(l.next))
	}
	if len(l.prev) > 0 {
		r.AddLink("prev", hal.NewLink(l.prev))
	}

	return r
}
