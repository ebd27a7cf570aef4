package resource

import (
	"github.com/nvellon/hal"
)

type Admin struct {
	address string
}

func NewAdmin(address string) *Admin {
	return &Admin{address: address}
}

func (a Admin) GetMap() hal.Entry {
	return hal.Entry{
		"address": a.address,
	}
}

func (a Admin) Resource() *hal.Resource {
	return hal.NewResource(a, a.LinkSelf())
}

func (a Admin) LinkSelf() string {
	return URLAdmin
}
