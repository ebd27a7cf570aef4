package context

import (
	"boscoin.io/votebook/lib/voting"
)

// Context is the state of one contract execution.
type Context struct {
	env    *voting.Env
	voting *voting.Contract
}

func NewContext(env *voting.Env, contract *voting.Contract) *Context {
	return &Context{
		env:    env,
		voting: contract,
	}
}

func (c *Context) Env() *voting.Env {
	return c.env
}

func (c *Context) Voting() *voting.Contract {
	return c.voting
}
