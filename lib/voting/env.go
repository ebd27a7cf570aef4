package voting

import (
	"boscoin.io/votebook/lib/common/observer"
)

// Env is passed to every contract operation. It carries the store and the
// identities of one invocation, and collects the events of the records which
// were changed.
type Env struct {
	Store Store
	Auth  Authorizer

	events []observer.Event
}

func NewEnv(store Store, auth Authorizer) *Env {
	return &Env{
		Store: store,
		Auth:  auth,
	}
}

func (e *Env) Events() []observer.Event {
	return e.events
}

func (e *Env) emit(events ...observer.Event) {
	e.events = append(e.events, events...)
}
