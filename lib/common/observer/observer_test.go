package observer

import (
	"testing"

	"github.com/GianlucaGuarini/go-observable"
	"github.com/stretchr/testify/require"
)

func TestEventString(t *testing.T) {
	require.Equal(t, "proposal-*", NewEvent(ResourceProposal, ConditionAll, "").String())
	require.Equal(t, "proposal-id=3", NewEvent(ResourceProposal, ConditionID, "3").String())
}

func TestEventTrigger(t *testing.T) {
	o := observable.New()

	var received []Event
	e := NewEvent(ResourceProposal, ConditionID, "1")
	o.On(e.String(), func(ev Event) {
		received = append(received, ev)
	})

	o.Trigger(e.String(), e)
	o.Trigger(NewEvent(ResourceProposal, ConditionID, "2").String(), e)

	require.Equal(t, []Event{e}, received)
}
