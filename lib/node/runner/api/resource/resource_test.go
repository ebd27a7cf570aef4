package resource

import (
	"encoding/json"
	"testing"

	"github.com/nvellon/hal"
	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/voting"
)

func marshalResource(t *testing.T, r Resource) map[string]interface{} {
	b, err := json.Marshal(r.Resource())
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))

	return m
}

func selfLink(m map[string]interface{}) interface{} {
	return m["_links"].(map[string]interface{})["self"].(map[string]interface{})["href"]
}

func TestResourceProposal(t *testing.T) {
	p := voting.NewProposal(3, "title", "description")
	p.YesVotes = 2

	m := marshalResource(t, NewProposal(p))
	require.Equal(t, float64(3), m["id"])
	require.Equal(t, "title", m["title"])
	require.Equal(t, float64(2), m["yes_votes"])
	require.Equal(t, float64(0), m["no_votes"])
	require.Equal(t, true, m["is_active"])
	require.Equal(t, "/api/v1/proposals/3", selfLink(m))

	voters := m["_links"].(map[string]interface{})["voters"].(map[string]interface{})
	require.Equal(t, "/api/v1/proposals/3/voters{?cursor,limit,reverse}", voters["href"])
	require.Equal(t, true, voters["templated"])
}

func TestResourceList(t *testing.T) {
	rs := []Resource{
		NewVoter(1, "GA"),
		NewVoter(1, "GB"),
	}

	list := NewResourceList(rs, "/api/v1/proposals/1/voters", "/api/v1/proposals/1/voters?cursor=GB", "")
	m := marshalResource(t, list)
	require.Equal(t, "/api/v1/proposals/1/voters", selfLink(m))

	links := m["_links"].(map[string]interface{})
	require.Contains(t, links, "next")
	require.NotContains(t, links, "prev")

	records := m["_embedded"].(map[string]interface{})["records"].([]interface{})
	require.Equal(t, 2, len(records))
	require.Equal(t, "GA", records[0].(map[string]interface{})["address"])
}

func TestResourceInvocation(t *testing.T) {
	m := marshalResource(t, NewInvocation("hash", hal.Entry{"method": "cast_vote"}))
	require.Equal(t, "cast_vote", m["method"])
	require.Equal(t, "/api/v1/invocations/hash", selfLink(m))
}
