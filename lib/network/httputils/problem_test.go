package httputils

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
)

func getProblem(t *testing.T, url string) (*http.Response, map[string]interface{}) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	readByte, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var m map[string]interface{}
	common.MustUnmarshalJSON(readByte, &m)

	return resp, m
}

func TestProblem(t *testing.T) {
	router := mux.NewRouter()

	statusProblem := NewStatusProblem(http.StatusBadRequest)
	detailedStatusProblem := NewDetailedStatusProblem(http.StatusBadRequest, "paramaters are not enough")

	router.HandleFunc("/problem_status_default", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 400, statusProblem)
	})

	router.HandleFunc("/problem_status_with_detail_instance", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 400, detailedStatusProblem.SetInstance("/api/v1/proposals/1"))
	})

	router.HandleFunc("/problem_with_error", func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, errors.AlreadyVoted.Clone().SetData("voter", "GVOTER"))
	})

	router.HandleFunc("/problem_with_unknown_error", func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, errors.StorageCoreError)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	{
		resp, m := getProblem(t, ts.URL+"/problem_status_default")
		require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
		require.Equal(t, statusProblem.Type, m["type"])
		require.Equal(t, "Bad Request", m["title"])
		require.Equal(t, float64(400), m["status"])
		require.Empty(t, m["detail"])
		require.Empty(t, m["instance"])
	}

	{
		_, m := getProblem(t, ts.URL+"/problem_status_with_detail_instance")
		require.Equal(t, detailedStatusProblem.Detail, m["detail"])
		require.Equal(t, "/api/v1/proposals/1", m["instance"])
	}

	{
		resp, m := getProblem(t, ts.URL+"/problem_with_error")
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
		require.Equal(t, ProblemTypeVotebook+"already-voted", m["type"])
		require.Equal(t, errors.AlreadyVoted.Message, m["title"])
		require.Equal(t, float64(errors.AlreadyVoted.Code), m["code"])
		require.Equal(t, map[string]interface{}{"voter": "GVOTER"}, m["data"])
	}

	{
		resp, m := getProblem(t, ts.URL+"/problem_with_unknown_error")
		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		require.Equal(t, float64(errors.StorageCoreError.Code), m["code"])
	}
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, http.StatusNotFound, StatusCode(errors.InvalidProposal))
	require.Equal(t, http.StatusUnauthorized, StatusCode(errors.Unauthorized.Clone()))
	require.Equal(t, http.StatusConflict, StatusCode(errors.AlreadyInitialized))
	require.Equal(t, http.StatusConflict, StatusCode(errors.AlreadyVoted))
	require.Equal(t, http.StatusConflict, StatusCode(errors.ProposalClosed))
	require.Equal(t, http.StatusConflict, StatusCode(errors.InvocationAlreadyProcessed))
	require.Equal(t, http.StatusConflict, StatusCode(errors.ProposalCountOverflow.Clone()))
	require.Equal(t, http.StatusBadRequest, StatusCode(errors.BadArgument))
	require.Equal(t, http.StatusInternalServerError, StatusCode(errors.StorageCoreError))
	require.Equal(t, http.StatusInternalServerError, StatusCode(http.ErrBodyNotAllowed))
}

func TestPageQuery(t *testing.T) {
	{
		p, err := NewPageQuery(httptest.NewRequest("GET", "/api/v1/proposals", nil))
		require.NoError(t, err)
		require.Equal(t, DefaultLimit, p.Limit())
		require.False(t, p.Reverse())
		require.Empty(t, p.Cursor())
	}

	{
		r := httptest.NewRequest("GET", "/api/v1/proposals?limit=1000&reverse=yes&cursor=3", nil)
		p, err := NewPageQuery(r)
		require.NoError(t, err)
		require.Equal(t, DefaultMaxLimit, p.Limit())
		require.True(t, p.Reverse())
		require.Equal(t, "3", p.Cursor())
		require.Equal(t, "/api/v1/proposals?cursor=1&limit=100&reverse=true", p.NextLink("1"))
		require.Equal(t, "/api/v1/proposals?cursor=4&limit=100&reverse=false", p.PrevLink("4"))
	}

	for _, q := range []string{"limit=a", "limit=0", "reverse=maybe"} {
		_, err := NewPageQuery(httptest.NewRequest("GET", "/api/v1/proposals?"+q, nil))
		require.True(t, errors.Is(err, errors.BadRequestParameter), q)
	}
}
