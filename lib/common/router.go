package common

import (
	"mime"
	"net/http"

	"github.com/gorilla/mux"
)

// PostAndJSONMatcher passes non-POST requests and POST requests whose
// media type is `application/json`; parameters like charset are allowed.
func PostAndJSONMatcher(r *http.Request, rm *mux.RouteMatch) bool {
	if r.Method != "POST" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}

	return mediaType == "application/json"
}
