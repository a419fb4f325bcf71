package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Actor identity headers. Authentication lives outside this service; the
// gateway forwards who is acting and in which role.
const (
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

func actorUser(r *http.Request) string {
	return r.Header.Get(HeaderUserName)
}

func actorRole(r *http.Request) string {
	return r.Header.Get(HeaderUserRole)
}

// candidateIDVar parses the {id} route variable as a candidate id
func candidateIDVar(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
