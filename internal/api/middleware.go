package api

import (
	"errors"
	"net/http"
	"strconv"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
	roleAdmin      = "admin"
)

// viewerCtx picks the viewer identity off the request headers and points the
// controller at it. A privilege class change triggers a collection refetch,
// so requests without the headers leave the current viewer alone.
func (a *Api) viewerCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(headerUserID)
		if rawID == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			a.badRequestResponse(w, r, errors.New("invalid X-User-ID header"))
			return
		}

		privileged := r.Header.Get(headerUserRole) == roleAdmin

		if err := a.planner.SetViewer(r.Context(), userID, privileged); err != nil {
			a.serverErrorResponse(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
