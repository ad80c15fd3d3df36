package handlers

import (
	"net/http"

	"github.com/hagbad-hub/ayuuto-services/db"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// Healthz reports liveness, including a database round trip.
func Healthz(ayuutoDB *db.AyuutoDB) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		if err := ayuutoDB.Ping(r.Context()); err != nil {
			HandleErrResponse(w, http.StatusServiceUnavailable, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{Success: 1})
	}
}
