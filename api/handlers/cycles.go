package handlers

import (
	"net/http"

	_ "github.com/lib/pq"

	"github.com/hagbad-hub/ayuuto-services/internal/services"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// ListCycles returns the group's payout cycles, newest first. Members only.
func ListCycles(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		cycles, err := svc.ListCycles(groupID, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.CyclesResponse{Cycles: cycles},
		})
	}
}

// OpenCycle starts a new payout cycle for the given recipient. Admin only.
func OpenCycle(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		var in services.OpenCycleInput
		if !decodeBody(w, r, &in) {
			return
		}

		cycle, err := svc.OpenCycle(r.Context(), groupID, in, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		location := r.URL.Path + "/" + cycle.ID.String()
		WriteResponse(w, http.StatusCreated, models.Response{
			Success: 1,
			Data:    models.CycleResponse{Cycle: *cycle},
		}, location)
	}
}

// GetCycle returns a cycle with its contributions and their verifications.
// Members only.
func GetCycle(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		cycleID, ok := pathUUID(w, r, "cycle-id")
		if !ok {
			return
		}

		cycle, err := svc.GetCycle(groupID, cycleID, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.CycleResponse{Cycle: *cycle},
		})
	}
}

// UpdateCycle moves an active cycle to completed or cancelled. Admin only.
func UpdateCycle(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		cycleID, ok := pathUUID(w, r, "cycle-id")
		if !ok {
			return
		}

		var in services.CycleUpdateInput
		if !decodeBody(w, r, &in) {
			return
		}

		cycle, err := svc.UpdateCycleStatus(r.Context(), groupID, cycleID, in, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.CycleResponse{Cycle: *cycle},
		})
	}
}
