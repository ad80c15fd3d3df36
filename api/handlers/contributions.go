package handlers

import (
	"net/http"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/hagbad-hub/ayuuto-services/internal/services"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// ListContributions returns the group's contributions, optionally filtered by
// cycleId, memberId and status query parameters. Members only.
func ListContributions(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		filter := models.ContributionFilter{
			Status: r.URL.Query().Get("status"),
		}
		if raw := r.URL.Query().Get("cycleId"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				HandleErrResponse(w, http.StatusBadRequest, err)
				return
			}
			filter.CycleID = id
		}
		if raw := r.URL.Query().Get("memberId"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				HandleErrResponse(w, http.StatusBadRequest, err)
				return
			}
			filter.MemberID = id
		}

		contributions, err := svc.ListContributions(groupID, filter, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.ContributionsResponse{Contributions: contributions},
		})
	}
}

// RecordContribution records a payment into the active cycle, either by the
// caller for themselves or on behalf of another member. Members only.
func RecordContribution(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		var in services.RecordContributionInput
		if !decodeBody(w, r, &in) {
			return
		}

		contribution, err := svc.RecordContribution(r.Context(), groupID, in, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		location := r.URL.Path + "/" + contribution.ID.String()
		WriteResponse(w, http.StatusCreated, models.Response{
			Success: 1,
			Data:    models.ContributionResponse{Contribution: *contribution},
		}, location)
	}
}

// GetContribution returns a contribution with its verifications, newest
// first. Members only.
func GetContribution(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		contributionID, ok := pathUUID(w, r, "contribution-id")
		if !ok {
			return
		}

		contribution, err := svc.GetContribution(groupID, contributionID, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.ContributionResponse{Contribution: *contribution},
		})
	}
}

// UpdateContribution amends a contribution. Contributors may fix the amount
// while still unverified; only admins may set the status directly.
func UpdateContribution(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		contributionID, ok := pathUUID(w, r, "contribution-id")
		if !ok {
			return
		}

		var update models.ContributionUpdate
		if !decodeBody(w, r, &update) {
			return
		}

		contribution, err := svc.UpdateContribution(groupID, contributionID, update, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.ContributionResponse{Contribution: *contribution},
		})
	}
}

// VerifyContribution witnesses another member's contribution. The second
// distinct verifier moves the contribution to verified. Members only.
func VerifyContribution(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		contributionID, ok := pathUUID(w, r, "contribution-id")
		if !ok {
			return
		}

		var in services.VerifyInput
		if !decodeBody(w, r, &in) {
			return
		}

		result, err := svc.Verify(r.Context(), groupID, contributionID, in, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusCreated, models.Response{
			Success: 1,
			Data:    result,
		})
	}
}
