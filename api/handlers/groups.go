package handlers

import (
	"net/http"

	_ "github.com/lib/pq"

	"github.com/hagbad-hub/ayuuto-services/internal/services"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// CreateGroup opens a new ayuuto group with the caller as its admin.
func CreateGroup(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		var in services.CreateGroupInput
		if !decodeBody(w, r, &in) {
			return
		}

		group, err := svc.CreateGroup(in, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		location := r.URL.Path + "/" + group.ID.String()
		WriteResponse(w, http.StatusCreated, models.Response{
			Success: 1,
			Data:    models.GroupResponse{Group: *group},
		}, location)
	}
}

// ListGroups returns the groups the caller belongs to or administers.
func ListGroups(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		includeArchived := r.URL.Query().Get("includeArchived") == "true"

		groups, err := svc.ListGroups(claims.UserID(), includeArchived)
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.GroupsResponse{Groups: groups},
		})
	}
}

// GetGroup returns a single group. Members only.
func GetGroup(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		group, err := svc.GetGroup(groupID, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.GroupResponse{Group: *group},
		})
	}
}

// UpdateGroup changes group settings. Admin only.
func UpdateGroup(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		var update models.GroupUpdate
		if !decodeBody(w, r, &update) {
			return
		}

		group, err := svc.UpdateGroup(groupID, update, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.GroupResponse{Group: *group},
		})
	}
}

// ArchiveGroup soft-deletes a group. Admin only, terminal.
func ArchiveGroup(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		if err := svc.ArchiveGroup(groupID, claims.UserID()); err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusNoContent, nil)
	}
}
