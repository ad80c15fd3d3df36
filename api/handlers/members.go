package handlers

import (
	"net/http"

	_ "github.com/lib/pq"

	"github.com/hagbad-hub/ayuuto-services/internal/services"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// ListMembers returns the group roster in rotation order. Members only.
func ListMembers(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		members, err := svc.ListMembers(groupID, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.MembersResponse{Members: members},
		})
	}
}

// AddMember enrols a user into the group. Elders and admins only.
func AddMember(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		var in services.AddMemberInput
		if !decodeBody(w, r, &in) {
			return
		}

		member, err := svc.AddMember(groupID, in, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		location := r.URL.Path + "/" + member.ID.String()
		WriteResponse(w, http.StatusCreated, models.Response{
			Success: 1,
			Data:    models.MemberResponse{Member: *member},
		}, location)
	}
}

// GetMember returns a single membership record. Members only.
func GetMember(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		memberID, ok := pathUUID(w, r, "member-id")
		if !ok {
			return
		}

		member, err := svc.GetMember(groupID, memberID, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.MemberResponse{Member: *member},
		})
	}
}

// UpdateMember changes a member's role label or rotation position. Admin only.
func UpdateMember(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		memberID, ok := pathUUID(w, r, "member-id")
		if !ok {
			return
		}

		var update models.MemberUpdate
		if !decodeBody(w, r, &update) {
			return
		}

		member, err := svc.UpdateMember(groupID, memberID, update, claims.UserID())
		if err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusOK, models.Response{
			Success: 1,
			Data:    models.MemberResponse{Member: *member},
		})
	}
}

// RemoveMember drops a member from the group, unless they have already
// received a payout. Admin only.
func RemoveMember(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := callerClaims(w, r)
		if !ok {
			return
		}

		groupID, ok := pathUUID(w, r, "group-id")
		if !ok {
			return
		}

		memberID, ok := pathUUID(w, r, "member-id")
		if !ok {
			return
		}

		if err := svc.RemoveMember(r.Context(), groupID, memberID, claims.UserID()); err != nil {
			HandleServiceErr(w, err)
			return
		}

		WriteResponse(w, http.StatusNoContent, nil)
	}
}
