package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"

	"github.com/hagbad-hub/ayuuto-services/api/middleware"
	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/internal/authn"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// WriteResponse writes a JSON response with a specific status code.
func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most current data
	w.Header().Set("Cache-Control", "max-age=0")

	// Conditionally set the Location header if provided
	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// HandleErrResponse handles pq.Error and writes JSON error responses.
func HandleErrResponse(w http.ResponseWriter, statusCode int, err error) {
	var pqErr *pq.Error
	var response models.Response

	if errors.As(err, &pqErr) {
		response = models.Response{
			Success:      0,
			ErrorCode:    pqErr.Code.Name(),
			ErrorDetails: pqErr.Message,
		}
	} else {
		response = models.Response{
			Success:      0,
			ErrorDetails: err.Error(),
		}
	}

	WriteResponse(w, statusCode, response)
}

// HandleServiceErr maps the engine's business-rule errors onto HTTP statuses.
func HandleServiceErr(w http.ResponseWriter, err error) {
	HandleErrResponse(w, statusForErr(err), err)
}

func statusForErr(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidCycle),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrRecipientNotInGroup):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrSelfVerification),
		errors.Is(err, apperrors.ErrDuplicateVerification),
		errors.Is(err, apperrors.ErrImmutableRecord),
		errors.Is(err, apperrors.ErrMemberHasReceivedFunds),
		errors.Is(err, apperrors.ErrMemberHasLedgerRecords),
		errors.Is(err, apperrors.ErrDuplicateMember),
		errors.Is(err, apperrors.ErrDuplicatePosition),
		errors.Is(err, apperrors.ErrCycleNotActive),
		errors.Is(err, apperrors.ErrActiveCycleExists),
		errors.Is(err, apperrors.ErrRotationOrder):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// callerClaims pulls the JWT claims the middleware stored in the context.
func callerClaims(w http.ResponseWriter, r *http.Request) (authn.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		HandleErrResponse(w, http.StatusUnauthorized, errors.New("unauthorized: invalid claims"))
		return authn.Claims{}, false
	}
	return claims, true
}

// pathUUID parses a mux path variable as a UUID.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		HandleErrResponse(w, http.StatusBadRequest, errors.New("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		HandleErrResponse(w, http.StatusBadRequest, errors.New("invalid request payload"))
		return false
	}
	return true
}
