package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"memoria/internal/domain"
	"memoria/internal/httputil"
)

// handleError converts domain errors to RFC 7807 responses, carrying the
// structured evidence (option lists, colliding ids) as problem extras
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		validationErr *domain.ValidationError
		duplicateErr  *domain.DuplicateError
		conflictErr   *domain.ConflictError
		notFoundErr   *domain.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		var extras map[string]interface{}
		if len(validationErr.AllowedOptions) > 0 {
			extras = map[string]interface{}{"allowed_options": validationErr.AllowedOptions}
		}
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, validationErr.Error(), extras)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFoundErr):
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, notFoundErr.Error(), map[string]interface{}{
			"resource_type": notFoundErr.ResourceType,
		})
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &duplicateErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, duplicateErr.Error(), map[string]interface{}{
			"card_ids":        duplicateErr.CardIDs,
			"allow_duplicate": "resubmit with ?allow_duplicate=true to save anyway",
		})
	case errors.As(err, &conflictErr):
		extras := map[string]interface{}{"resource_type": conflictErr.ResourceType}
		if conflictErr.ResourceID != "" {
			extras["resource_id"] = conflictErr.ResourceID
		}
		if len(conflictErr.ResourceIDs) > 0 {
			extras["deck_ids"] = conflictErr.ResourceIDs
		}
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), extras)
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	default:
		logger.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireUser returns the authenticated owner id or writes a 401
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

// pathID reads and validates an id path wildcard, writing a 400 on failure
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id, err := httputil.PathUUID(r, name)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return id, true
}

// queryFlag reads a boolean query flag, writing a 400 on failure
func queryFlag(w http.ResponseWriter, r *http.Request, name string) (bool, bool) {
	v, err := httputil.QueryBool(r, name)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return false, false
	}
	return v, true
}
