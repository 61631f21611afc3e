package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"warehouse-ledger/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// errorStatus maps ledger and store errors to HTTP status codes.
func errorStatus(err error) int {
	var insufficient *model.InsufficientStockError
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDuplicateName),
		errors.Is(err, model.ErrDuplicateJobID),
		errors.Is(err, model.ErrStaleJobState),
		errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidArgument),
		errors.Is(err, model.ErrItemNotOnJob):
		return http.StatusBadRequest
	case errors.As(err, &insufficient):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError translates a typed error into a JSON error response.
// Partial failures include the applied sub-steps so an operator can
// reconcile; other internal errors are logged and kept generic.
func writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)

	var partial *model.PartialFailureError
	if errors.As(err, &partial) {
		slog.Error("partial operation failure", "op", partial.Op, "completed", partial.Completed, "error", partial.Err)
		jsonResponse(w, http.StatusInternalServerError, map[string]any{
			"error":     partial.Error(),
			"completed": partial.Completed,
		})
		return
	}

	var insufficient *model.InsufficientStockError
	if errors.As(err, &insufficient) {
		jsonResponse(w, status, map[string]any{
			"error":     insufficient.Error(),
			"item_id":   insufficient.ItemID,
			"item_name": insufficient.ItemName,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
		return
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		jsonError(w, status, "internal error")
		return
	}
	jsonError(w, status, err.Error())
}
