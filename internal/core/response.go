// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// JSONError renders err as {"error": "..."}. Errors that are not AppErrors
// are treated as unexpected and collapsed to a generic 500.
func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		InternalServerError(w, err)
		return
	}

	body := make(map[string]any, len(appErr.Extra)+1)
	for k, v := range appErr.Extra {
		body[k] = v
	}
	body["error"] = appErr.Message

	JSON(w, appErr.StatusCode, body)
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, BadRequestError(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource))
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("unhandled error", "error", err)
	JSON(w, http.StatusInternalServerError, map[string]string{
		"error": "Server error",
	})
}

// ValidationFailed renders field errors as {"errors": [...]}.
func ValidationFailed(w http.ResponseWriter, fields []FieldError) {
	JSON(w, http.StatusBadRequest, map[string]any{
		"errors": fields,
	})
}
