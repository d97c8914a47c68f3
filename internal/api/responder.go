package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nhalm/canonlog"
)

func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError records err on the canonical log line and writes the error
// envelope. err itself never reaches the client.
func renderError(w http.ResponseWriter, r *http.Request, status int, code string, err error, message, param string) {
	canonlog.AddRequestError(r.Context(), err)
	renderJSON(w, status, newErrorResponse(status, code, publicMessage(message, status), param))
}

// publicMessage hides server failures and anything that names the database.
func publicMessage(message string, status int) string {
	if status >= 500 {
		return "An internal error occurred"
	}
	lower := strings.ToLower(message)
	for _, leak := range []string{"sql", "database", "postgres", "pgx"} {
		if strings.Contains(lower, leak) {
			return "Invalid request"
		}
	}
	return message
}

func Success(w http.ResponseWriter, data any) {
	renderJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	renderJSON(w, http.StatusCreated, data)
}

func ProductPage(w http.ResponseWriter, products []ProductResponse, hasMore bool, nextCursor, prevCursor string) {
	renderJSON(w, http.StatusOK, ProductListResponse{
		Data:       products,
		HasMore:    hasMore,
		NextCursor: nextCursor,
		PrevCursor: prevCursor,
	})
}

func BadRequest(w http.ResponseWriter, r *http.Request, err error, message, param string) {
	renderError(w, r, http.StatusBadRequest, CodeParameterInvalid, err, message, param)
}

func Unauthorized(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusUnauthorized, CodeUnauthenticated, err, message, "")
}

func Forbidden(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusForbidden, CodeForbidden, err, message, "")
}

func NotFound(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusNotFound, CodeResourceMissing, err, message, "")
}

func ServiceUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, err, "", "")
}

func GatewayTimeout(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, r, http.StatusGatewayTimeout, CodeTimeout, err, "", "")
}

func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, r, http.StatusInternalServerError, CodeInternal, err, "", "")
}
