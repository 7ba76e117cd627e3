package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON marshals data before writing headers so an encoding failure
// still yields a clean 500.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// Problem is an RFC 9457 problem document. Errors carries per-field
// messages for rejected case, argument, source and profile payloads.
type Problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// RespondError writes a problem document for status
func RespondError(w http.ResponseWriter, status int, detail string) {
	writeProblem(w, Problem{
		Type:   problemType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}

// RespondValidationError writes a 400 listing the offending fields, keyed
// by their JSON names.
func RespondValidationError(w http.ResponseWriter, detail string, fields map[string]string) {
	writeProblem(w, Problem{
		Type:   problemType(http.StatusBadRequest),
		Title:  http.StatusText(http.StatusBadRequest),
		Status: http.StatusBadRequest,
		Detail: detail,
		Errors: fields,
	})
}

func writeProblem(w http.ResponseWriter, problem Problem) {
	payload, err := json.Marshal(problem)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	w.Write(payload)
}

// problemType maps the statuses the API emits to their RFC 9110 sections
func problemType(status int) string {
	section, ok := map[int]string{
		http.StatusBadRequest:            "15.5.1",
		http.StatusUnauthorized:          "15.5.2",
		http.StatusForbidden:             "15.5.4",
		http.StatusNotFound:              "15.5.5",
		http.StatusRequestEntityTooLarge: "15.5.14",
		http.StatusInternalServerError:   "15.6.1",
		http.StatusBadGateway:            "15.6.3",
		http.StatusServiceUnavailable:    "15.6.4",
	}[status]
	if !ok {
		return "about:blank"
	}
	return "https://www.rfc-editor.org/rfc/rfc9110#section-" + section
}
