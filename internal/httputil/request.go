package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"arguminds/internal/config"
)

// ErrTrailingData is returned when a body holds more than one JSON value
var ErrTrailingData = errors.New("unexpected data after JSON object")

// ParseJSON decodes a single JSON object of at most config.MaxJSONBodySize
// bytes into dest. Unknown fields are ignored; services validate the rest.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxJSONBodySize)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

// RespondBodyError reports a ParseJSON failure: 413 for oversized bodies,
// 400 otherwise.
func RespondBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		RespondError(w, http.StatusRequestEntityTooLarge, "request body exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
		return
	}
	RespondError(w, http.StatusBadRequest, "Invalid request body")
}
