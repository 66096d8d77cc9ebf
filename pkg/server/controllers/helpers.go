/* Copyright 2026 Archivist Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/archivist/archivist/pkg/server/app"
	"github.com/archivist/archivist/pkg/server/helpers"
	"github.com/archivist/archivist/pkg/server/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
)

var formDecoder = schema.NewDecoder()

func init() {
	formDecoder.IgnoreUnknownKeys(true)
}

// parseForm parses the request's form data into the given destination
func parseForm(r *http.Request, dst interface{}) error {
	if err := r.ParseForm(); err != nil {
		return errors.Wrap(err, "parsing form")
	}

	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		return errors.Wrap(err, "decoding form")
	}

	return nil
}

// parseRequestData parses the request payload into the given destination.
// JSON bodies and form bodies are both accepted.
func parseRequestData(r *http.Request, dst interface{}) error {
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return errors.Wrap(err, "decoding json")
		}

		return nil
	}

	return parseForm(r, dst)
}

// errorResponse is the shape of an error payload
type errorResponse struct {
	Message string `json:"message"`
}

// paramUUID reads a path variable that must be a uuid. A malformed id is
// reported as not found, the same as an id that matches nothing.
func paramUUID(r *http.Request, name string) (string, error) {
	val := mux.Vars(r)[name]
	if !helpers.ValidateUUID(val) {
		return "", app.ErrNotFound
	}

	return val, nil
}

// statusCodeForError maps service errors to HTTP status codes. Unrecognized
// errors are treated as internal.
func statusCodeForError(err error) int {
	cause := errors.Cause(err)

	switch cause {
	case app.ErrNotFound:
		return http.StatusNotFound
	case app.ErrLoginInvalid:
		return http.StatusUnauthorized
	case app.ErrDuplicateReview, app.ErrSlugTaken, app.ErrDuplicateEmail:
		return http.StatusConflict
	case app.ErrRegistrationDisabled:
		return http.StatusForbidden
	case app.ErrInvalidDate,
		app.ErrUnsupportedYear,
		app.ErrFutureDate,
		app.ErrInvalidLegend,
		app.ErrInvalidCategory,
		app.ErrReviewContentRequired,
		app.ErrCustomCategoryRequired,
		app.ErrCategoryNameInvalid,
		app.ErrCategoryOrderInvalid,
		app.ErrCategoryLimit,
		app.ErrCategoryOrderTaken,
		app.ErrInvalidSlug,
		app.ErrEmailRequired,
		app.ErrPasswordRequired,
		app.ErrPasswordTooShort,
		app.ErrPasswordConfirmationMismatch,
		app.ErrInvalidToken,
		app.ErrPasswordResetTokenExpired:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// handleJSONError logs the error and responds with a JSON error body
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	statusCode := statusCodeForError(err)

	var message string
	if statusCode == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"statusCode": statusCode,
		}).ErrorWrap(err, msg)
		message = "Internal server error"
	} else {
		message = errors.Cause(err).Error()
	}

	respondJSON(w, statusCode, errorResponse{Message: message})
}

// respondJSON responds with the JSON-encoding of the given value
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

func setSessionCookie(w http.ResponseWriter, key string, expiresAt time.Time) {
	cookie := http.Cookie{
		Name:     "id",
		Value:    key,
		Expires:  expiresAt,
		Path:     "/",
		HttpOnly: true,
	}
	http.SetCookie(w, &cookie)
}

func unsetSessionCookie(w http.ResponseWriter) {
	cookie := http.Cookie{
		Name:     "id",
		Value:    "",
		Expires:  time.Now(),
		Path:     "/",
		HttpOnly: true,
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.SetCookie(w, &cookie)
}
