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
	"net/http"
	"strconv"

	"github.com/archivist/archivist/pkg/server/app"
	"github.com/archivist/archivist/pkg/server/context"
	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/presenters"
	"github.com/gorilla/mux"
)

// NewDays creates a new Days controller
func NewDays(app *app.App) *Days {
	return &Days{app: app}
}

// Days is a day entry controller.
type Days struct {
	app *app.App
}

// Index handles GET /days/{year}. It returns the user's entries for the
// supported year along with every review attached to them.
func (d *Days) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil || year != database.SupportedYear {
		handleJSONError(w, app.ErrUnsupportedYear, "validating year")
		return
	}

	result, err := d.app.GetYearEntries(user.ID)
	if err != nil {
		handleJSONError(w, err, "getting year entries")
		return
	}

	// reviews ride along both nested per entry and as a flat list
	respondJSON(w, http.StatusOK, struct {
		Entries []presenters.DayEntry `json:"entries"`
		Reviews []presenters.Review   `json:"reviews"`
	}{
		Entries: presenters.PresentDayEntries(result.Entries, result.Reviews),
		Reviews: presenters.PresentReviews(result.Reviews),
	})
}

// Show handles GET /days/{date}
func (d *Days) Show(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	vars := mux.Vars(r)
	date := vars["date"]

	entry, reviews, err := d.app.GetDayEntry(user.ID, date)
	if err != nil {
		handleJSONError(w, err, "getting day entry")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Entry   presenters.DayEntry `json:"entry"`
		Reviews []presenters.Review `json:"reviews"`
	}{
		Entry:   presenters.PresentDayEntry(entry, reviews),
		Reviews: presenters.PresentReviews(reviews),
	})
}

type upsertDayPayload struct {
	Date   string `schema:"date" json:"date"`
	Legend string `schema:"legend" json:"legend"`
}

// Upsert handles POST /days. Creating responds 201 and overwriting an
// existing entry's legend responds 200.
func (d *Days) Upsert(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var params upsertDayPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	entry, created, err := d.app.UpsertDayEntry(user.ID, params.Date, params.Legend)
	if err != nil {
		handleJSONError(w, err, "upserting day entry")
		return
	}

	statusCode := http.StatusOK
	if created {
		statusCode = http.StatusCreated
	}

	respondJSON(w, statusCode, struct {
		Entry presenters.DayEntry `json:"entry"`
	}{
		Entry: presenters.PresentDayEntry(entry, nil),
	})
}

type updateDayPayload struct {
	Legend string `schema:"legend" json:"legend"`
}

// Update handles PUT /days/{date}
func (d *Days) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	vars := mux.Vars(r)
	date := vars["date"]

	var params updateDayPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	entry, err := d.app.UpdateDayEntry(user.ID, date, params.Legend)
	if err != nil {
		handleJSONError(w, err, "updating day entry")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Entry presenters.DayEntry `json:"entry"`
	}{
		Entry: presenters.PresentDayEntry(entry, nil),
	})
}

// Delete handles DELETE /days/{date}
func (d *Days) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	vars := mux.Vars(r)
	date := vars["date"]

	if err := d.app.DeleteDayEntry(user.ID, date); err != nil {
		handleJSONError(w, err, "deleting day entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
