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

	"github.com/archivist/archivist/pkg/server/app"
	"github.com/archivist/archivist/pkg/server/context"
	"github.com/archivist/archivist/pkg/server/presenters"
)

// NewReviews creates a new Reviews controller
func NewReviews(app *app.App) *Reviews {
	return &Reviews{app: app}
}

// Reviews is a review controller.
type Reviews struct {
	app *app.App
}

type createReviewPayload struct {
	DayEntryID       string `schema:"dayEntryId" json:"dayEntryId"`
	Category         string `schema:"category" json:"category"`
	CustomCategoryID string `schema:"customCategoryId" json:"customCategoryId"`
	Content          string `schema:"content" json:"content"`
}

// Create handles POST /reviews
func (re *Reviews) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var params createReviewPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	review, err := re.app.CreateReview(user.ID, app.CreateReviewParams{
		DayEntryUUID:       params.DayEntryID,
		Category:           params.Category,
		CustomCategoryUUID: params.CustomCategoryID,
		Content:            params.Content,
	})
	if err != nil {
		handleJSONError(w, err, "creating review")
		return
	}

	respondJSON(w, http.StatusCreated, struct {
		Review presenters.Review `json:"review"`
	}{
		Review: presenters.PresentReview(review),
	})
}

type updateReviewPayload struct {
	Content string `schema:"content" json:"content"`
}

// Update handles PUT /reviews/{reviewId}
func (re *Reviews) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	reviewUUID, err := paramUUID(r, "reviewId")
	if err != nil {
		handleJSONError(w, err, "validating review id")
		return
	}

	var params updateReviewPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	review, err := re.app.UpdateReview(user.ID, reviewUUID, params.Content)
	if err != nil {
		handleJSONError(w, err, "updating review")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Review presenters.Review `json:"review"`
	}{
		Review: presenters.PresentReview(review),
	})
}

// Delete handles DELETE /reviews/{reviewId}
func (re *Reviews) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	reviewUUID, err := paramUUID(r, "reviewId")
	if err != nil {
		handleJSONError(w, err, "validating review id")
		return
	}

	if err := re.app.DeleteReview(user.ID, reviewUUID); err != nil {
		handleJSONError(w, err, "deleting review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
