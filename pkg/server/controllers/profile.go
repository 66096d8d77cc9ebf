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
	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/presenters"
	"github.com/gorilla/mux"
	pkgErrors "github.com/pkg/errors"
)

// NewProfile creates a new Profile controller
func NewProfile(app *app.App) *Profile {
	return &Profile{app: app}
}

// Profile is a profile controller.
type Profile struct {
	app *app.App
}

// GetSettings handles GET /profile/settings
func (p *Profile) GetSettings(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	settings, err := p.app.GetOrCreateProfileSettings(*user)
	if err != nil {
		handleJSONError(w, err, "getting profile settings")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Settings presenters.ProfileSettings `json:"settings"`
	}{
		Settings: presenters.PresentSettings(settings),
	})
}

type updateSettingsPayload struct {
	IsPublic    *bool   `schema:"isPublic" json:"isPublic"`
	ShowMoods   *bool   `schema:"showMoods" json:"showMoods"`
	ShowReviews *bool   `schema:"showReviews" json:"showReviews"`
	ShowStats   *bool   `schema:"showStats" json:"showStats"`
	PublicSlug  *string `schema:"publicSlug" json:"publicSlug"`
}

// UpdateSettings handles PUT /profile/settings. Absent fields are left
// untouched; an empty publicSlug clears the slug.
func (p *Profile) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var payload updateSettingsPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	params := app.UpdateSettingsParams{
		IsPublic:    payload.IsPublic,
		ShowMoods:   payload.ShowMoods,
		ShowReviews: payload.ShowReviews,
		ShowStats:   payload.ShowStats,
	}
	if payload.PublicSlug != nil {
		slug := database.ToNullString(*payload.PublicSlug)
		params.PublicSlug = &slug
	}

	settings, err := p.app.UpdateProfileSettings(*user, params)
	if err != nil {
		handleJSONError(w, err, "updating profile settings")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Settings presenters.ProfileSettings `json:"settings"`
	}{
		Settings: presenters.PresentSettings(settings),
	})
}

// respondProfileNotFound reports a private profile and a missing profile
// identically
func respondProfileNotFound(w http.ResponseWriter) {
	respondJSON(w, http.StatusNotFound, errorResponse{
		Message: "Profile is private or does not exist",
	})
}

func (p *Profile) showProfile(w http.ResponseWriter, user database.User) {
	view, err := p.app.GetPublicProfile(user.ID)
	if pkgErrors.Cause(err) == app.ErrNotFound {
		respondProfileNotFound(w)
		return
	} else if err != nil {
		handleJSONError(w, err, "getting public profile")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Profile presenters.Profile `json:"profile"`
	}{
		Profile: presenters.PresentProfile(view),
	})
}

// Show handles GET /profile/{userIdOrSlug}. The identifier is resolved as a
// slug first, then as a raw user id.
func (p *Profile) Show(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	identifier := vars["userIdOrSlug"]

	user, err := p.app.ResolvePublicIdentity(identifier)
	if pkgErrors.Cause(err) == app.ErrNotFound {
		respondProfileNotFound(w)
		return
	} else if err != nil {
		handleJSONError(w, err, "resolving profile identity")
		return
	}

	p.showProfile(w, user)
}

// ShowBySlug handles GET /profile/slug/{slug}
func (p *Profile) ShowBySlug(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	user, err := p.app.ResolvePublicSlug(slug)
	if pkgErrors.Cause(err) == app.ErrNotFound {
		respondProfileNotFound(w)
		return
	} else if err != nil {
		handleJSONError(w, err, "resolving profile slug")
		return
	}

	p.showProfile(w, user)
}
