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
	"testing"

	"github.com/archivist/archivist/pkg/assert"
	"github.com/archivist/archivist/pkg/server/app"
	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/presenters"
	"github.com/archivist/archivist/pkg/server/testutils"
)

func TestGetProfileSettings(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "password123")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "GET", "/api/profile/settings", "")
	res := testutils.HTTPAuthDo(t, db, req, user)
	assert.StatusCodeEquals(t, res, http.StatusOK, "getting profile settings")

	var payload struct {
		Settings presenters.ProfileSettings `json:"settings"`
	}
	testutils.MustUnmarshalJSON(t, res, &payload)

	assert.Equal(t, payload.Settings.IsPublic, false, "is_public default mismatch")
	assert.Equal(t, payload.Settings.ShowMoods, true, "show_moods default mismatch")
	assert.Equal(t, payload.Settings.ShowReviews, false, "show_reviews default mismatch")
	assert.Equal(t, payload.Settings.ShowStats, true, "show_stats default mismatch")
	if payload.Settings.PublicSlug == nil {
		t.Fatal("default slug should be set")
	}
	assert.Equal(t, *payload.Settings.PublicSlug, "user", "default slug mismatch")
}

func TestUpdateProfileSettingsHTTP(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "password123")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "PUT", "/api/profile/settings", `{"isPublic": true, "showReviews": true, "publicSlug": "my-year"}`)
	res := testutils.HTTPAuthDo(t, db, req, user)
	assert.StatusCodeEquals(t, res, http.StatusOK, "updating profile settings")

	var payload struct {
		Settings presenters.ProfileSettings `json:"settings"`
	}
	testutils.MustUnmarshalJSON(t, res, &payload)
	assert.Equal(t, payload.Settings.IsPublic, true, "is_public mismatch")
	assert.Equal(t, payload.Settings.ShowReviews, true, "show_reviews mismatch")
	assert.Equal(t, *payload.Settings.PublicSlug, "my-year", "public_slug mismatch")

	// an empty slug clears it
	req = testutils.MakeReq(server.URL, "PUT", "/api/profile/settings", `{"publicSlug": ""}`)
	res = testutils.HTTPAuthDo(t, db, req, user)
	assert.StatusCodeEquals(t, res, http.StatusOK, "clearing the slug")

	testutils.MustUnmarshalJSON(t, res, &payload)
	if payload.Settings.PublicSlug != nil {
		t.Fatal("public_slug should have been cleared")
	}
	assert.Equal(t, payload.Settings.IsPublic, true, "untouched fields should survive")
}

func TestUpdateProfileSettingsHTTP_SlugConflict(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "password123")
	anotherUser := testutils.SetupUserData(db, "another@test.com", "password123")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "PUT", "/api/profile/settings", `{"publicSlug": "my-year"}`)
	res := testutils.HTTPAuthDo(t, db, req, user)
	assert.StatusCodeEquals(t, res, http.StatusOK, "setting the slug")

	req = testutils.MakeReq(server.URL, "PUT", "/api/profile/settings", `{"publicSlug": "my-year"}`)
	res = testutils.HTTPAuthDo(t, db, req, anotherUser)
	assert.StatusCodeEquals(t, res, http.StatusConflict, "taking a claimed slug")

	req = testutils.MakeReq(server.URL, "PUT", "/api/profile/settings", `{"publicSlug": "Bad Slug"}`)
	res = testutils.HTTPAuthDo(t, db, req, anotherUser)
	assert.StatusCodeEquals(t, res, http.StatusBadRequest, "setting a malformed slug")
}

func TestShowProfile(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "password123")

	testutils.SetupEntryData(db, user, "2026-01-10", database.LegendGoodDay)
	testutils.SetupEntryData(db, user, "2026-02-14", database.LegendCoreMemory)
	testutils.SetupEntryData(db, user, "2026-03-01", database.LegendBadDay)

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	slug := database.ToNullString("my-year")
	if _, err := a.UpdateProfileSettings(user, app.UpdateSettingsParams{
		IsPublic:   &testutils.TrueVal,
		PublicSlug: &slug,
	}); err != nil {
		t.Fatal(err)
	}

	// no session required
	for _, path := range []string{
		"/api/profile/my-year",
		"/api/profile/slug/my-year",
		"/api/profile/" + user.UUID,
	} {
		req := testutils.MakeReq(server.URL, "GET", path, "")
		res := testutils.HTTPDo(t, req)
		assert.StatusCodeEquals(t, res, http.StatusOK, "getting a public profile")

		var payload struct {
			Profile presenters.Profile `json:"profile"`
		}
		testutils.MustUnmarshalJSON(t, res, &payload)

		assert.Equal(t, payload.Profile.User.UUID, user.UUID, "profile user uuid mismatch")
		if payload.Profile.User.AvatarURL != nil {
			t.Errorf("avatar url should be null, got %s", *payload.Profile.User.AvatarURL)
		}
		assert.Equal(t, *payload.Profile.User.PublicSlug, "my-year", "profile slug mismatch")
		assert.Equal(t, payload.Profile.Settings.ShowMoods, true, "show_moods flag mismatch")
		assert.Equal(t, payload.Profile.Settings.ShowReviews, false, "show_reviews flag mismatch")
		assert.Equal(t, payload.Profile.Settings.ShowStats, true, "show_stats flag mismatch")
		assert.Equal(t, len(payload.Profile.Entries), 3, "entry count mismatch")
		assert.Equal(t, len(payload.Profile.Reviews), 0, "reviews should be hidden by default")
		if payload.Profile.Stats == nil {
			t.Fatal("stats should be present")
		}
		assert.Equal(t, payload.Profile.Stats.TotalEntries, 3, "total entries mismatch")
		assert.Equal(t, payload.Profile.Stats.GoodDaysCount, 2, "good days mismatch")
	}
}

func TestShowProfile_PrivateOrMissing(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "password123")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	// private profile with a claimed slug
	slug := database.ToNullString("my-year")
	if _, err := a.UpdateProfileSettings(user, app.UpdateSettingsParams{PublicSlug: &slug}); err != nil {
		t.Fatal(err)
	}

	// a private profile and an unknown identifier are indistinguishable
	for _, path := range []string{
		"/api/profile/my-year",
		"/api/profile/slug/my-year",
		"/api/profile/" + user.UUID,
		"/api/profile/no-such-profile",
		"/api/profile/slug/no-such-profile",
	} {
		req := testutils.MakeReq(server.URL, "GET", path, "")
		res := testutils.HTTPDo(t, req)
		assert.StatusCodeEquals(t, res, http.StatusNotFound, "getting a hidden profile")

		var payload struct {
			Message string `json:"message"`
		}
		testutils.MustUnmarshalJSON(t, res, &payload)
		assert.Equal(t, payload.Message, "Profile is private or does not exist", "message mismatch")
	}
}
