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
	"net/url"
	"testing"

	"github.com/archivist/archivist/pkg/assert"
	"github.com/archivist/archivist/pkg/server/app"
	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/presenters"
	"github.com/archivist/archivist/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestRegister(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	backend := &testutils.MockEmailbackendImplementation{}

	a := app.NewTest()
	a.DB = db
	a.EmailBackend = backend
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "POST", "/api/auth/register", `{"email": "user@test.com", "password": "password123", "password_confirmation": "password123"}`)
	res := testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusCreated, "registering")

	var payload struct {
		User    presenters.User    `json:"user"`
		Session presenters.Session `json:"session"`
	}
	testutils.MustUnmarshalJSON(t, res, &payload)
	assert.Equal(t, payload.User.Email, "user@test.com", "user email mismatch")
	assert.NotEqual(t, payload.Session.Key, "", "session key should have been issued")

	c := testutils.GetCookieByName(res.Cookies(), "id")
	if c == nil {
		t.Fatal("session cookie should have been set")
	}
	assert.Equal(t, c.Value, payload.Session.Key, "session cookie mismatch")
	assert.Equal(t, c.HttpOnly, true, "session cookie should be http only")

	var userCount int64
	testutils.MustExec(t, db.Model(&database.User{}).Count(&userCount), "counting users")
	assert.Equal(t, userCount, int64(1), "user count mismatch")

	assert.Equal(t, len(backend.Emails), 1, "email count mismatch")
}

func TestRegister_BadRequests(t *testing.T) {
	testCases := []struct {
		payload      string
		expectedCode int
	}{
		{
			payload:      `{"email": "", "password": "password123", "password_confirmation": "password123"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			payload:      `{"email": "user@test.com", "password": "short", "password_confirmation": "short"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			payload:      `{"email": "user@test.com", "password": "password123", "password_confirmation": "password124"}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		func() {
			db := testutils.InitMemoryDB(t)

			a := app.NewTest()
			a.DB = db
			server := MustNewServer(t, &a)
			defer server.Close()

			req := testutils.MakeReq(server.URL, "POST", "/api/auth/register", tc.payload)
			res := testutils.HTTPDo(t, req)
			assert.StatusCodeEquals(t, res, tc.expectedCode, "registering with a bad payload")
		}()
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	testutils.SetupUserData(db, "user@test.com", "password123")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "POST", "/api/auth/register", `{"email": "user@test.com", "password": "password123", "password_confirmation": "password123"}`)
	res := testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusConflict, "registering a duplicate email")
}

func TestRegister_Disabled(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := app.NewTest()
	a.DB = db
	a.DisableRegistration = true
	server := MustNewServer(t, &a)
	defer server.Close()

	// the route is not even registered
	req := testutils.MakeReq(server.URL, "POST", "/api/auth/register", `{"email": "user@test.com", "password": "password123", "password_confirmation": "password123"}`)
	res := testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "registering while disabled")
}

func TestSignin(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	testutils.SetupUserData(db, "user@test.com", "password123")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "POST", "/api/auth/signin", `{"email": "user@test.com", "password": "password123"}`)
	res := testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusOK, "signing in")

	var payload struct {
		Session presenters.Session `json:"session"`
	}
	testutils.MustUnmarshalJSON(t, res, &payload)
	assert.NotEqual(t, payload.Session.Key, "", "session key should have been issued")

	c := testutils.GetCookieByName(res.Cookies(), "id")
	if c == nil {
		t.Fatal("session cookie should have been set")
	}
	assert.Equal(t, c.Value, payload.Session.Key, "session cookie mismatch")
}

func TestSignin_Form(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	testutils.SetupUserData(db, "user@test.com", "password123")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	form := url.Values{}
	form.Set("email", "user@test.com")
	form.Set("password", "password123")

	req := testutils.MakeFormReq(server.URL, "POST", "/api/auth/signin", form)
	res := testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusOK, "signing in with form data")
}

func TestSignin_Invalid(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	testutils.SetupUserData(db, "user@test.com", "password123")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	testCases := []struct {
		payload      string
		expectedCode int
	}{
		{
			payload:      `{"email": "user@test.com", "password": "wrongpassword"}`,
			expectedCode: http.StatusUnauthorized,
		},
		{
			payload:      `{"email": "nobody@test.com", "password": "password123"}`,
			expectedCode: http.StatusUnauthorized,
		},
		{
			payload:      `{"email": "", "password": "password123"}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		req := testutils.MakeReq(server.URL, "POST", "/api/auth/signin", tc.payload)
		res := testutils.HTTPDo(t, req)
		assert.StatusCodeEquals(t, res, tc.expectedCode, "signing in with bad credentials")
	}
}

func TestSignout(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "password123")
	session := testutils.SetupSession(db, user)

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "POST", "/api/auth/signout", "")
	req.Header.Set("Authorization", "Bearer "+session.Key)
	res := testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "signing out")

	var count int64
	testutils.MustExec(t, db.Model(&database.Session{}).Count(&count), "counting sessions")
	assert.Equal(t, count, int64(0), "session count mismatch")

	// the session is gone but signing out again is not an error
	req = testutils.MakeReq(server.URL, "POST", "/api/auth/signout", "")
	req.Header.Set("Authorization", "Bearer "+session.Key)
	res = testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "signing out again")
}

func TestMe(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "password123")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "GET", "/api/me", "")
	res := testutils.HTTPAuthDo(t, db, req, user)
	assert.StatusCodeEquals(t, res, http.StatusOK, "getting me")

	var payload struct {
		User presenters.User `json:"user"`
	}
	testutils.MustUnmarshalJSON(t, res, &payload)
	assert.Equal(t, payload.User.UUID, user.UUID, "user uuid mismatch")
	assert.Equal(t, payload.User.Email, "user@test.com", "user email mismatch")

	req = testutils.MakeReq(server.URL, "GET", "/api/me", "")
	res = testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "getting me without a session")
}

func TestPasswordResetFlow(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "oldpassword")
	testutils.SetupSession(db, user)

	backend := &testutils.MockEmailbackendImplementation{}

	a := app.NewTest()
	a.DB = db
	a.EmailBackend = backend
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "POST", "/api/auth/reset-token", `{"email": "user@test.com"}`)
	res := testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "requesting a reset token")

	// an unknown email gets the same answer
	req = testutils.MakeReq(server.URL, "POST", "/api/auth/reset-token", `{"email": "nobody@test.com"}`)
	res = testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "requesting a reset token for an unknown email")

	assert.Equal(t, len(backend.Emails), 1, "email count mismatch")

	var resetToken database.Token
	if err := db.Where("user_id = ?", user.ID).First(&resetToken).Error; err != nil {
		t.Fatal(errors.Wrap(err, "finding token"))
	}
	// keep the token inside the expiry window relative to the test clock
	testutils.MustExec(t, db.Model(&resetToken).Update("created_at", a.Clock.Now()), "adjusting token age")

	req = testutils.MakeReq(server.URL, "PATCH", "/api/auth/password-reset", `{"token": "`+resetToken.Value+`", "password": "newpassword"}`)
	res = testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "resetting the password")

	var sessionCount int64
	testutils.MustExec(t, db.Model(&database.Session{}).Count(&sessionCount), "counting sessions")
	assert.Equal(t, sessionCount, int64(0), "existing sessions should have been invalidated")

	// the old password no longer works, the new one does
	req = testutils.MakeReq(server.URL, "POST", "/api/auth/signin", `{"email": "user@test.com", "password": "oldpassword"}`)
	res = testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "signing in with the old password")

	req = testutils.MakeReq(server.URL, "POST", "/api/auth/signin", `{"email": "user@test.com", "password": "newpassword"}`)
	res = testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusOK, "signing in with the new password")

	// the token is single-use
	req = testutils.MakeReq(server.URL, "PATCH", "/api/auth/password-reset", `{"token": "`+resetToken.Value+`", "password": "anotherpassword"}`)
	res = testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusBadRequest, "reusing the token")
}
