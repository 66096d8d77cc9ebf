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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/archivist/archivist/pkg/assert"
	"github.com/archivist/archivist/pkg/server/context"
	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/testutils"
)

func TestAuth(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "password123")
	session := testutils.SetupSession(db, user)

	handler := Auth(db, func(w http.ResponseWriter, r *http.Request) {
		got := context.User(r.Context())
		if got == nil {
			t.Fatal("user should be on the context")
		}
		assert.Equal(t, got.ID, user.ID, "context user mismatch")
		w.WriteHeader(http.StatusOK)
	})

	// bearer header
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+session.Key)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, rec.Code, http.StatusOK, "status code mismatch for bearer auth")

	// session cookie
	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Key})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, rec.Code, http.StatusOK, "status code mismatch for cookie auth")
}

func TestAuth_Rejections(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "password123")

	expired := database.Session{
		UserID:    user.ID,
		Key:       "expired-session-key",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	testutils.MustExec(t, db.Save(&expired), "preparing expired session")

	handler := Auth(db, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not have been called")
	})

	testCases := []struct {
		name    string
		prepare func(r *http.Request)
	}{
		{
			name:    "no credential",
			prepare: func(r *http.Request) {},
		},
		{
			name: "unknown session",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer no-such-session")
			},
		},
		{
			name: "expired session",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+expired.Key)
			},
		},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", "/", nil)
		tc.prepare(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, rec.Code, http.StatusUnauthorized, tc.name)
	}
}

func TestGetCredential(t *testing.T) {
	// the header wins over the cookie
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer header-key")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-key"})

	key, err := GetCredential(req)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, key, "header-key", "credential mismatch")

	// a non-bearer header is rejected
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	_, err = GetCredential(req)
	assert.Equal(t, err, ErrInvalidAuthHeader, "error mismatch")

	// no credential at all
	req = httptest.NewRequest("GET", "/", nil)
	key, err = GetCredential(req)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, key, "", "credential should be empty")
}
