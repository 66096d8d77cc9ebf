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
	mw "github.com/archivist/archivist/pkg/server/middleware"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	APIRoutes   []Route
}

const datePattern = "{date:[0-9]{4}-[0-9]{2}-[0-9]{2}}"

// NewAPIRoutes returns a new api routes
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	ret := []Route{
		{"POST", "/auth/signin", c.Users.Signin, true},
		{"POST", "/auth/signout", c.Users.Signout, true},
		{"POST", "/auth/reset-token", c.Users.CreateResetToken, true},
		{"PATCH", "/auth/password-reset", c.Users.PasswordReset, true},
		{"GET", "/me", mw.Auth(a.DB, c.Users.Me), true},

		{"GET", "/days/{year:[0-9]{4}}", mw.Auth(a.DB, c.Days.Index), true},
		{"GET", "/days/" + datePattern, mw.Auth(a.DB, c.Days.Show), true},
		{"POST", "/days", mw.Auth(a.DB, c.Days.Upsert), true},
		{"PUT", "/days/" + datePattern, mw.Auth(a.DB, c.Days.Update), true},
		{"DELETE", "/days/" + datePattern, mw.Auth(a.DB, c.Days.Delete), true},

		{"POST", "/reviews", mw.Auth(a.DB, c.Reviews.Create), true},
		{"PUT", "/reviews/{reviewId}", mw.Auth(a.DB, c.Reviews.Update), true},
		{"DELETE", "/reviews/{reviewId}", mw.Auth(a.DB, c.Reviews.Delete), true},

		{"GET", "/categories", mw.Auth(a.DB, c.Categories.Index), true},
		{"POST", "/categories", mw.Auth(a.DB, c.Categories.Create), true},
		{"PUT", "/categories/{categoryId}", mw.Auth(a.DB, c.Categories.Update), true},
		{"DELETE", "/categories/{categoryId}", mw.Auth(a.DB, c.Categories.Delete), true},

		// settings and slug routes register before the catch-all identifier
		{"GET", "/profile/settings", mw.Auth(a.DB, c.Profile.GetSettings), true},
		{"PUT", "/profile/settings", mw.Auth(a.DB, c.Profile.UpdateSettings), true},
		{"GET", "/profile/slug/{slug}", c.Profile.ShowBySlug, true},
		{"GET", "/profile/{userIdOrSlug}", c.Profile.Show, true},

		{"GET", "/health", c.Health.Index, true},
	}

	if !a.DisableRegistration {
		ret = append(ret, Route{"POST", "/auth/register", c.Users.Register, true})
	}

	return ret
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, app *app.App, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, app, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)

	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, mw.APIMw, app, rc.APIRoutes)

	router.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nAllow: /"))
	})

	return mw.Global(router), nil
}
