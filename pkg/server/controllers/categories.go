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

// NewCategories creates a new Categories controller
func NewCategories(app *app.App) *Categories {
	return &Categories{app: app}
}

// Categories is a custom category controller.
type Categories struct {
	app *app.App
}

// Index handles GET /categories
func (c *Categories) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	categories, err := c.app.GetCategories(user.ID)
	if err != nil {
		handleJSONError(w, err, "getting categories")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Categories []presenters.CustomCategory `json:"categories"`
	}{
		Categories: presenters.PresentCategories(categories),
	})
}

type createCategoryPayload struct {
	Name       string `schema:"name" json:"name"`
	IsRequired bool   `schema:"isRequired" json:"isRequired"`
	Order      int    `schema:"order" json:"order"`
}

// Create handles POST /categories
func (c *Categories) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var params createCategoryPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	category, err := c.app.CreateCategory(user.ID, params.Name, params.IsRequired, params.Order)
	if err != nil {
		handleJSONError(w, err, "creating category")
		return
	}

	respondJSON(w, http.StatusCreated, struct {
		Category presenters.CustomCategory `json:"category"`
	}{
		Category: presenters.PresentCategory(category),
	})
}

type updateCategoryPayload struct {
	Name       *string `schema:"name" json:"name"`
	IsRequired *bool   `schema:"isRequired" json:"isRequired"`
}

// Update handles PUT /categories/{categoryId}. The order of a category is
// immutable; payloads carry only name and the required flag.
func (c *Categories) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	categoryUUID, err := paramUUID(r, "categoryId")
	if err != nil {
		handleJSONError(w, err, "validating category id")
		return
	}

	var params updateCategoryPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	category, err := c.app.UpdateCategory(user.ID, categoryUUID, app.UpdateCategoryParams{
		Name:       params.Name,
		IsRequired: params.IsRequired,
	})
	if err != nil {
		handleJSONError(w, err, "updating category")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Category presenters.CustomCategory `json:"category"`
	}{
		Category: presenters.PresentCategory(category),
	})
}

// Delete handles DELETE /categories/{categoryId}
func (c *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	categoryUUID, err := paramUUID(r, "categoryId")
	if err != nil {
		handleJSONError(w, err, "validating category id")
		return
	}

	if err := c.app.DeleteCategory(user.ID, categoryUUID); err != nil {
		handleJSONError(w, err, "deleting category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
