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

package presenters

import (
	"time"

	"github.com/archivist/archivist/pkg/server/database"
)

// CustomCategory is a result of PresentCategory
type CustomCategory struct {
	UUID       string    `json:"uuid"`
	Name       string    `json:"name"`
	IsRequired bool      `json:"is_required"`
	Order      int       `json:"order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PresentCategory presents a custom category
func PresentCategory(category database.CustomCategory) CustomCategory {
	return CustomCategory{
		UUID:       category.UUID,
		Name:       category.Name,
		IsRequired: category.IsRequired,
		Order:      category.Slot,
		CreatedAt:  FormatTS(category.CreatedAt),
		UpdatedAt:  FormatTS(category.UpdatedAt),
	}
}

// PresentCategories presents custom categories
func PresentCategories(categories []database.CustomCategory) []CustomCategory {
	ret := []CustomCategory{}

	for _, category := range categories {
		ret = append(ret, PresentCategory(category))
	}

	return ret
}
