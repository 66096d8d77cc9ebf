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

// ProfileSettings is a result of PresentSettings. PublicSlug is null when
// the user holds no slug.
type ProfileSettings struct {
	UUID        string    `json:"uuid"`
	IsPublic    bool      `json:"is_public"`
	ShowMoods   bool      `json:"show_moods"`
	ShowReviews bool      `json:"show_reviews"`
	ShowStats   bool      `json:"show_stats"`
	PublicSlug  *string   `json:"public_slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PresentSettings presents profile settings
func PresentSettings(settings database.ProfileSettings) ProfileSettings {
	ret := ProfileSettings{
		UUID:        settings.UUID,
		IsPublic:    settings.IsPublic,
		ShowMoods:   settings.ShowMoods,
		ShowReviews: settings.ShowReviews,
		ShowStats:   settings.ShowStats,
		CreatedAt:   FormatTS(settings.CreatedAt),
		UpdatedAt:   FormatTS(settings.UpdatedAt),
	}

	if settings.PublicSlug.Valid {
		slug := settings.PublicSlug.String
		ret.PublicSlug = &slug
	}

	return ret
}
