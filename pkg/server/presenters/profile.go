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
	"github.com/archivist/archivist/pkg/server/app"
)

// ProfileEntry is a day entry in a public profile. It omits timestamps and
// review linkage so that a public page exposes only the mood itself.
type ProfileEntry struct {
	UUID   string `json:"uuid"`
	Date   string `json:"date"`
	Legend string `json:"legend"`
}

// ProfileStats is the aggregate counts in a public profile
type ProfileStats struct {
	TotalEntries  int `json:"total_entries"`
	GoodDaysCount int `json:"good_days_count"`
}

// ProfileUser is the owner section of a public profile. AvatarURL is null
// when the user holds no avatar.
type ProfileUser struct {
	UUID       string  `json:"uuid"`
	Name       string  `json:"name"`
	AvatarURL  *string `json:"avatar_url"`
	PublicSlug *string `json:"public_slug"`
}

// ProfileFlags is the visibility flags of a public profile. They let a
// consumer tell a hidden section apart from an empty one.
type ProfileFlags struct {
	ShowMoods   bool `json:"show_moods"`
	ShowReviews bool `json:"show_reviews"`
	ShowStats   bool `json:"show_stats"`
}

// Profile is a result of PresentProfile. Entries, Reviews, and Stats are
// omitted from the payload when the owner's settings hide them.
type Profile struct {
	User     ProfileUser         `json:"user"`
	Settings ProfileFlags        `json:"settings"`
	Entries  []ProfileEntry      `json:"entries,omitempty"`
	Reviews  map[string][]Review `json:"reviews,omitempty"`
	Stats    *ProfileStats       `json:"stats,omitempty"`
}

// PresentProfile presents a public profile view
func PresentProfile(view app.ProfileView) Profile {
	ret := Profile{
		User: ProfileUser{
			UUID: view.User.UUID,
			Name: view.User.Name,
		},
		Settings: ProfileFlags{
			ShowMoods:   view.Settings.ShowMoods,
			ShowReviews: view.Settings.ShowReviews,
			ShowStats:   view.Settings.ShowStats,
		},
	}

	if view.User.AvatarURL.Valid {
		avatarURL := view.User.AvatarURL.String
		ret.User.AvatarURL = &avatarURL
	}

	if view.Settings.PublicSlug.Valid {
		slug := view.Settings.PublicSlug.String
		ret.User.PublicSlug = &slug
	}

	if view.Settings.ShowMoods {
		entries := []ProfileEntry{}
		for _, entry := range view.Entries {
			entries = append(entries, ProfileEntry{
				UUID:   entry.UUID,
				Date:   entry.Date,
				Legend: entry.Legend,
			})
		}
		ret.Entries = entries
	}

	if view.Settings.ShowReviews && view.ReviewsByEntry != nil {
		reviews := map[string][]Review{}
		for entryUUID, entryReviews := range view.ReviewsByEntry {
			reviews[entryUUID] = PresentReviews(entryReviews)
		}
		ret.Reviews = reviews
	}

	if view.Stats != nil {
		ret.Stats = &ProfileStats{
			TotalEntries:  view.Stats.TotalEntries,
			GoodDaysCount: view.Stats.GoodDaysCount,
		}
	}

	return ret
}
