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

package app

import (
	"errors"
	"regexp"
	"strings"

	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/helpers"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

var slugRegexp = regexp.MustCompile("^[a-z0-9-]+$")
var slugCharRegexp = regexp.MustCompile("[^a-z0-9-]")

func validateSlug(slug string) error {
	if len(slug) < 3 || len(slug) > 50 || !slugRegexp.MatchString(slug) {
		return ErrInvalidSlug
	}

	return nil
}

// defaultSlug derives a slug from the email's local part by lowercasing it
// and replacing every character outside [a-z0-9-] with a hyphen. It returns
// an invalid NullString when no email is available. Two users sharing a
// local part will collide on the slug's uniqueness constraint; the second
// lazy-create surfaces that as a conflict rather than retrying.
func defaultSlug(email database.NullString) database.NullString {
	if !email.Valid || email.String == "" {
		return database.NullString{}
	}

	localPart := strings.Split(email.String, "@")[0]
	if localPart == "" {
		return database.ToNullString("user")
	}

	slug := slugCharRegexp.ReplaceAllString(strings.ToLower(localPart), "-")

	return database.ToNullString(slug)
}

func defaultSettings(user database.User) (database.ProfileSettings, error) {
	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.ProfileSettings{}, err
	}

	return database.ProfileSettings{
		UUID:        uuid,
		UserID:      user.ID,
		IsPublic:    false,
		ShowMoods:   true,
		ShowReviews: false,
		ShowStats:   true,
		PublicSlug:  defaultSlug(user.Email),
	}, nil
}

// GetOrCreateProfileSettings returns the user's profile settings, creating
// a row with defaults on first access. The unique(user_id) constraint makes
// the lazy create race-tolerant: when a concurrent request inserts first,
// the loser re-reads and returns the winning row.
func (a *App) GetOrCreateProfileSettings(user database.User) (database.ProfileSettings, error) {
	var settings database.ProfileSettings
	err := a.DB.Where("user_id = ?", user.ID).First(&settings).Error
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return database.ProfileSettings{}, pkgErrors.Wrap(err, "finding profile settings")
	}

	settings, err = defaultSettings(user)
	if err != nil {
		return database.ProfileSettings{}, err
	}

	err = a.DB.Create(&settings).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var winner database.ProfileSettings
		if err := a.DB.Where("user_id = ?", user.ID).First(&winner).Error; err == nil {
			return winner, nil
		}

		// The duplicate was the slug, not the user id: another user's
		// default slug got there first.
		return database.ProfileSettings{}, ErrSlugTaken
	}
	if err != nil {
		return database.ProfileSettings{}, pkgErrors.Wrap(err, "inserting profile settings")
	}

	return settings, nil
}

// UpdateSettingsParams is the parameters for a partial settings update.
// Nil fields are left untouched. PublicSlug distinguishes an absent field
// (nil pointer) from an explicit null (pointer to an invalid NullString),
// which clears the slug.
type UpdateSettingsParams struct {
	IsPublic    *bool
	ShowMoods   *bool
	ShowReviews *bool
	ShowStats   *bool
	PublicSlug  *database.NullString
}

// UpdateProfileSettings applies the provided fields to the user's settings,
// lazily creating them first when none exist. A non-blank slug must be
// well-formed and not owned by another user; the slug's uniqueness
// constraint backstops the pre-check, so a write-time violation surfaces as
// the same ErrSlugTaken.
func (a *App) UpdateProfileSettings(user database.User, p UpdateSettingsParams) (database.ProfileSettings, error) {
	if p.PublicSlug != nil && p.PublicSlug.Valid && p.PublicSlug.String != "" {
		slug := p.PublicSlug.String
		if err := validateSlug(slug); err != nil {
			return database.ProfileSettings{}, err
		}

		var existing database.ProfileSettings
		err := a.DB.Where("public_slug = ?", slug).First(&existing).Error
		if err == nil && existing.UserID != user.ID {
			return database.ProfileSettings{}, ErrSlugTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return database.ProfileSettings{}, pkgErrors.Wrap(err, "checking slug")
		}
	}

	settings, err := a.GetOrCreateProfileSettings(user)
	if err != nil {
		return database.ProfileSettings{}, err
	}

	if p.IsPublic != nil {
		settings.IsPublic = *p.IsPublic
	}
	if p.ShowMoods != nil {
		settings.ShowMoods = *p.ShowMoods
	}
	if p.ShowReviews != nil {
		settings.ShowReviews = *p.ShowReviews
	}
	if p.ShowStats != nil {
		settings.ShowStats = *p.ShowStats
	}
	if p.PublicSlug != nil {
		if p.PublicSlug.Valid && p.PublicSlug.String == "" {
			settings.PublicSlug = database.NullString{}
		} else {
			settings.PublicSlug = *p.PublicSlug
		}
	}

	err = a.DB.Save(&settings).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return database.ProfileSettings{}, ErrSlugTaken
	}
	if err != nil {
		return database.ProfileSettings{}, pkgErrors.Wrap(err, "updating profile settings")
	}

	return settings, nil
}

// ResolvePublicSlug resolves a stored slug to its user
func (a *App) ResolvePublicSlug(slug string) (database.User, error) {
	var settings database.ProfileSettings
	err := a.DB.Where("public_slug = ?", slug).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrNotFound
	} else if err != nil {
		return database.User{}, pkgErrors.Wrap(err, "finding settings by slug")
	}

	var user database.User
	if err := a.DB.Where("id = ?", settings.UserID).First(&user).Error; err != nil {
		return database.User{}, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// ResolvePublicIdentity resolves a path identifier that may be either a
// slug or a raw user id. Slug lookup wins; when no slug matches, the
// identifier is treated as a user id.
func (a *App) ResolvePublicIdentity(identifier string) (database.User, error) {
	user, err := a.ResolvePublicSlug(identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return database.User{}, err
	}

	err = a.DB.Where("uuid = ?", identifier).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrNotFound
	} else if err != nil {
		return database.User{}, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// ProfileStats is the aggregate counts of a public profile
type ProfileStats struct {
	TotalEntries  int
	GoodDaysCount int
}

// ProfileView is the gated projection of a user's year
type ProfileView struct {
	User           database.User
	Settings       database.ProfileSettings
	Entries        []database.DayEntry
	ReviewsByEntry map[string][]database.Review
	Stats          *ProfileStats
}

// GetPublicProfile computes the public view of the target user's year.
// A private or missing profile reports the same ErrNotFound, so that the
// existence of private profiles cannot be probed. Each visibility flag
// independently gates its own field; when every flag is off, no entries are
// fetched at all.
func (a *App) GetPublicProfile(targetUserID int) (ProfileView, error) {
	var settings database.ProfileSettings
	err := a.DB.Where("user_id = ?", targetUserID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ProfileView{}, ErrNotFound
	} else if err != nil {
		return ProfileView{}, pkgErrors.Wrap(err, "finding profile settings")
	}
	if !settings.IsPublic {
		return ProfileView{}, ErrNotFound
	}

	var user database.User
	err = a.DB.Where("id = ?", targetUserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ProfileView{}, ErrNotFound
	} else if err != nil {
		return ProfileView{}, pkgErrors.Wrap(err, "finding user")
	}

	view := ProfileView{
		User:     user,
		Settings: settings,
	}

	if !settings.ShowMoods && !settings.ShowReviews && !settings.ShowStats {
		return view, nil
	}

	lower, upper := yearBounds()
	entries := []database.DayEntry{}
	err = a.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", targetUserID, lower, upper).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return ProfileView{}, pkgErrors.Wrap(err, "finding day entries")
	}

	if settings.ShowMoods {
		view.Entries = entries
	}

	if settings.ShowReviews && len(entries) > 0 {
		uuids := make([]string, 0, len(entries))
		for _, entry := range entries {
			uuids = append(uuids, entry.UUID)
		}

		reviews := []database.Review{}
		err = a.DB.Where("day_entry_uuid IN (?)", uuids).Order("created_at ASC").Find(&reviews).Error
		if err != nil {
			return ProfileView{}, pkgErrors.Wrap(err, "finding reviews")
		}

		grouped := map[string][]database.Review{}
		for _, review := range reviews {
			grouped[review.DayEntryUUID] = append(grouped[review.DayEntryUUID], review)
		}

		view.ReviewsByEntry = grouped
	}

	if settings.ShowStats {
		stats := ProfileStats{TotalEntries: len(entries)}
		for _, entry := range entries {
			if entry.Legend == database.LegendGoodDay || entry.Legend == database.LegendCoreMemory {
				stats.GoodDaysCount++
			}
		}

		view.Stats = &stats
	}

	return view, nil
}
