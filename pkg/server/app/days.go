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
	"fmt"
	"time"

	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/helpers"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

const dateFormat = "2006-01-02"

func yearBounds() (string, string) {
	lower := fmt.Sprintf("%d-01-01", database.SupportedYear)
	upper := fmt.Sprintf("%d-12-31", database.SupportedYear)

	return lower, upper
}

// validateEntryDate checks that the given date is well-formed, falls within
// the supported year, and is not in the future. The HTTP layer validates
// payloads before calling in, but the checks run here too so that direct
// callers get the same guarantees.
func (a *App) validateEntryDate(date string) error {
	parsed, err := time.Parse(dateFormat, date)
	if err != nil {
		return ErrInvalidDate
	}

	if parsed.Year() != database.SupportedYear {
		return ErrUnsupportedYear
	}

	// ISO dates compare chronologically as strings
	today := a.Clock.Now().UTC().Format(dateFormat)
	if date > today {
		return ErrFutureDate
	}

	return nil
}

func validateLegend(legend string) error {
	for _, l := range database.Legends {
		if l == legend {
			return nil
		}
	}

	return ErrInvalidLegend
}

// GetYearEntriesResult is the result of getting a year's entries
type GetYearEntriesResult struct {
	Entries []database.DayEntry
	Reviews []database.Review
}

// GetYearEntries returns all of the user's day entries for the supported
// year ordered by date, along with every review attached to them. Reviews
// are fetched in a single query keyed by the entry uuid set.
func (a *App) GetYearEntries(userID int) (GetYearEntriesResult, error) {
	lower, upper := yearBounds()

	entries := []database.DayEntry{}
	err := a.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, lower, upper).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return GetYearEntriesResult{}, pkgErrors.Wrap(err, "finding day entries")
	}

	reviews := []database.Review{}
	if len(entries) > 0 {
		uuids := make([]string, 0, len(entries))
		for _, entry := range entries {
			uuids = append(uuids, entry.UUID)
		}

		err = a.DB.
			Where("day_entry_uuid IN (?)", uuids).
			Order("created_at ASC").
			Find(&reviews).Error
		if err != nil {
			return GetYearEntriesResult{}, pkgErrors.Wrap(err, "finding reviews")
		}
	}

	return GetYearEntriesResult{Entries: entries, Reviews: reviews}, nil
}

// GetDayEntry returns the user's entry for the exact date along with its
// reviews. It returns ErrNotFound if no entry exists.
func (a *App) GetDayEntry(userID int, date string) (database.DayEntry, []database.Review, error) {
	var entry database.DayEntry
	err := a.DB.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.DayEntry{}, nil, ErrNotFound
	} else if err != nil {
		return database.DayEntry{}, nil, pkgErrors.Wrap(err, "finding day entry")
	}

	reviews := []database.Review{}
	err = a.DB.
		Where("day_entry_uuid = ?", entry.UUID).
		Order("created_at ASC").
		Find(&reviews).Error
	if err != nil {
		return database.DayEntry{}, nil, pkgErrors.Wrap(err, "finding reviews")
	}

	return entry, reviews, nil
}

// UpsertDayEntry records the legend for the given date, creating the entry
// on first submission and updating it in place on resubmission. The second
// return value reports whether a new row was created. The (user_id, date)
// uniqueness constraint is the backstop for concurrent upserts: a duplicate
// key on insert means another request won the race, and the call falls back
// to updating the surviving row.
func (a *App) UpsertDayEntry(userID int, date, legend string) (database.DayEntry, bool, error) {
	if err := a.validateEntryDate(date); err != nil {
		return database.DayEntry{}, false, err
	}
	if err := validateLegend(legend); err != nil {
		return database.DayEntry{}, false, err
	}

	var existing database.DayEntry
	err := a.DB.Where("user_id = ? AND date = ?", userID, date).First(&existing).Error
	if err == nil {
		updated, err := a.updateEntryLegend(existing, legend)
		return updated, false, err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return database.DayEntry{}, false, pkgErrors.Wrap(err, "finding day entry")
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.DayEntry{}, false, err
	}

	entry := database.DayEntry{
		UUID:   uuid,
		UserID: userID,
		Date:   date,
		Legend: legend,
	}
	err = a.DB.Create(&entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a concurrent race for the same (user, date). Update the winner.
		if err := a.DB.Where("user_id = ? AND date = ?", userID, date).First(&existing).Error; err != nil {
			return database.DayEntry{}, false, pkgErrors.Wrap(err, "finding winning day entry")
		}

		updated, err := a.updateEntryLegend(existing, legend)
		return updated, false, err
	}
	if err != nil {
		return database.DayEntry{}, false, pkgErrors.Wrap(err, "inserting day entry")
	}

	return entry, true, nil
}

// UpdateDayEntry updates the legend of an existing entry. Unlike
// UpsertDayEntry it returns ErrNotFound when no entry exists for the date.
func (a *App) UpdateDayEntry(userID int, date, legend string) (database.DayEntry, error) {
	if err := a.validateEntryDate(date); err != nil {
		return database.DayEntry{}, err
	}
	if err := validateLegend(legend); err != nil {
		return database.DayEntry{}, err
	}

	var entry database.DayEntry
	err := a.DB.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.DayEntry{}, ErrNotFound
	} else if err != nil {
		return database.DayEntry{}, pkgErrors.Wrap(err, "finding day entry")
	}

	return a.updateEntryLegend(entry, legend)
}

func (a *App) updateEntryLegend(entry database.DayEntry, legend string) (database.DayEntry, error) {
	entry.Legend = legend

	if err := a.DB.Save(&entry).Error; err != nil {
		return entry, pkgErrors.Wrap(err, "updating day entry")
	}

	return entry, nil
}

// DeleteDayEntry deletes the entry for the given date along with every
// review attached to it. The two deletes run in one transaction so that an
// abandoned request cannot leave orphaned reviews.
func (a *App) DeleteDayEntry(userID int, date string) error {
	var entry database.DayEntry
	err := a.DB.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return pkgErrors.Wrap(err, "finding day entry")
	}

	tx := a.DB.Begin()

	if err := tx.Where("day_entry_uuid = ?", entry.UUID).Delete(&database.Review{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting reviews")
	}
	if err := tx.Delete(&entry).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting day entry")
	}

	tx.Commit()

	return nil
}
