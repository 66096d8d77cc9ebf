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
	"fmt"
	"testing"
	"time"

	"github.com/archivist/archivist/pkg/assert"
	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/testutils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func TestUpsertDayEntry(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")

	a := NewTest()
	a.DB = db

	entry, created, err := a.UpsertDayEntry(user.ID, "2026-03-01", database.LegendGoodDay)
	if err != nil {
		t.Fatal(errors.Wrap(err, "upserting day entry"))
	}

	assert.Equal(t, created, true, "first upsert should create")
	assert.Equal(t, entry.Date, "2026-03-01", "entry date mismatch")
	assert.Equal(t, entry.Legend, database.LegendGoodDay, "entry legend mismatch")
	assert.NotEqual(t, entry.UUID, "", "entry uuid should have been generated")

	// Upserting the same date again overwrites the legend in place
	updated, created, err := a.UpsertDayEntry(user.ID, "2026-03-01", database.LegendBadDay)
	if err != nil {
		t.Fatal(errors.Wrap(err, "upserting day entry again"))
	}

	assert.Equal(t, created, false, "second upsert should update")
	assert.Equal(t, updated.UUID, entry.UUID, "entry identity should be stable across upserts")
	assert.Equal(t, updated.Legend, database.LegendBadDay, "entry legend should have been overwritten")

	var entryCount int64
	if err := db.Model(&database.DayEntry{}).Count(&entryCount).Error; err != nil {
		t.Fatal(errors.Wrap(err, "counting entries"))
	}
	assert.Equal(t, entryCount, int64(1), "entry count mismatch")
}

func TestUpsertDayEntry_ConcurrentCreate(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")

	a := NewTest()
	a.DB = db

	// Sneak a competing row in between the existence check and the insert,
	// as a concurrent request for the same (user, date) would.
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("day_entry_race", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "day_entries" {
			return
		}
		raced = true

		now := time.Now()
		if _, err := tx.Statement.ConnPool.ExecContext(
			tx.Statement.Context,
			"INSERT INTO day_entries (uuid, user_id, date, legend, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			"winner-uuid", user.ID, "2026-03-01", database.LegendBadDay, now, now,
		); err != nil {
			t.Error(errors.Wrap(err, "inserting competing entry"))
		}
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "registering callback"))
	}
	defer db.Callback().Create().Remove("day_entry_race")

	entry, created, err := a.UpsertDayEntry(user.ID, "2026-03-01", database.LegendGoodDay)
	if err != nil {
		t.Fatal(errors.Wrap(err, "upserting day entry"))
	}

	assert.Equal(t, raced, true, "competing insert should have run")
	assert.Equal(t, created, false, "losing upsert should fall back to update")
	assert.Equal(t, entry.UUID, "winner-uuid", "surviving row identity mismatch")
	assert.Equal(t, entry.Legend, database.LegendGoodDay, "surviving row should carry the losing upsert's legend")

	var entryCount int64
	if err := db.Model(&database.DayEntry{}).Where("user_id = ? AND date = ?", user.ID, "2026-03-01").Count(&entryCount).Error; err != nil {
		t.Fatal(errors.Wrap(err, "counting entries"))
	}
	assert.Equal(t, entryCount, int64(1), "exactly one row should survive")
}

func TestUpsertDayEntry_InvalidDates(t *testing.T) {
	testCases := []struct {
		date        string
		legend      string
		expectedErr error
	}{
		{
			date:        "03/01/2026",
			legend:      database.LegendNeutral,
			expectedErr: ErrInvalidDate,
		},
		{
			date:        "2026-3-1",
			legend:      database.LegendNeutral,
			expectedErr: ErrInvalidDate,
		},
		{
			date:        "2025-12-31",
			legend:      database.LegendNeutral,
			expectedErr: ErrUnsupportedYear,
		},
		{
			date:        "2027-01-01",
			legend:      database.LegendNeutral,
			expectedErr: ErrUnsupportedYear,
		},
		{
			// the mock clock is fixed at 2026-06-15
			date:        "2026-06-16",
			legend:      database.LegendNeutral,
			expectedErr: ErrFutureDate,
		},
		{
			date:        "2026-03-01",
			legend:      "AMAZING_DAY",
			expectedErr: ErrInvalidLegend,
		},
	}

	for idx, tc := range testCases {
		func() {
			db := testutils.InitMemoryDB(t)
			user := testutils.SetupUserData(db, "user@test.com", "password123")

			a := NewTest()
			a.DB = db

			_, _, err := a.UpsertDayEntry(user.ID, tc.date, tc.legend)
			assert.Equal(t, errors.Cause(err), tc.expectedErr, fmt.Sprintf("error mismatch for test case %d", idx))
		}()
	}
}

func TestUpsertDayEntry_Today(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "user@test.com", "password123")

	a := NewTest()
	a.DB = db

	// the current day is never a future date
	_, created, err := a.UpsertDayEntry(user.ID, "2026-06-15", database.LegendCoreMemory)
	if err != nil {
		t.Fatal(errors.Wrap(err, "upserting entry for today"))
	}
	assert.Equal(t, created, true, "entry for today should have been created")
}

func TestGetYearEntries(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	anotherUser := testutils.SetupUserData(db, "another@test.com", "password123")

	// insert out of order to exercise the date ordering
	e2 := testutils.SetupEntryData(db, user, "2026-02-10", database.LegendNeutral)
	e1 := testutils.SetupEntryData(db, user, "2026-01-05", database.LegendGoodDay)
	e3 := testutils.SetupEntryData(db, user, "2026-03-20", database.LegendNightmare)
	testutils.SetupEntryData(db, anotherUser, "2026-01-05", database.LegendBadDay)

	review := database.Review{
		UUID:         testutils.MustUUID(t),
		DayEntryUUID: e2.UUID,
		Category:     database.CategoryWork,
		Content:      "shipped the release",
	}
	testutils.MustExec(t, db.Save(&review), "preparing review")

	a := NewTest()
	a.DB = db

	result, err := a.GetYearEntries(user.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting year entries"))
	}

	assert.Equal(t, len(result.Entries), 3, "entry count mismatch")
	assert.Equal(t, result.Entries[0].UUID, e1.UUID, "entries should be ordered by date")
	assert.Equal(t, result.Entries[1].UUID, e2.UUID, "entries should be ordered by date")
	assert.Equal(t, result.Entries[2].UUID, e3.UUID, "entries should be ordered by date")

	assert.Equal(t, len(result.Reviews), 1, "review count mismatch")
	assert.Equal(t, result.Reviews[0].DayEntryUUID, e2.UUID, "review parent mismatch")
}

func TestGetDayEntry(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	anotherUser := testutils.SetupUserData(db, "another@test.com", "password123")
	entry := testutils.SetupEntryData(db, user, "2026-04-01", database.LegendGoodDay)

	a := NewTest()
	a.DB = db

	got, reviews, err := a.GetDayEntry(user.ID, "2026-04-01")
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting day entry"))
	}
	assert.Equal(t, got.UUID, entry.UUID, "entry uuid mismatch")
	assert.Equal(t, len(reviews), 0, "review count mismatch")

	// missing date
	_, _, err = a.GetDayEntry(user.ID, "2026-04-02")
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch for missing date")

	// another user's date is indistinguishable from a missing one
	_, _, err = a.GetDayEntry(anotherUser.ID, "2026-04-01")
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch for another user's date")
}

func TestUpdateDayEntry(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	entry := testutils.SetupEntryData(db, user, "2026-04-01", database.LegendGoodDay)

	a := NewTest()
	a.DB = db

	updated, err := a.UpdateDayEntry(user.ID, "2026-04-01", database.LegendCoreMemory)
	if err != nil {
		t.Fatal(errors.Wrap(err, "updating day entry"))
	}
	assert.Equal(t, updated.UUID, entry.UUID, "entry uuid mismatch")
	assert.Equal(t, updated.Legend, database.LegendCoreMemory, "entry legend mismatch")

	// updating a missing entry does not create one
	_, err = a.UpdateDayEntry(user.ID, "2026-04-02", database.LegendNeutral)
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch for missing entry")

	var entryCount int64
	if err := db.Model(&database.DayEntry{}).Count(&entryCount).Error; err != nil {
		t.Fatal(errors.Wrap(err, "counting entries"))
	}
	assert.Equal(t, entryCount, int64(1), "entry count mismatch")
}

func TestDeleteDayEntry(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	entry := testutils.SetupEntryData(db, user, "2026-04-01", database.LegendGoodDay)
	keep := testutils.SetupEntryData(db, user, "2026-04-02", database.LegendNeutral)

	review := database.Review{
		UUID:         testutils.MustUUID(t),
		DayEntryUUID: entry.UUID,
		Category:     database.CategoryPersonal,
		Content:      "long walk",
	}
	testutils.MustExec(t, db.Save(&review), "preparing review")
	keepReview := database.Review{
		UUID:         testutils.MustUUID(t),
		DayEntryUUID: keep.UUID,
		Category:     database.CategoryPersonal,
		Content:      "quiet evening",
	}
	testutils.MustExec(t, db.Save(&keepReview), "preparing review")

	a := NewTest()
	a.DB = db

	if err := a.DeleteDayEntry(user.ID, "2026-04-01"); err != nil {
		t.Fatal(errors.Wrap(err, "deleting day entry"))
	}

	var entryCount, reviewCount int64
	if err := db.Model(&database.DayEntry{}).Count(&entryCount).Error; err != nil {
		t.Fatal(errors.Wrap(err, "counting entries"))
	}
	if err := db.Model(&database.Review{}).Count(&reviewCount).Error; err != nil {
		t.Fatal(errors.Wrap(err, "counting reviews"))
	}

	assert.Equal(t, entryCount, int64(1), "entry count mismatch")
	assert.Equal(t, reviewCount, int64(1), "reviews of the deleted entry should be gone")

	var remaining database.Review
	if err := db.First(&remaining).Error; err != nil {
		t.Fatal(errors.Wrap(err, "finding remaining review"))
	}
	assert.Equal(t, remaining.UUID, keepReview.UUID, "remaining review mismatch")

	err := a.DeleteDayEntry(user.ID, "2026-04-01")
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch for deleting twice")
}
