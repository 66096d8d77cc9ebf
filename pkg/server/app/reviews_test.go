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
	"testing"

	"github.com/archivist/archivist/pkg/assert"
	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestCreateReview(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	entry := testutils.SetupEntryData(db, user, "2026-05-01", database.LegendGoodDay)

	a := NewTest()
	a.DB = db

	review, err := a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID: entry.UUID,
		Category:     database.CategoryWork,
		Content:      "wrapped up the audit",
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating review"))
	}

	assert.Equal(t, review.DayEntryUUID, entry.UUID, "review parent mismatch")
	assert.Equal(t, review.Category, database.CategoryWork, "review category mismatch")
	assert.Equal(t, review.CustomCategoryUUID, "", "builtin review should have no custom category")
	assert.Equal(t, review.Content, "wrapped up the audit", "review content mismatch")
}

func TestCreateReview_Validation(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	entry := testutils.SetupEntryData(db, user, "2026-05-01", database.LegendGoodDay)

	a := NewTest()
	a.DB = db

	testCases := []struct {
		params      CreateReviewParams
		expectedErr error
	}{
		{
			params: CreateReviewParams{
				DayEntryUUID: entry.UUID,
				Category:     "HOBBIES",
				Content:      "content",
			},
			expectedErr: ErrInvalidCategory,
		},
		{
			params: CreateReviewParams{
				DayEntryUUID: entry.UUID,
				Category:     database.CategoryWork,
				Content:      "",
			},
			expectedErr: ErrReviewContentRequired,
		},
		{
			params: CreateReviewParams{
				DayEntryUUID: entry.UUID,
				Category:     database.CategoryCustom,
				Content:      "content",
			},
			expectedErr: ErrCustomCategoryRequired,
		},
	}

	for _, tc := range testCases {
		_, err := a.CreateReview(user.ID, tc.params)
		assert.Equal(t, errors.Cause(err), tc.expectedErr, "error mismatch")
	}
}

func TestCreateReview_Duplicate(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	entry := testutils.SetupEntryData(db, user, "2026-05-01", database.LegendGoodDay)

	a := NewTest()
	a.DB = db

	if _, err := a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID: entry.UUID,
		Category:     database.CategoryWork,
		Content:      "first",
	}); err != nil {
		t.Fatal(errors.Wrap(err, "creating review"))
	}

	// same entry and category is a duplicate
	_, err := a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID: entry.UUID,
		Category:     database.CategoryWork,
		Content:      "second",
	})
	assert.Equal(t, errors.Cause(err), ErrDuplicateReview, "error mismatch")

	// a different builtin category on the same entry is fine
	if _, err := a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID: entry.UUID,
		Category:     database.CategoryPersonal,
		Content:      "evening run",
	}); err != nil {
		t.Fatal(errors.Wrap(err, "creating review with another category"))
	}
}

func TestCreateReview_CustomCategories(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	anotherUser := testutils.SetupUserData(db, "another@test.com", "password123")
	entry := testutils.SetupEntryData(db, user, "2026-05-01", database.LegendGoodDay)

	a := NewTest()
	a.DB = db

	gratitude, err := a.CreateCategory(user.ID, "Gratitude", false, 1)
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating category"))
	}
	exercise, err := a.CreateCategory(user.ID, "Exercise", false, 2)
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating category"))
	}
	foreign, err := a.CreateCategory(anotherUser.ID, "Foreign", false, 1)
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating category for another user"))
	}

	if _, err := a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID:       entry.UUID,
		Category:           database.CategoryCustom,
		CustomCategoryUUID: gratitude.UUID,
		Content:            "rain on the roof",
	}); err != nil {
		t.Fatal(errors.Wrap(err, "creating custom review"))
	}

	// one CUSTOM review per distinct category, so a second category works
	if _, err := a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID:       entry.UUID,
		Category:           database.CategoryCustom,
		CustomCategoryUUID: exercise.UUID,
		Content:            "5k in the morning",
	}); err != nil {
		t.Fatal(errors.Wrap(err, "creating custom review under another category"))
	}

	// but the same category twice is a duplicate
	_, err = a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID:       entry.UUID,
		Category:           database.CategoryCustom,
		CustomCategoryUUID: gratitude.UUID,
		Content:            "again",
	})
	assert.Equal(t, errors.Cause(err), ErrDuplicateReview, "error mismatch for duplicate custom review")

	// another user's category cannot be referenced
	_, err = a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID:       entry.UUID,
		Category:           database.CategoryCustom,
		CustomCategoryUUID: foreign.UUID,
		Content:            "content",
	})
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch for foreign category")
}

func TestCreateReview_Ownership(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	anotherUser := testutils.SetupUserData(db, "another@test.com", "password123")
	entry := testutils.SetupEntryData(db, user, "2026-05-01", database.LegendGoodDay)

	a := NewTest()
	a.DB = db

	// another user's entry reads as missing
	_, err := a.CreateReview(anotherUser.ID, CreateReviewParams{
		DayEntryUUID: entry.UUID,
		Category:     database.CategoryWork,
		Content:      "content",
	})
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch for another user's entry")

	_, err = a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID: testutils.MustUUID(t),
		Category:     database.CategoryWork,
		Content:      "content",
	})
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch for missing entry")
}

func TestUpdateReview(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	anotherUser := testutils.SetupUserData(db, "another@test.com", "password123")
	entry := testutils.SetupEntryData(db, user, "2026-05-01", database.LegendGoodDay)

	a := NewTest()
	a.DB = db

	review, err := a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID: entry.UUID,
		Category:     database.CategoryWork,
		Content:      "draft",
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating review"))
	}

	updated, err := a.UpdateReview(user.ID, review.UUID, "final")
	if err != nil {
		t.Fatal(errors.Wrap(err, "updating review"))
	}
	assert.Equal(t, updated.Content, "final", "review content mismatch")
	assert.Equal(t, updated.Category, database.CategoryWork, "review category should not change")

	_, err = a.UpdateReview(user.ID, review.UUID, "")
	assert.Equal(t, errors.Cause(err), ErrReviewContentRequired, "error mismatch for empty content")

	_, err = a.UpdateReview(anotherUser.ID, review.UUID, "hijack")
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch for another user")
}

func TestDeleteReview(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "user@test.com", "password123")
	anotherUser := testutils.SetupUserData(db, "another@test.com", "password123")
	entry := testutils.SetupEntryData(db, user, "2026-05-01", database.LegendGoodDay)

	a := NewTest()
	a.DB = db

	review, err := a.CreateReview(user.ID, CreateReviewParams{
		DayEntryUUID: entry.UUID,
		Category:     database.CategoryWork,
		Content:      "content",
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating review"))
	}

	err = a.DeleteReview(anotherUser.ID, review.UUID)
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch for another user")

	if err := a.DeleteReview(user.ID, review.UUID); err != nil {
		t.Fatal(errors.Wrap(err, "deleting review"))
	}

	var count int64
	if err := db.Model(&database.Review{}).Count(&count).Error; err != nil {
		t.Fatal(errors.Wrap(err, "counting reviews"))
	}
	assert.Equal(t, count, int64(0), "review count mismatch")

	err = a.DeleteReview(user.ID, review.UUID)
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch for deleting twice")
}
