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

	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/helpers"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

func validateCategory(category string) error {
	for _, c := range database.Categories {
		if c == category {
			return nil
		}
	}

	return ErrInvalidCategory
}

// CreateReviewParams is the parameters for creating a review
type CreateReviewParams struct {
	DayEntryUUID       string
	Category           string
	CustomCategoryUUID string
	Content            string
}

// CreateReview attaches a review to the user's day entry under the given
// category. The parent entry and, for CUSTOM reviews, the referenced
// category must belong to the user; otherwise the call reports ErrNotFound
// without revealing whether the resource exists. At most one review may
// exist per entry and category; CUSTOM reviews are scoped further by the
// custom category, so one review per distinct custom category is allowed on
// the same day. The composite uniqueness index backstops the duplicate
// check against concurrent creates.
func (a *App) CreateReview(userID int, p CreateReviewParams) (database.Review, error) {
	if err := validateCategory(p.Category); err != nil {
		return database.Review{}, err
	}
	if p.Content == "" {
		return database.Review{}, ErrReviewContentRequired
	}

	customUUID := ""
	if p.Category == database.CategoryCustom {
		if p.CustomCategoryUUID == "" {
			return database.Review{}, ErrCustomCategoryRequired
		}
		customUUID = p.CustomCategoryUUID
	}

	var entry database.DayEntry
	err := a.DB.Where("uuid = ? AND user_id = ?", p.DayEntryUUID, userID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Review{}, ErrNotFound
	} else if err != nil {
		return database.Review{}, pkgErrors.Wrap(err, "finding day entry")
	}

	if customUUID != "" {
		var category database.CustomCategory
		err := a.DB.Where("uuid = ? AND user_id = ?", customUUID, userID).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.Review{}, ErrNotFound
		} else if err != nil {
			return database.Review{}, pkgErrors.Wrap(err, "finding custom category")
		}
	}

	var count int64
	err = a.DB.Model(&database.Review{}).
		Where("day_entry_uuid = ? AND category = ? AND custom_category_uuid = ?", entry.UUID, p.Category, customUUID).
		Count(&count).Error
	if err != nil {
		return database.Review{}, pkgErrors.Wrap(err, "counting existing reviews")
	}
	if count > 0 {
		return database.Review{}, ErrDuplicateReview
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Review{}, err
	}

	review := database.Review{
		UUID:               uuid,
		DayEntryUUID:       entry.UUID,
		Category:           p.Category,
		CustomCategoryUUID: customUUID,
		Content:            p.Content,
	}
	err = a.DB.Create(&review).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return database.Review{}, ErrDuplicateReview
	}
	if err != nil {
		return database.Review{}, pkgErrors.Wrap(err, "inserting review")
	}

	return review, nil
}

// getUserReview resolves a review to its owner by joining through the
// parent day entry, which is the single source of truth for ownership.
func (a *App) getUserReview(userID int, reviewUUID string) (database.Review, error) {
	var review database.Review
	err := a.DB.
		Joins("INNER JOIN day_entries ON day_entries.uuid = reviews.day_entry_uuid").
		Where("reviews.uuid = ? AND day_entries.user_id = ?", reviewUUID, userID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Review{}, ErrNotFound
	} else if err != nil {
		return database.Review{}, pkgErrors.Wrap(err, "finding review")
	}

	return review, nil
}

// UpdateReview replaces the content of the user's review
func (a *App) UpdateReview(userID int, reviewUUID, content string) (database.Review, error) {
	if content == "" {
		return database.Review{}, ErrReviewContentRequired
	}

	review, err := a.getUserReview(userID, reviewUUID)
	if err != nil {
		return database.Review{}, err
	}

	review.Content = content
	if err := a.DB.Save(&review).Error; err != nil {
		return review, pkgErrors.Wrap(err, "updating review")
	}

	return review, nil
}

// DeleteReview deletes the user's review
func (a *App) DeleteReview(userID int, reviewUUID string) error {
	review, err := a.getUserReview(userID, reviewUUID)
	if err != nil {
		return err
	}

	if err := a.DB.Delete(&review).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting review")
	}

	return nil
}
