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

// GetCategories returns the user's custom categories ordered by slot
func (a *App) GetCategories(userID int) ([]database.CustomCategory, error) {
	categories := []database.CustomCategory{}
	err := a.DB.
		Where("user_id = ?", userID).
		Order("slot ASC").
		Find(&categories).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding categories")
	}

	return categories, nil
}

func validateCategoryName(name string) error {
	if len(name) < 1 || len(name) > 50 {
		return ErrCategoryNameInvalid
	}

	return nil
}

// CreateCategory creates a custom category in the given order slot. It fails
// with ErrCategoryLimit once the user owns the maximum number of categories
// and with ErrCategoryOrderTaken when the slot is occupied. The
// (user_id, slot) uniqueness constraint backstops the latter check against
// concurrent creates.
func (a *App) CreateCategory(userID int, name string, isRequired bool, order int) (database.CustomCategory, error) {
	if err := validateCategoryName(name); err != nil {
		return database.CustomCategory{}, err
	}
	if order < 1 || order > database.MaxCustomCategories {
		return database.CustomCategory{}, ErrCategoryOrderInvalid
	}

	var count int64
	if err := a.DB.Model(&database.CustomCategory{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return database.CustomCategory{}, pkgErrors.Wrap(err, "counting categories")
	}
	if count >= database.MaxCustomCategories {
		return database.CustomCategory{}, ErrCategoryLimit
	}

	var existing database.CustomCategory
	err := a.DB.Where("user_id = ? AND slot = ?", userID, order).First(&existing).Error
	if err == nil {
		return database.CustomCategory{}, ErrCategoryOrderTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return database.CustomCategory{}, pkgErrors.Wrap(err, "checking order slot")
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.CustomCategory{}, err
	}

	category := database.CustomCategory{
		UUID:       uuid,
		UserID:     userID,
		Name:       name,
		IsRequired: isRequired,
		Slot:       order,
	}
	err = a.DB.Create(&category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return database.CustomCategory{}, ErrCategoryOrderTaken
	}
	if err != nil {
		return database.CustomCategory{}, pkgErrors.Wrap(err, "inserting category")
	}

	return category, nil
}

// UpdateCategoryParams is the parameters for updating a custom category.
// The order slot is immutable after creation and deliberately absent.
type UpdateCategoryParams struct {
	Name       *string
	IsRequired *bool
}

// UpdateCategory updates the name or required flag of the user's category
func (a *App) UpdateCategory(userID int, uuid string, p UpdateCategoryParams) (database.CustomCategory, error) {
	if p.Name != nil {
		if err := validateCategoryName(*p.Name); err != nil {
			return database.CustomCategory{}, err
		}
	}

	var category database.CustomCategory
	err := a.DB.Where("user_id = ? AND uuid = ?", userID, uuid).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.CustomCategory{}, ErrNotFound
	} else if err != nil {
		return database.CustomCategory{}, pkgErrors.Wrap(err, "finding category")
	}

	if p.Name != nil {
		category.Name = *p.Name
	}
	if p.IsRequired != nil {
		category.IsRequired = *p.IsRequired
	}

	if err := a.DB.Save(&category).Error; err != nil {
		return category, pkgErrors.Wrap(err, "updating category")
	}

	return category, nil
}

// DeleteCategory deletes the user's category along with every review filed
// under it, in one transaction.
func (a *App) DeleteCategory(userID int, uuid string) error {
	var category database.CustomCategory
	err := a.DB.Where("user_id = ? AND uuid = ?", userID, uuid).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return pkgErrors.Wrap(err, "finding category")
	}

	tx := a.DB.Begin()

	if err := tx.Where("custom_category_uuid = ?", category.UUID).Delete(&database.Review{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting reviews")
	}
	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting category")
	}

	tx.Commit()

	return nil
}
