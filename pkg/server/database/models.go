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

package database

import (
	"time"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// User is a model for a user
type User struct {
	Model
	UUID        string     `json:"uuid" gorm:"uniqueIndex;type:text"`
	Email       NullString `json:"email" gorm:"uniqueIndex"`
	Password    NullString `json:"-"`
	Name        string     `json:"name"`
	AvatarURL   NullString `json:"avatar_url"`
	LastLoginAt *time.Time `json:"-"`
}

// Session represents a user session
type Session struct {
	Model
	UserID     int    `gorm:"index"`
	Key        string `gorm:"index"`
	LastUsedAt time.Time
	ExpiresAt  time.Time
}

// Token is a model for a single-use token
type Token struct {
	Model
	UserID int    `gorm:"index"`
	Value  string `gorm:"index"`
	Type   string
	UsedAt *time.Time
}

// DayEntry is a model for a user's mood record for one calendar date.
// The (user_id, date) pair is unique: a user holds at most one entry per day.
type DayEntry struct {
	Model
	UUID    string   `json:"uuid" gorm:"uniqueIndex;type:text"`
	UserID  int      `json:"user_id" gorm:"index;uniqueIndex:day_entries_user_date_idx"`
	Date    string   `json:"date" gorm:"index;uniqueIndex:day_entries_user_date_idx;type:text"`
	Legend  string   `json:"legend"`
	Reviews []Review `json:"reviews" gorm:"foreignKey:DayEntryUUID;references:UUID;constraint:OnDelete:CASCADE"`
}

// CustomCategory is a model for a user-defined review category. Each user
// holds at most one category per display slot.
type CustomCategory struct {
	Model
	UUID       string `json:"uuid" gorm:"uniqueIndex;type:text"`
	UserID     int    `json:"user_id" gorm:"index;uniqueIndex:custom_categories_user_slot_idx"`
	Name       string `json:"name"`
	IsRequired bool   `json:"is_required" gorm:"default:false"`
	Slot       int    `json:"slot" gorm:"uniqueIndex:custom_categories_user_slot_idx"`
}

// Review is a model for a free-text reflection attached to a day entry.
// It carries no user_id column: ownership is resolved by joining through
// the parent day entry. CustomCategoryUUID is the empty string for built-in
// categories so that the composite unique index holds without NULLs.
type Review struct {
	Model
	UUID               string `json:"uuid" gorm:"uniqueIndex;type:text"`
	DayEntryUUID       string `json:"day_entry_uuid" gorm:"index;uniqueIndex:reviews_entry_category_idx;type:text"`
	Category           string `json:"category" gorm:"uniqueIndex:reviews_entry_category_idx"`
	CustomCategoryUUID string `json:"custom_category_uuid" gorm:"uniqueIndex:reviews_entry_category_idx;type:text;default:''"`
	Content            string `json:"content"`
}

// ProfileSettings is a model for a user's public profile configuration.
// A row is created lazily on first access, one per user.
type ProfileSettings struct {
	Model
	UUID        string     `json:"uuid" gorm:"uniqueIndex;type:text"`
	UserID      int        `json:"user_id" gorm:"uniqueIndex"`
	IsPublic    bool       `json:"is_public" gorm:"default:false"`
	ShowMoods   bool       `json:"show_moods" gorm:"default:true"`
	ShowReviews bool       `json:"show_reviews" gorm:"default:false"`
	ShowStats   bool       `json:"show_stats" gorm:"default:true"`
	PublicSlug  NullString `json:"public_slug" gorm:"uniqueIndex"`
}
