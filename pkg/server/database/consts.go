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

// SupportedYear is the single calendar year the journal covers
const SupportedYear = 2026

const (
	// TokenTypeResetPassword is a type of a token for resetting password
	TokenTypeResetPassword = "reset_password"
)

const (
	// LegendCoreMemory marks a day worth keeping forever
	LegendCoreMemory = "CORE_MEMORY"
	// LegendGoodDay marks a good day
	LegendGoodDay = "GOOD_DAY"
	// LegendNeutral marks an unremarkable day
	LegendNeutral = "NEUTRAL"
	// LegendBadDay marks a bad day
	LegendBadDay = "BAD_DAY"
	// LegendNightmare marks a day to forget
	LegendNightmare = "NIGHTMARE"
)

const (
	// CategoryWork is the built-in review category for work
	CategoryWork = "WORK"
	// CategoryPersonal is the built-in review category for personal life
	CategoryPersonal = "PERSONAL"
	// CategoryLearning is the built-in review category for learning
	CategoryLearning = "LEARNING"
	// CategoryCustom marks a review filed under a user-defined category
	CategoryCustom = "CUSTOM"
)

// Legends enumerates the valid legend values, ordered by valence
var Legends = []string{
	LegendCoreMemory,
	LegendGoodDay,
	LegendNeutral,
	LegendBadDay,
	LegendNightmare,
}

// Categories enumerates the valid review category values
var Categories = []string{
	CategoryWork,
	CategoryPersonal,
	CategoryLearning,
	CategoryCustom,
}

// MaxCustomCategories is the cap on user-defined categories per user
const MaxCustomCategories = 3
