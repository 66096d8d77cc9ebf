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

// DayEntry is a result of PresentDayEntry
type DayEntry struct {
	UUID      string    `json:"uuid"`
	Date      string    `json:"date"`
	Legend    string    `json:"legend"`
	Reviews   []Review  `json:"reviews"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PresentDayEntry presents a day entry with its reviews
func PresentDayEntry(entry database.DayEntry, reviews []database.Review) DayEntry {
	return DayEntry{
		UUID:      entry.UUID,
		Date:      entry.Date,
		Legend:    entry.Legend,
		Reviews:   PresentReviews(reviews),
		CreatedAt: FormatTS(entry.CreatedAt),
		UpdatedAt: FormatTS(entry.UpdatedAt),
	}
}

// PresentDayEntries presents day entries, attaching each entry's reviews
// from the given flat review list
func PresentDayEntries(entries []database.DayEntry, reviews []database.Review) []DayEntry {
	byEntry := map[string][]database.Review{}
	for _, review := range reviews {
		byEntry[review.DayEntryUUID] = append(byEntry[review.DayEntryUUID], review)
	}

	ret := []DayEntry{}
	for _, entry := range entries {
		ret = append(ret, PresentDayEntry(entry, byEntry[entry.UUID]))
	}

	return ret
}
