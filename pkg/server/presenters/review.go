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

// Review is a result of PresentReview. CustomCategoryUUID is null for
// reviews filed under a built-in category.
type Review struct {
	UUID               string    `json:"uuid"`
	DayEntryUUID       string    `json:"day_entry_uuid"`
	Category           string    `json:"category"`
	CustomCategoryUUID *string   `json:"custom_category_uuid"`
	Content            string    `json:"content"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PresentReview presents a review
func PresentReview(review database.Review) Review {
	ret := Review{
		UUID:         review.UUID,
		DayEntryUUID: review.DayEntryUUID,
		Category:     review.Category,
		Content:      review.Content,
		CreatedAt:    FormatTS(review.CreatedAt),
		UpdatedAt:    FormatTS(review.UpdatedAt),
	}

	if review.CustomCategoryUUID != "" {
		uuid := review.CustomCategoryUUID
		ret.CustomCategoryUUID = &uuid
	}

	return ret
}

// PresentReviews presents reviews
func PresentReviews(reviews []database.Review) []Review {
	ret := []Review{}

	for _, review := range reviews {
		ret = append(ret, PresentReview(review))
	}

	return ret
}
