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

import "github.com/pkg/errors"

// Errors with user-facing messages. A resource that exists but belongs to
// another user reports the same ErrNotFound as one that does not exist, so
// that resource ids cannot be enumerated.
var (
	// ErrNotFound is an error for a missing or not-owned resource
	ErrNotFound = errors.New("not found")

	// ErrEmailRequired is an error for a missing email
	ErrEmailRequired = errors.New("Please enter an email")
	// ErrPasswordRequired is an error for a missing password
	ErrPasswordRequired = errors.New("Please enter a password")
	// ErrPasswordTooShort is an error for a password that is too short
	ErrPasswordTooShort = errors.New("Password should be longer than 8 characters")
	// ErrPasswordConfirmationMismatch is an error for password confirmation mismatch
	ErrPasswordConfirmationMismatch = errors.New("Password confirmation does not match")
	// ErrDuplicateEmail is an error for an email that is already registered
	ErrDuplicateEmail = errors.New("An account with this email already exists")
	// ErrLoginInvalid is an error for an invalid login attempt
	ErrLoginInvalid = errors.New("Wrong email and password combination")
	// ErrRegistrationDisabled is an error for registration on a closed server
	ErrRegistrationDisabled = errors.New("Registration is disabled")
	// ErrUserHasExistingResources is an error for removing a user that still owns journal data
	ErrUserHasExistingResources = errors.New("user still owns day entries; pass force to remove anyway")

	// ErrInvalidDate is an error for a malformed calendar date
	ErrInvalidDate = errors.New("Date must be in YYYY-MM-DD format")
	// ErrUnsupportedYear is an error for a date outside the supported journal year
	ErrUnsupportedYear = errors.New("Date must fall within the supported year")
	// ErrFutureDate is an error for a date after the current day
	ErrFutureDate = errors.New("Cannot record entries for future dates")
	// ErrInvalidLegend is an error for an unknown legend value
	ErrInvalidLegend = errors.New("Invalid legend")

	// ErrInvalidCategory is an error for an unknown review category
	ErrInvalidCategory = errors.New("Invalid review category")
	// ErrReviewContentRequired is an error for an empty review body
	ErrReviewContentRequired = errors.New("Review content is required")
	// ErrCustomCategoryRequired is an error for a CUSTOM review without a category reference
	ErrCustomCategoryRequired = errors.New("Custom category id is required when category is CUSTOM")
	// ErrDuplicateReview is an error for a second review under the same category on one day
	ErrDuplicateReview = errors.New("A review for this category already exists for this day")

	// ErrCategoryNameInvalid is an error for a category name that is empty or too long
	ErrCategoryNameInvalid = errors.New("Category name must be between 1 and 50 characters")
	// ErrCategoryOrderInvalid is an error for an order outside the 1..3 range
	ErrCategoryOrderInvalid = errors.New("Order must be between 1 and 3")
	// ErrCategoryLimit is an error for exceeding the custom category cap
	ErrCategoryLimit = errors.New("Maximum of 3 custom categories allowed")
	// ErrCategoryOrderTaken is an error for a second category in an occupied order slot
	ErrCategoryOrderTaken = errors.New("This order is already taken")

	// ErrInvalidSlug is an error for a malformed public slug
	ErrInvalidSlug = errors.New("Public slug must be 3-50 characters of lowercase letters, numbers, and hyphens")
	// ErrSlugTaken is an error for a public slug owned by another user
	ErrSlugTaken = errors.New("This public slug is already taken")

	// ErrInvalidToken is an error for an unknown or spent password reset token
	ErrInvalidToken = errors.New("This password reset link is invalid or has been used")
	// ErrPasswordResetTokenExpired is an error for a password reset token past its window
	ErrPasswordResetTokenExpired = errors.New("This password reset link has expired")
	// ErrInvalidSMTPConfig is an error for missing SMTP configuration
	ErrInvalidSMTPConfig = errors.New("SMTP is not configured")
)
