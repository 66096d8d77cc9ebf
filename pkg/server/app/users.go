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
	"time"

	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/helpers"
	"github.com/archivist/archivist/pkg/server/log"
	"github.com/archivist/archivist/pkg/server/token"
	pkgErrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// resetTokenWindow is how long a password reset token stays valid
var resetTokenWindow = 10 * time.Minute

// TouchLastLoginAt updates the last login timestamp
func (a *App) TouchLastLoginAt(user database.User, tx *gorm.DB) error {
	t := a.Clock.Now()
	if err := tx.Model(&user).Update("last_login_at", &t).Error; err != nil {
		return pkgErrors.Wrap(err, "updating last_login_at")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	return nil
}

// CreateUser creates a user
func (a *App) CreateUser(email, password, passwordConfirmation string) (database.User, error) {
	if a.DisableRegistration {
		return database.User{}, ErrRegistrationDisabled
	}
	if email == "" {
		return database.User{}, ErrEmailRequired
	}
	if err := validatePassword(password); err != nil {
		return database.User{}, err
	}
	if password != passwordConfirmation {
		return database.User{}, ErrPasswordConfirmationMismatch
	}

	var count int64
	if err := a.DB.Model(database.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return database.User{}, pkgErrors.Wrap(err, "counting user")
	}
	if count > 0 {
		return database.User{}, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return database.User{}, pkgErrors.Wrap(err, "hashing password")
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.User{}, err
	}

	user := database.User{
		UUID:     uuid,
		Email:    database.ToNullString(email),
		Password: database.ToNullString(string(hashedPassword)),
	}

	tx := a.DB.Begin()
	if err = tx.Save(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return database.User{}, ErrDuplicateEmail
		}
		return database.User{}, pkgErrors.Wrap(err, "saving user")
	}
	if err := a.TouchLastLoginAt(user, tx); err != nil {
		tx.Rollback()
		return database.User{}, pkgErrors.Wrap(err, "updating last login")
	}
	tx.Commit()

	return user, nil
}

// GetUserByEmail finds a user by email
func (a *App) GetUserByEmail(email string) (database.User, error) {
	var user database.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrNotFound
	} else if err != nil {
		return database.User{}, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// Authenticate authenticates a user
func (a *App) Authenticate(email, password string) (*database.User, error) {
	user, err := a.GetUserByEmail(email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrLoginInvalid
	} else if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password.String), []byte(password))
	if err != nil {
		return nil, ErrLoginInvalid
	}

	return &user, nil
}

// SignIn signs in a user
func (a *App) SignIn(user *database.User) (*database.Session, error) {
	err := a.TouchLastLoginAt(*user, a.DB)
	if err != nil {
		log.ErrorWrap(err, "touching login timestamp")
	}

	session, err := a.CreateSession(user.ID)
	if err != nil {
		return nil, pkgErrors.Wrap(err, "creating session")
	}

	return &session, nil
}

// RemoveUser deletes the user with the given email along with every row the
// user owns. A user that still holds day entries is not removed unless force
// is set.
func (a *App) RemoveUser(email string, force bool) error {
	user, err := a.GetUserByEmail(email)
	if err != nil {
		return err
	}

	var entryCount int64
	if err := a.DB.Model(database.DayEntry{}).Where("user_id = ?", user.ID).Count(&entryCount).Error; err != nil {
		return pkgErrors.Wrap(err, "counting day entries")
	}
	if entryCount > 0 && !force {
		return ErrUserHasExistingResources
	}

	tx := a.DB.Begin()
	err = tx.
		Where("day_entry_uuid IN (?)", tx.Model(database.DayEntry{}).Select("uuid").Where("user_id = ?", user.ID)).
		Delete(&database.Review{}).Error
	if err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting reviews")
	}
	for _, model := range []interface{}{
		&database.DayEntry{},
		&database.CustomCategory{},
		&database.ProfileSettings{},
		&database.Session{},
		&database.Token{},
	} {
		if err := tx.Where("user_id = ?", user.ID).Delete(model).Error; err != nil {
			tx.Rollback()
			return pkgErrors.Wrap(err, "deleting user resources")
		}
	}
	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user")
	}
	tx.Commit()

	return nil
}

// UpdateUserPassword sets a new password for the given user
func UpdateUserPassword(db *gorm.DB, user database.User, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return pkgErrors.Wrap(err, "hashing password")
	}

	if err := db.Model(&user).Update("password", database.ToNullString(string(hashedPassword))).Error; err != nil {
		return pkgErrors.Wrap(err, "updating password")
	}

	return nil
}

// CreateResetToken creates a password reset token for the user with the
// given email and sends the reset email. An unknown email reports ErrNotFound;
// callers presenting a public form should swallow it so that registered
// emails cannot be probed.
func (a *App) CreateResetToken(email string) error {
	user, err := a.GetUserByEmail(email)
	if err != nil {
		return err
	}

	resetToken, err := token.Create(a.DB, user.ID, database.TokenTypeResetPassword)
	if err != nil {
		return pkgErrors.Wrap(err, "creating token")
	}

	if err := a.SendPasswordResetEmail(email, resetToken.Value); err != nil {
		return pkgErrors.Wrap(err, "sending password reset email")
	}

	return nil
}

// ResetPassword sets a new password for the user holding the given reset
// token. The token is single-use and expires after resetTokenWindow. Every
// existing session of the user is invalidated.
func (a *App) ResetPassword(tokenValue, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	var resetToken database.Token
	err := a.DB.
		Where("value = ? AND type = ? AND used_at IS NULL", tokenValue, database.TokenTypeResetPassword).
		First(&resetToken).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidToken
	} else if err != nil {
		return pkgErrors.Wrap(err, "finding token")
	}

	if a.Clock.Now().After(resetToken.CreatedAt.Add(resetTokenWindow)) {
		return ErrPasswordResetTokenExpired
	}

	var user database.User
	if err := a.DB.Where("id = ?", resetToken.UserID).First(&user).Error; err != nil {
		return pkgErrors.Wrap(err, "finding user")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return pkgErrors.Wrap(err, "hashing password")
	}

	tx := a.DB.Begin()
	if err := tx.Model(&user).Update("password", database.ToNullString(string(hashedPassword))).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "updating password")
	}
	usedAt := a.Clock.Now()
	if err := tx.Model(&resetToken).Update("used_at", &usedAt).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "marking token used")
	}
	if err := a.DeleteUserSessions(tx, user.ID); err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting user sessions")
	}
	tx.Commit()

	if user.Email.Valid {
		if err := a.SendPasswordResetAlertEmail(user.Email.String); err != nil {
			log.ErrorWrap(err, "sending password reset alert email")
		}
	}

	return nil
}
