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
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/archivist/archivist/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	// MigrationTableName is the name of the table that keeps track of migrations
	MigrationTableName = "migrations"
)

// InitSchema migrates database schema to reflect the latest model definition
func InitSchema(db *gorm.DB) {
	if err := db.AutoMigrate(
		&User{},
		&Session{},
		&Token{},
		&DayEntry{},
		&CustomCategory{},
		&Review{},
		&ProfileSettings{},
	); err != nil {
		panic(err)
	}
}

// IsPostgresDSN checks if the given data source name points at a
// PostgreSQL server rather than a SQLite file
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open initializes the database connection. The DSN is either a PostgreSQL
// URL or a path to a SQLite file. TranslateError is enabled so that
// uniqueness violations surface as gorm.ErrDuplicatedKey regardless of the
// underlying engine; the service layer relies on this to turn constraint
// races into conflict responses.
func Open(dsn string) *gorm.DB {
	cfg := &gorm.Config{TranslateError: true}

	if IsPostgresDSN(dsn) {
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			panic(errors.Wrap(err, "opening postgres connection"))
		}

		return db
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0755); err != nil {
		panic(errors.Wrapf(err, "creating database directory at %s", dir))
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		panic(errors.Wrap(err, "opening database connection"))
	}

	return db
}

// StartWALCheckpointing periodically checkpoints the SQLite write-ahead log
// to keep it from growing unbounded. It is a no-op for PostgreSQL.
func StartWALCheckpointing(db *gorm.DB, interval time.Duration) {
	if db.Dialector.Name() != "sqlite" {
		return
	}

	go func() {
		for {
			time.Sleep(interval)
			if err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
				log.ErrorWrap(err, "checkpointing WAL")
			}
		}
	}()
}

// StartPeriodicVacuum periodically vacuums the SQLite database to reclaim
// space. It is a no-op for PostgreSQL.
func StartPeriodicVacuum(db *gorm.DB, interval time.Duration) {
	if db.Dialector.Name() != "sqlite" {
		return
	}

	go func() {
		for {
			time.Sleep(interval)
			if err := db.Exec("VACUUM").Error; err != nil {
				log.ErrorWrap(err, "vacuuming database")
			}
		}
	}()
}
