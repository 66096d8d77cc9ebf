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
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/archivist/archivist/pkg/server/database/migrations"
	"github.com/archivist/archivist/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type migrationFile struct {
	filename string
	version  int
}

type migrationRecord struct {
	ID       int    `gorm:"primaryKey"`
	Filename string `gorm:"uniqueIndex"`
}

func (migrationRecord) TableName() string {
	return MigrationTableName
}

// validateMigrationFilename checks if filename follows format: NNN-description.sql
func validateMigrationFilename(name string) error {
	if !strings.HasSuffix(name, ".sql") {
		return errors.Errorf("invalid migration filename: must end with .sql")
	}

	name = strings.TrimSuffix(name, ".sql")
	parts := strings.SplitN(name, "-", 2)
	if len(parts) != 2 {
		return errors.Errorf("invalid migration filename: must be NNN-description.sql")
	}

	version, description := parts[0], parts[1]

	if len(version) != 3 {
		return errors.Errorf("invalid migration filename: version must be 3 digits, got %s", version)
	}
	for _, c := range version {
		if c < '0' || c > '9' {
			return errors.Errorf("invalid migration filename: version must be numeric, got %s", version)
		}
	}

	if description == "" {
		return errors.Errorf("invalid migration filename: description is required")
	}

	return nil
}

// getMigrationFiles reads, validates, and sorts migration files
func getMigrationFiles(fsys fs.FS) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "reading migration directory")
	}

	ret := []migrationFile{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if err := validateMigrationFilename(name); err != nil {
			return nil, errors.Wrapf(err, "validating %s", name)
		}

		version, err := strconv.Atoi(name[:3])
		if err != nil {
			return nil, errors.Wrapf(err, "parsing version of %s", name)
		}

		ret = append(ret, migrationFile{filename: name, version: version})
	}

	sort.Slice(ret, func(i, j int) bool {
		return ret[i].version < ret[j].version
	})

	return ret, nil
}

// Migrate runs the migrations using the embedded migration files
func Migrate(db *gorm.DB) error {
	return migrate(db, migrations.Files)
}

func migrate(db *gorm.DB, fsys fs.FS) error {
	if err := db.AutoMigrate(&migrationRecord{}); err != nil {
		return errors.Wrap(err, "preparing migration table")
	}

	files, err := getMigrationFiles(fsys)
	if err != nil {
		return errors.Wrap(err, "getting migration files")
	}

	for _, f := range files {
		var count int64
		if err := db.Model(&migrationRecord{}).Where("filename = ?", f.filename).Count(&count).Error; err != nil {
			return errors.Wrapf(err, "checking migration %s", f.filename)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(fsys, f.filename)
		if err != nil {
			return errors.Wrapf(err, "reading migration %s", f.filename)
		}

		tx := db.Begin()
		if err := tx.Exec(string(content)).Error; err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "running migration %s", f.filename)
		}
		if err := tx.Create(&migrationRecord{Filename: f.filename}).Error; err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "recording migration %s", f.filename)
		}
		tx.Commit()

		log.WithFields(log.Fields{
			"filename": f.filename,
		}).Info("Applied migration")
	}

	return nil
}
