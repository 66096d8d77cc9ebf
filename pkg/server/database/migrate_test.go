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
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func initTestDB(t *testing.T) *gorm.DB {
	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}

	return db
}

func TestValidateMigrationFilename(t *testing.T) {
	testCases := []struct {
		filename string
		valid    bool
	}{
		{filename: "001-add-index.sql", valid: true},
		{filename: "042-backfill.sql", valid: true},
		{filename: "1-add-index.sql", valid: false},
		{filename: "001-add-index.txt", valid: false},
		{filename: "001.sql", valid: false},
		{filename: "abc-add-index.sql", valid: false},
		{filename: "001-.sql", valid: false},
	}

	for _, tc := range testCases {
		err := validateMigrationFilename(tc.filename)
		if tc.valid && err != nil {
			t.Errorf("%s should be valid: %v", tc.filename, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%s should be invalid", tc.filename)
		}
	}
}

func TestMigrate(t *testing.T) {
	db := initTestDB(t)

	fsys := fstest.MapFS{
		"002-insert-second.sql": &fstest.MapFile{
			Data: []byte("INSERT INTO items (name) VALUES ('second');"),
		},
		"001-create-items.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT); INSERT INTO items (name) VALUES ('first');"),
		},
	}

	if err := migrate(db, fsys); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	// files run in version order
	var names []string
	if err := db.Raw("SELECT name FROM items ORDER BY id").Scan(&names).Error; err != nil {
		t.Fatalf("reading items: %v", err)
	}
	if len(names) != 2 || names[0] != "first" || names[1] != "second" {
		t.Fatalf("unexpected items: %v", names)
	}

	// a second run applies nothing
	if err := migrate(db, fsys); err != nil {
		t.Fatalf("re-running migrations: %v", err)
	}

	var count int64
	if err := db.Raw("SELECT count(*) FROM items").Scan(&count).Error; err != nil {
		t.Fatalf("counting items: %v", err)
	}
	if count != 2 {
		t.Fatalf("migrations should be idempotent, got %d items", count)
	}

	var applied int64
	if err := db.Table(MigrationTableName).Count(&applied).Error; err != nil {
		t.Fatalf("counting migration records: %v", err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 migration records, got %d", applied)
	}
}
