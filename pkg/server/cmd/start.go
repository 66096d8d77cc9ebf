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

package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/archivist/archivist/pkg/server/app"
	"github.com/archivist/archivist/pkg/server/buildinfo"
	"github.com/archivist/archivist/pkg/server/config"
	"github.com/archivist/archivist/pkg/server/controllers"
	"github.com/archivist/archivist/pkg/server/database"
	"github.com/archivist/archivist/pkg/server/log"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
)

// startCleanupJobs schedules periodic sweeps of expired sessions and spent
// tokens
func startCleanupJobs(a *app.App) *cron.Cron {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		if err := a.DeleteExpiredSessions(); err != nil {
			log.ErrorWrap(err, "deleting expired sessions")
		}
		if err := a.DeleteSpentTokens(); err != nil {
			log.ErrorWrap(err, "deleting spent tokens")
		}
	})

	c.Start()

	return c
}

func startCmd(args []string) {
	fs := setupFlagSet("start", "archivist-server start")

	port := fs.String("port", "", "Server port (env: PORT, default: 3001)")
	webURL := fs.String("webUrl", "", "Full URL to server without trailing slash (env: WebURL, default: http://localhost:3001)")
	dbPath := fs.String("dbPath", "", "Path to SQLite database file or PostgreSQL URL (env: DBPath, default: $XDG_DATA_HOME/archivist/server.db)")
	disableRegistration := fs.Bool("disableRegistration", false, "Disable user registration (env: DisableRegistration, default: false)")
	logLevel := fs.String("logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")

	fs.Parse(args)

	cfg, err := config.New(config.Params{
		Port:                *port,
		WebURL:              *webURL,
		DBPath:              *dbPath,
		DisableRegistration: *disableRegistration,
		LogLevel:            *logLevel,
	})
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	log.SetLevel(cfg.LogLevel)

	a := initApp(cfg)
	defer func() {
		sqlDB, err := a.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}()

	// Keep the WAL file from growing unbounded.
	database.StartWALCheckpointing(a.DB, 5*time.Minute)

	// Reclaim space and defragment the database.
	database.StartPeriodicVacuum(a.DB, 24*time.Hour)

	cleanupJobs := startCleanupJobs(&a)
	defer cleanupJobs.Stop()

	ctl := controllers.New(&a)
	rc := controllers.RouteConfig{
		APIRoutes:   controllers.NewAPIRoutes(&a, ctl),
		Controllers: ctl,
	}

	r, err := controllers.NewRouter(&a, rc)
	if err != nil {
		panic(errors.Wrap(err, "initializing router"))
	}

	log.WithFields(log.Fields{
		"version": buildinfo.Version,
		"port":    cfg.Port,
	}).Info("Archivist server starting")

	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.ErrorWrap(err, "server failed")
		os.Exit(1)
	}
}
