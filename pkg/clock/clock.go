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

// Package clock abstracts the standard time package so that time-dependent
// logic, such as the future-date check on day entries, can be tested against
// a fixed moment.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time. Production code uses the real
// implementation; tests use Mock.
type Clock interface {
	Now() time.Time
}

type clock struct{}

func (c *clock) Now() time.Time {
	return time.Now()
}

// Mock is a clock that reports a configurable, fixed time.
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// SetNow sets the time that the mock clock reports
func (c *Mock) SetNow(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}

// Now returns the configured time
func (c *Mock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

// New returns an instance of a real clock
func New() Clock {
	return &clock{}
}

// NewMock returns a mock clock fixed at a date inside the supported
// journal year
func NewMock() *Mock {
	return &Mock{
		currentTime: time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC),
	}
}
