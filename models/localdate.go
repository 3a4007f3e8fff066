package models

import (
	"os"
	"sync"
	"time"

	// Embedded tzdata so the campus timezone resolves inside minimal
	// containers without a system zone database.
	_ "time/tzdata"
)

var (
	appLocOnce sync.Once
	appLoc     *time.Location
)

// AppLocation returns the campus timezone used for every calendar-day
// comparison (cycle windows, deadlines, reminders). APP_TIMEZONE overrides
// the default.
func AppLocation() *time.Location {
	appLocOnce.Do(func() {
		name := os.Getenv("APP_TIMEZONE")
		if name == "" {
			name = "Asia/Kuala_Lumpur"
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			loc = time.Local
		}
		appLoc = loc
	})
	return appLoc
}

// DateOf truncates t to its calendar day in the campus timezone. A UTC
// instant late in the evening on campus still counts as that campus day.
func DateOf(t time.Time) time.Time {
	lt := t.In(AppLocation())
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, AppLocation())
}
