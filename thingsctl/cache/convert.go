package cache

import (
	"time"

	"github.com/thingsctl/thingsctl/thingsctl"
)

// The database stores timestamps as seconds since 2001-01-01 (the
// Core Data reference date) and calendar dates as whole days since
// the same reference.
const coreDataEpochOffset = 978307200

var referenceDate = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// nowFunc is swapped out in tests.
var nowFunc = time.Now

func timestampToTime(ts float64) time.Time {
	return time.Unix(int64(ts)+coreDataEpochOffset, 0).UTC()
}

func referenceDateToTime(days int64) time.Time {
	return referenceDate.AddDate(0, 0, int(days))
}

func daysSinceReference(t time.Time) int64 {
	y, m, d := t.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int64(day.Sub(referenceDate).Hours() / 24)
}

func intToStatus(status int) thingsctl.Status {
	switch status {
	case 2:
		return thingsctl.StatusCanceled
	case 3:
		return thingsctl.StatusCompleted
	default:
		return thingsctl.StatusOpen
	}
}
