// Package rotation maps wall-clock time to the bucket name that selects a
// log file. Buckets are fixed windows aligned to midnight.
package rotation

import (
	"fmt"
	"strings"
	"time"
)

// Interval is the width of a rotation window.
type Interval uint8

const (
	OneHour Interval = iota
	ThreeHour
	SixHour
	NineHour
	TwelveHour
	OneDay
)

var intervalHours = [...]int{1, 3, 6, 9, 12, 24}

var intervalNames = [...]string{"1h", "3h", "6h", "9h", "12h", "1d"}

// Hours is the window length in hours.
func (i Interval) Hours() int {
	if int(i) < len(intervalHours) {
		return intervalHours[i]
	}
	return 24
}

func (i Interval) String() string {
	if int(i) < len(intervalNames) {
		return intervalNames[i]
	}
	return fmt.Sprintf("interval(%d)", i)
}

// ParseInterval accepts the String form of an interval and a few aliases
// ("24h", "day", "hourly", "daily").
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1h", "hourly":
		return OneHour, nil
	case "3h":
		return ThreeHour, nil
	case "6h":
		return SixHour, nil
	case "9h":
		return NineHour, nil
	case "12h":
		return TwelveHour, nil
	case "1d", "24h", "day", "daily":
		return OneDay, nil
	}
	return 0, fmt.Errorf("rotation: unknown interval %q", s)
}

// BucketName returns the bucket that now falls in, as
// YYYY-MM-DD-<start>h-<end>h. The end hour wraps to 00 for the last window
// of the day but the date stays now's date; a whole-day interval is
// always 00h-24h.
func BucketName(now time.Time, interval Interval) string {
	date := now.Format("2006-01-02")
	if interval == OneDay {
		return date + "-00h-24h"
	}
	n := interval.Hours()
	start := (now.Hour() / n) * n
	end := (start + n) % 24
	return fmt.Sprintf("%s-%02dh-%02dh", date, start, end)
}

// Clock resolves the current bucket for a fixed interval. The bucket is
// recomputed on every call so writes straddling a boundary land in the
// new window.
type Clock struct {
	Interval Interval
	Now      func() time.Time // nil means time.Now
}

// NewClock returns a Clock on the system time.
func NewClock(interval Interval) *Clock {
	return &Clock{Interval: interval}
}

// Bucket is the current bucket name.
func (c *Clock) Bucket() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return BucketName(now(), c.Interval)
}
