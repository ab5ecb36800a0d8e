package tradejournal

import (
	"fmt"
	"strings"
	"time"
)

const manilaTimeZoneName = "Asia/Manila"

const dateLayout = "2006-01-02"

var manilaLocation = loadManilaLocation()

func loadManilaLocation() *time.Location {
	location, err := time.LoadLocation(manilaTimeZoneName)
	if err != nil {
		return time.FixedZone(manilaTimeZoneName, 8*60*60)
	}
	return location
}

// nowInManila returns the current time of the Core clock in Asia/Manila.
func (c *Core) nowInManila() time.Time {
	return c.now().In(manilaLocation)
}

// todayISO returns the current date using YYYY-MM-DD in Asia/Manila.
func (c *Core) todayISO() string {
	return c.nowInManila().Format(dateLayout)
}

// nowRFC3339 returns the current RFC3339 timestamp in Asia/Manila.
func (c *Core) nowRFC3339() string {
	return c.nowInManila().Format(time.RFC3339)
}

// normalizeDate accepts YYYY-MM-DD or RFC3339 and returns the calendar date
// in Asia/Manila. An empty value means today.
func (c *Core) normalizeDate(value string) (string, time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		today := c.nowInManila()
		day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, manilaLocation)
		return day.Format(dateLayout), day, nil
	}
	if t, err := time.ParseInLocation(dateLayout, value, manilaLocation); err == nil {
		return t.Format(dateLayout), t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid transaction_date %q: expected YYYY-MM-DD or RFC3339", value)
	}
	t = t.In(manilaLocation)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, manilaLocation)
	return day.Format(dateLayout), day, nil
}

func parseStoredDate(value string) time.Time {
	t, err := time.ParseInLocation(dateLayout, value, manilaLocation)
	if err != nil {
		return time.Time{}
	}
	return t
}
