package activity

import (
	"fmt"
	"time"

	"creditline-client-go/internal/units"
)

// relativeLabel renders a microsecond source timestamp as the feed label:
// relative within the last week, absolute calendar date beyond it.
func relativeLabel(timestampMicros string, now time.Time) string {
	micros, err := units.RawUint64(timestampMicros)
	if err != nil {
		return "Unknown"
	}

	occurred := time.Unix(int64(micros/1_000_000), 0).UTC()
	elapsed := now.UTC().Sub(occurred)

	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute")
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour")
	case elapsed < 7*24*time.Hour:
		return plural(int(elapsed.Hours()/24), "day")
	default:
		return occurred.Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
