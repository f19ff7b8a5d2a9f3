// Copyright (c) 2025 Neomantra Corp

package cme

import (
	"fmt"
	"time"
)

// TimestampToTime converts a CME transact_time/packet timestamp
// (nanoseconds since the UNIX epoch) to a time.Time.
func TimestampToTime(ts int64) time.Time {
	return time.Unix(0, ts)
}

// FormatTimestamp renders ts (nanoseconds since epoch) as
// "YYYY-MM-DD HH:MM:SS.NNNNNNNNN" in local time, matching the CSV
// report column format. The nanosecond remainder is computed directly
// rather than through time.Format's fractional-second rounding.
func FormatTimestamp(ts int64) string {
	seconds := ts / 1e9
	nanos := ts - seconds*1e9
	if nanos < 0 {
		nanos += 1e9
		seconds--
	}
	t := time.Unix(seconds, 0).Local()
	return fmt.Sprintf("%s.%09d", t.Format("2006-01-02 15:04:05"), nanos)
}
