package normalize

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNoValue marks a blank or placeholder cell. Callers treat it the
// same as ErrUnparsable (the field becomes absent) but tests can tell
// the two apart.
var ErrNoValue = errors.New("no time value")

// ErrUnparsable is returned when a cell carries data that cannot be
// read as an elapsed time.
var ErrUnparsable = errors.New("unparsable time value")

var dayPattern = regexp.MustCompile(`(?i)^(\d+)\s*days?\s+(\d{1,3}):(\d{1,2})(?::(\d{1,2}))?$`)

// placeholders are string renderings of "no data" that spreadsheet
// exports produce for empty cells.
var placeholders = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"null": {},
	"n/a":  {},
	"-":    {},
}

// Hours converts one raw spreadsheet cell into fractional hours,
// rounded to two decimals. Precedence:
//
//  1. blank or placeholder text -> ErrNoValue
//  2. "<N> day[s] HH:MM[:SS]"   -> N*24 + HH + MM/60 + SS/3600
//  3. "HH:MM[:SS]"              -> HH + MM/60 + SS/3600
//  4. Go duration literal       -> elapsed seconds / 3600
//  5. bare decimal              -> Excel elapsed-days convention, *24
//
// The elapsed-days convention for bare numerics (rule 5) is a policy
// choice; the alternate already-in-hours reading is rejected. Errors
// never escape the ingestion pipeline: the mapper maps them to absent.
func Hours(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	if _, ok := placeholders[strings.ToLower(value)]; ok {
		return 0, ErrNoValue
	}

	lower := strings.ToLower(value)
	if strings.Contains(lower, "day") && strings.Contains(value, ":") {
		return hoursFromDayClock(value)
	}
	if strings.Contains(value, ":") {
		return hoursFromClock(value)
	}
	if d, err := time.ParseDuration(lower); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative duration %q", ErrUnparsable, raw)
		}
		return HoursFromDuration(d), nil
	}

	days, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(days) || math.IsInf(days, 0) || days < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, raw)
	}
	return round2(days * 24), nil
}

// HoursFromDuration converts a native elapsed duration to fractional
// hours rounded to two decimals.
func HoursFromDuration(d time.Duration) float64 {
	return round2(d.Seconds() / 3600)
}

func hoursFromDayClock(value string) (float64, error) {
	match := dayPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, value)
	}
	days, _ := strconv.Atoi(match[1])
	hours, _ := strconv.Atoi(match[2])
	minutes, _ := strconv.Atoi(match[3])
	seconds := 0
	if match[4] != "" {
		seconds, _ = strconv.Atoi(match[4])
	}
	return round2(float64(days)*24 + clockHours(hours, minutes, seconds)), nil
}

func hoursFromClock(value string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, value)
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, value)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, value)
	}
	seconds := 0
	if len(parts) == 3 {
		seconds, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || seconds < 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnparsable, value)
		}
	}
	return round2(clockHours(hours, minutes, seconds)), nil
}

func clockHours(hours, minutes, seconds int) float64 {
	return float64(hours) + float64(minutes)/60 + float64(seconds)/3600
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
