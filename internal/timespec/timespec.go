// Package timespec parses the time and date arguments accepted on the
// command line and in the setup prompt.
package timespec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidFormat marks a spec whose shape or components cannot be
	// parsed (wrong part count, non-numeric parts, out-of-range fields).
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidDate marks a date that parses but names no real calendar
	// day, like month 13 or February 30.
	ErrInvalidDate = errors.New("invalid date")
)

// ParseTimeSpec converts "ss", "mm:ss" or "hh:mm:ss" to total seconds.
// The single-part form takes any non-negative integer; the longer forms
// require minutes and seconds below 60.
func ParseTimeSpec(spec string) (int, error) {
	parts := strings.Split(spec, ":")

	fields := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q is not a non-negative number", ErrInvalidFormat, p)
		}
		fields[i] = n
	}

	switch len(fields) {
	case 1:
		return fields[0], nil
	case 2:
		if fields[1] >= 60 {
			return 0, fmt.Errorf("%w: seconds must be < 60 in mm:ss", ErrInvalidFormat)
		}
		return fields[0]*60 + fields[1], nil
	case 3:
		if fields[1] >= 60 || fields[2] >= 60 {
			return 0, fmt.Errorf("%w: minutes and seconds must be < 60 in hh:mm:ss", ErrInvalidFormat)
		}
		return fields[0]*3600 + fields[1]*60 + fields[2], nil
	default:
		return 0, fmt.Errorf("%w: expected ss, mm:ss or hh:mm:ss", ErrInvalidFormat)
	}
}

// ParseDateSpec converts "m/d" (current year) or "y/m/d" to that day's
// local midnight. An empty spec or the literal "null" means today.
func ParseDateSpec(spec string, now time.Time) (time.Time, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "null") {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	parts := strings.Split(spec, "/")

	fields := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not a number", ErrInvalidFormat, p)
		}
		fields[i] = n
	}

	var year, month, day int
	switch len(fields) {
	case 2:
		year, month, day = now.Year(), fields[0], fields[1]
	case 3:
		year, month, day = fields[0], fields[1], fields[2]
	default:
		return time.Time{}, fmt.Errorf("%w: expected m/d or y/m/d", ErrInvalidFormat)
	}

	// time.Date normalizes out-of-range values (Feb 30 becomes Mar 2),
	// so validate before constructing.
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}
	if day < 1 || day > daysIn(year, time.Month(month)) {
		return time.Time{}, fmt.Errorf("%w: day %d out of range for %d/%02d", ErrInvalidDate, day, year, month)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), nil
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
