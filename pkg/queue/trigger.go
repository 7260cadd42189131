package queue

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Trigger defines when a recurring job fires next
type Trigger interface {
	Next(after time.Time) time.Time
	String() string
}

// Every fires with a fixed interval. Aligned triggers fire on multiples of the
// interval, i.e. an aligned hourly trigger fires at the top of each hour.
type Every struct {
	Interval time.Duration
	Aligned  bool
}

// Next returns the first firing time after the given time
func (e Every) Next(after time.Time) time.Time {
	if e.Aligned {
		return after.Truncate(e.Interval).Add(e.Interval)
	}
	return after.Add(e.Interval)
}

func (e Every) String() string {
	if e.Aligned {
		return "every-aligned:" + e.Interval.String()
	}
	return "every:" + e.Interval.String()
}

// DailyAt fires once a day at the given wall clock time in the location
type DailyAt struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// Next returns the first firing time after the given time
func (d DailyAt) Next(after time.Time) time.Time {
	loc := d.loc()
	t := after.In(loc)
	next := time.Date(t.Year(), t.Month(), t.Day(), d.Hour, d.Minute, 0, 0, loc)
	if !next.After(t) {
		next = time.Date(t.Year(), t.Month(), t.Day()+1, d.Hour, d.Minute, 0, 0, loc)
	}
	return next
}

func (d DailyAt) String() string {
	return fmt.Sprintf("daily:%02d:%02d@%s", d.Hour, d.Minute, d.loc().String())
}

func (d DailyAt) loc() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

// ParseDailyAt makes DailyAt trigger from "HH:MM" string
func ParseDailyAt(hhmm string, loc *time.Location) (DailyAt, error) {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return DailyAt{}, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return DailyAt{}, fmt.Errorf("invalid hour in %q", hhmm)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return DailyAt{}, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return DailyAt{Hour: hour, Minute: minute, Location: loc}, nil
}

// ParseTrigger restores a trigger from its String form
func ParseTrigger(s string) (Trigger, error) {
	kind, val, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("invalid trigger %q", s)
	}
	switch kind {
	case "every", "every-aligned":
		d, err := time.ParseDuration(val)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid interval in trigger %q", s)
		}
		return Every{Interval: d, Aligned: kind == "every-aligned"}, nil
	case "daily":
		hhmm, tz, ok := strings.Cut(val, "@")
		if !ok {
			return nil, fmt.Errorf("missing location in trigger %q", s)
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid location in trigger %q: %w", s, err)
		}
		return ParseDailyAt(hhmm, loc)
	default:
		return nil, fmt.Errorf("unknown trigger kind %q", kind)
	}
}
