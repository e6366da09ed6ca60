package main

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// fireTime is a wall-clock time of day at which the scheduler triggers a cycle.
type fireTime struct {
	hour   int
	minute int
}

func (f fireTime) String() string {
	return fmt.Sprintf("%02d:%02d", f.hour, f.minute)
}

// parseScheduleTimes parses a comma-separated "HH:MM,HH:MM" list into sorted,
// de-duplicated fire times.
func parseScheduleTimes(s string) ([]fireTime, error) {
	var times []fireTime
	seen := map[fireTime]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := time.Parse("15:04", part)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule time %q (want HH:MM): %w", part, err)
		}
		ft := fireTime{hour: t.Hour(), minute: t.Minute()}
		if !seen[ft] {
			seen[ft] = true
			times = append(times, ft)
		}
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("schedule contains no times")
	}
	sort.Slice(times, func(i, j int) bool {
		if times[i].hour != times[j].hour {
			return times[i].hour < times[j].hour
		}
		return times[i].minute < times[j].minute
	})
	return times, nil
}

// nextFire returns the earliest scheduled occurrence strictly after now,
// rolling over to the first time tomorrow when today's slots have passed.
func nextFire(now time.Time, times []fireTime) time.Time {
	for _, ft := range times {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), ft.hour, ft.minute, 0, 0, now.Location())
		if candidate.After(now) {
			return candidate
		}
	}
	first := times[0]
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), first.hour, first.minute, 0, 0, now.Location())
}
