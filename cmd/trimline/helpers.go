package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"trimline/internal/coords"
	"trimline/internal/edition"
	"trimline/internal/interval"
	"trimline/internal/transcript"
)

var titleCaser = cases.Title(language.Und)

// labelTitle renders NO_CHANGE as "No Change".
func labelTitle(label edition.Label) string {
	return titleCaser.String(strings.ReplaceAll(strings.ToLower(label.String()), "_", " "))
}

func stateTitle(state transcript.State) string {
	return titleCaser.String(state.String())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatClock renders a duration as m:ss.mmm, with hours when needed.
func formatClock(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	ms := d.Milliseconds()
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	rem := ms % 1000
	var out string
	if h > 0 {
		out = fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, rem)
	} else {
		out = fmt.Sprintf("%d:%02d.%03d", m, s, rem)
	}
	if neg {
		return "-" + out
	}
	return out
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

type unit string

const (
	unitFrames unit = "frames"
	unitMillis unit = "ms"
)

func parseUnit(raw string) (unit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "frames", "frame", "f":
		return unitFrames, nil
	case "ms", "millis", "milliseconds":
		return unitMillis, nil
	default:
		return "", fmt.Errorf("unknown unit %q (want frames or ms)", raw)
	}
}

// parseRange turns two inclusive positional bounds into a frame range.
func parseRange(startArg, endArg string, u unit, mapper coords.Mapper) (interval.Interval[int64], error) {
	start, err := strconv.ParseInt(strings.TrimSpace(startArg), 10, 64)
	if err != nil {
		return interval.Interval[int64]{}, fmt.Errorf("invalid start %q: %w", startArg, err)
	}
	end, err := strconv.ParseInt(strings.TrimSpace(endArg), 10, 64)
	if err != nil {
		return interval.Interval[int64]{}, fmt.Errorf("invalid end %q: %w", endArg, err)
	}
	if end < start {
		return interval.Interval[int64]{}, fmt.Errorf("end %d precedes start %d", end, start)
	}
	r := interval.New(start, end)
	if u == unitMillis {
		r = mapper.FrameRangeOfMillis(r)
	}
	return r, nil
}
