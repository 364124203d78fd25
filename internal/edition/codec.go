package edition

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"trimline/internal/interval"
)

// MarshalText writes the CUT and MUTE editions one per line as
// "start end LABEL". NO_CHANGE regions are implied by their absence.
func (m *Model) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range m.Changes() {
		fmt.Fprintf(&buf, "%d %d %s\n", e.Range.Start, e.Range.End, e.Label)
	}
	return buf.Bytes(), nil
}

// UnmarshalText replaces the model with the editions listed in text. Blank
// lines and lines starting with # are skipped. Explicit NO_CHANGE lines are
// applied like any other label.
func (m *Model) UnmarshalText(text []byte) error {
	editions, err := ParseEditions(text)
	if err != nil {
		return err
	}
	parsed, err := FromEditions(editions)
	if err != nil {
		return err
	}
	if m.sets[NoChange] == nil {
		*m = *NewModel()
	}
	m.Load(parsed)
	return nil
}

// ParseEditions reads "start end LABEL" lines.
func ParseEditions(text []byte) ([]Edition, error) {
	var out []Edition
	scanner := bufio.NewScanner(bytes.NewReader(text))
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		fields := strings.Fields(raw)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected \"start end label\", got %q", line, raw)
		}
		start, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: start: %w", line, err)
		}
		end, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: end: %w", line, err)
		}
		label, err := ParseLabel(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, Edition{Range: interval.New(start, end), Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read editions: %w", err)
	}
	return out, nil
}
