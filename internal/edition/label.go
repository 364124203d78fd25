package edition

import (
	"fmt"
	"strings"
)

// Label says how playback treats a region of the timeline.
type Label int

const (
	NoChange Label = iota
	Cut
	Mute
)

// Labels lists every label in storage order.
var Labels = []Label{NoChange, Cut, Mute}

func (l Label) String() string {
	switch l {
	case NoChange:
		return "NO_CHANGE"
	case Cut:
		return "CUT"
	case Mute:
		return "MUTE"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// ParseLabel accepts the text forms produced by String, case-insensitively.
// The legacy spelling NO_CHANGES is also accepted.
func ParseLabel(raw string) (Label, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "NO_CHANGE", "NO_CHANGES", "NOCHANGE":
		return NoChange, nil
	case "CUT":
		return Cut, nil
	case "MUTE":
		return Mute, nil
	default:
		return NoChange, fmt.Errorf("unknown edition label %q", raw)
	}
}

func (l Label) valid() bool {
	return l >= NoChange && l <= Mute
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, fmt.Errorf("invalid edition label %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
