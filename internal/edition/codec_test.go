package edition

import (
	"strings"
	"testing"
)

func TestModelTextRoundTrip(t *testing.T) {
	m := NewModel()
	m.Cut(rng(0, 200))
	m.Cut(rng(400, 600))
	m.Cut(rng(800, 900))
	m.Mute(rng(1000, 1200))
	m.Mute(rng(150, 450))
	m.Mute(rng(10000, 40000))
	m.Undo(rng(12000, 35000))

	text, err := m.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var decoded Model
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if !decoded.Equal(m) {
		t.Fatalf("decoded %s, want %s", &decoded, m)
	}
}

func TestMarshalTextFormat(t *testing.T) {
	m := NewModel()
	m.Cut(rng(0, 9))
	m.Mute(rng(20, 29))
	text, err := m.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	want := "0 9 CUT\n20 29 MUTE\n"
	if string(text) != want {
		t.Fatalf("text = %q, want %q", text, want)
	}
}

func TestParseEditions(t *testing.T) {
	input := strings.Join([]string{
		"# legacy file",
		"0 99 CUT",
		"",
		"50 59 NO_CHANGES",
		"200 299 mute",
	}, "\n")
	eds, err := ParseEditions([]byte(input))
	if err != nil {
		t.Fatalf("ParseEditions: %v", err)
	}
	if len(eds) != 3 || eds[1].Label != NoChange || eds[2].Label != Mute {
		t.Fatalf("editions = %v", eds)
	}

	m, err := FromEditions(eds)
	if err != nil {
		t.Fatalf("FromEditions: %v", err)
	}
	if got := m.Ranges(Cut); len(got) != 2 {
		t.Fatalf("cut ranges = %v", got)
	}
}

func TestParseEditionsErrors(t *testing.T) {
	cases := map[string]string{
		"fields": "0 10",
		"start":  "x 10 CUT",
		"end":    "0 y CUT",
		"label":  "0 10 SKIP",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseEditions([]byte(input)); err == nil {
				t.Fatalf("expected error for %q", input)
			}
		})
	}
}
