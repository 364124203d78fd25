package transcript

import (
	"strings"
	"testing"

	"trimline/internal/coords"
	"trimline/internal/edition"
	"trimline/internal/interval"
)

func ms(start, end int64) interval.Interval[int64] {
	return interval.New(start, end)
}

func TestSynchronizeCutAndMute(t *testing.T) {
	mapper, err := coords.NewMapper(44100, 441)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	words := []Word{
		{Text: "zero", Range: ms(1000, 2000)},
		{Text: "one", Range: ms(2200, 2800)},
		{Text: "two", Range: ms(3000, 4000)},
		{Text: "three", Range: ms(4200, 5000)},
	}

	model := edition.NewModel()
	model.Cut(mapper.FrameRangeOfMillis(ms(900, 2100)))
	model.Mute(mapper.FrameRangeOfMillis(ms(2900, 4100)))

	got := Synchronize(words, model.Editions(), mapper)
	want := []State{Excluded, Presented, Muted, Presented}
	for i, w := range got {
		if w.State != want[i] {
			t.Fatalf("word %d (%s) state = %s, want %s", i, w.Text, w.State, want[i])
		}
	}
	if words[0].State != Presented {
		t.Fatal("Synchronize modified its input")
	}

	model.Undo(mapper.FrameRangeOfMillis(ms(0, 10_000)))
	got = Synchronize(got, model.Editions(), mapper)
	for i, w := range got {
		if w.State != Presented {
			t.Fatalf("word %d state after restore = %s", i, w.State)
		}
	}
}

func TestSynchronizeStraddlingWordKeepsState(t *testing.T) {
	mapper, err := coords.NewMapper(1000, 20)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	model := edition.NewModel()
	model.Cut(interval.New[int64](100, 199))

	words := []Word{{Text: "edge", Range: ms(150, 250), State: Muted}}
	got := Synchronize(words, model.Editions(), mapper)
	if got[0].State != Muted {
		t.Fatalf("state = %s, want muted", got[0].State)
	}
}

func TestLoadWhisperX(t *testing.T) {
	payload := `{"segments":[
		{"text":"hello there","start":0.5,"end":1.4,"words":[
			{"word":" hello","start":0.5,"end":0.9,"score":0.9},
			{"word":"there","start":1.0,"end":1.4}
		]},
		{"text":"42","start":2.0,"end":2.5,"words":[{"word":"42"}]}
	]}`
	words, err := LoadWhisperX(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("LoadWhisperX: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("words = %v", words)
	}
	if words[0].Text != "hello" || words[0].Range != ms(500, 899) {
		t.Fatalf("first word = %+v", words[0])
	}
	if words[1].Range != ms(1000, 1399) {
		t.Fatalf("second word = %+v", words[1])
	}

	mapper, _ := coords.NewMapper(1000, 20)
	if got := FrameRangeOf(words[1], mapper); got != interval.New[int64](1000, 1399) {
		t.Fatalf("FrameRangeOf = %s", got)
	}
}

func TestLoadWhisperXRejectsGarbage(t *testing.T) {
	if _, err := LoadWhisperX(strings.NewReader("{")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCounts(t *testing.T) {
	c := Counts([]Word{{State: Muted}, {State: Muted}, {State: Excluded}})
	if c[Muted] != 2 || c[Excluded] != 1 || c[Presented] != 0 {
		t.Fatalf("counts = %v", c)
	}
}
