package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"trimline/internal/interval"
)

type whisperXWord struct {
	Word  string   `json:"word"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

type whisperXSegment struct {
	Text  string         `json:"text"`
	Start float64        `json:"start"`
	End   float64        `json:"end"`
	Words []whisperXWord `json:"words"`
}

type whisperXPayload struct {
	Segments []whisperXSegment `json:"segments"`
}

// LoadWhisperX reads the word-level output of a WhisperX alignment run.
// Timestamps are converted from seconds to milliseconds; words the aligner
// could not place are dropped.
func LoadWhisperX(r io.Reader) ([]Word, error) {
	var payload whisperXPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}
	var words []Word
	for _, seg := range payload.Segments {
		for _, w := range seg.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" || w.Start == nil || w.End == nil {
				continue
			}
			start, end := secondsToMillis(*w.Start), secondsToMillis(*w.End)
			if end > start {
				end--
			}
			words = append(words, Word{
				Text:  text,
				Range: interval.New(start, end),
				State: Presented,
			})
		}
	}
	return words, nil
}

// LoadWhisperXFile is LoadWhisperX over a file path.
func LoadWhisperXFile(path string) ([]Word, error) {
	if strings.TrimSpace(path) == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadWhisperX(f)
}

func secondsToMillis(s float64) int64 {
	return int64(math.Round(s * 1000))
}
