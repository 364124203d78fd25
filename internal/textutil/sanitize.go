package textutil

import (
	"path/filepath"
	"strings"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed and runs of whitespace collapse to one space.
// Returns "untitled" when nothing usable remains.
func SanitizeFileName(name string) string {
	cleaned := strings.Join(strings.Fields(fileNameReplacer.Replace(name)), " ")
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return "untitled"
	}
	return cleaned
}

// TrackNameFromPath derives a track name from an audio file path: the base
// name without extension, with underscores read as spaces.
func TrackNameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	name := strings.Join(strings.Fields(base), " ")
	if name == "" || name == "." {
		return "untitled"
	}
	return name
}

// EditedFileName returns the default render destination name for a track.
func EditedFileName(trackName string) string {
	return SanitizeFileName(trackName) + "-edited.wav"
}
