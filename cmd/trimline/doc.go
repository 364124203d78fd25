// Command trimline is the command-line front end for non-destructive PCM
// editing: register WAV tracks, mark regions as cut or muted, inspect the
// resulting timeline, and render the edited audio.
package main
