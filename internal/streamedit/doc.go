// Package streamedit renders an edited PCM byte stream from a raw one.
//
// Editor walks an edition list in order: NO_CHANGE regions are copied in
// bounded chunks, MUTE regions are consumed from the source and replaced by
// zero bytes, and CUT regions are skipped without output. The frame counter
// passed to the progress callback tracks the position on the original
// timeline, so CUT regions advance it even though they produce no bytes.
//
// Playback runs an Editor on its own goroutine against a snapshot of an
// edition model, so the live model can keep changing while audio plays.
package streamedit
