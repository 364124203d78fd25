// Package preflight provides readiness checks for the filesystem paths,
// database, and registered audio sources that trimline depends on.
//
// The CLI "trimline doctor" command runs RunAll and prints one line per
// check; render also calls CheckTrackSource before streaming a track.
package preflight
