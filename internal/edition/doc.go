// Package edition maintains the labelled partition of an audio track's frame
// timeline into CUT, MUTE and NO_CHANGE regions.
//
// A Model keeps one interval set per label. Every frame in [0, DomainMax]
// belongs to exactly one of them after every call: mutators remove the range
// from the other two sets before adding it to the target. Editions merges the
// three sets into the ascending, domain-exhaustive sequence consumed by
// playback, rendering and transcript synchronization.
//
// Models are single-writer. Take a Copy before handing one to another
// goroutine; playback does this itself.
package edition
