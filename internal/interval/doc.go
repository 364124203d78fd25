// Package interval implements closed integer intervals and a self-merging set
// of disjoint intervals over any signed integer coordinate type.
//
// The Set keeps its intervals sorted, non-overlapping and non-adjacent at all
// times: touching intervals are fused on insertion, and exclusions split
// intervals into left and right remainders. On top of that representation it
// answers containment and intersection queries and the coordinate compaction
// query Impose, which re-expresses a range in the coordinate space obtained by
// deleting every stored interval and sliding later coordinates left.
//
// Key types:
//   - Interval: inclusive [Start, End]; End < Start is the empty value
//   - Set: sorted, merged interval collection with Union/Exclude/Impose
//
// Sets are not safe for concurrent mutation. Take a Copy before handing a set
// to another goroutine.
package interval
