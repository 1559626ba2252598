// Package cachepolicy implements fixed capacity, in-memory caches
// behind a single [Cache] contract, using interchangeable eviction
// policies: [FIFO], [LRU], [MRU], [LFU] and [ARC].
//
// Every policy is constructed with a capacity of at least
// [MinimumCapacity], or through [New] with a [Policy].
// None are safe for concurrent use; wrap them with [Synchronized]
// if needed. Get must be treated as a write, since it
// reorders entries, bumps frequencies or adapts ARC's target.
//
// The following is a summary of the Adaptive Replacement Cache
// (intended for maintainers), derived from the [ARC paper].
//
// Lists:
//
//   - T1 (recent)
//
//     Resident keys accessed once since they were admitted.
//
//   - T2 (frequent)
//
//     Resident keys accessed at least twice.
//
//   - B1, B2 (ghosts)
//
//     Keys (without values) evicted from T1 and T2 respectively.
//     A key is a member of at most one of the four lists.
//
// Target:
//
//   - p ∈ [0, capacity]
//
//     The target size of T1. A hit on a B1 ghost means T1 was too small,
//     so p grows by max(1, |B2|/|B1|). A hit on a B2 ghost means T2 was
//     too small, so p shrinks by max(1, |B1|/|B2|).
//
// Replacement:
//
//   - When residents are at capacity, the oldest T1 entry is demoted to B1
//     if |T1| > p (or |T1| == p and the incoming key is a B2 ghost);
//     otherwise the oldest T2 entry is demoted to B2.
//
// Bounds:
//
//   - |T1| + |T2| ≤ capacity
//
//   - |B1| + |B2| ≤ 2 * capacity
//
//     Ghosts are trimmed oldest first after every mutation,
//     from B1 while it exceeds capacity, from B2 otherwise.
//
// A Get on a ghost key cannot re-admit it (there is no value),
// but it counts the ghost hit and adapts p. The ghost is then
// primed: a following Set re-admits it into T2 without
// adapting a second time.
//
// [ARC paper]: https://www.usenix.org/conference/fast-03/arc-self-tuning-low-overhead-replacement-cache
package cachepolicy
