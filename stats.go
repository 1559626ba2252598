package cachepolicy

import "strconv"

// Stats is a snapshot of a cache's statistics.
// Counters are cumulative until the cache is cleared.
type Stats struct {
	Policy Policy
	Hits, Misses,
	Evictions uint64
	Size, Capacity int

	// ARC only.
	GhostHits uint64
	// Target is ARC's adaptation parameter `p`;
	// the target size of the recency list T1.
	Target int
	Recent, Frequent,
	RecentGhosts, FrequentGhosts int

	// LFU only.
	MinFrequency int
	// Frequencies maps a frequency to the number of keys holding it.
	Frequencies map[int]int
}

// HitRate returns hits / (hits + misses),
// or 0 if there have been no lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Map flattens the snapshot into field names and values,
// for monitoring consumers. Policy specific fields are
// only included for their policy; LFU frequencies are
// keyed as "frequency_<n>".
func (s Stats) Map() map[string]any {
	fields := map[string]any{
		"policy":    s.Policy.String(),
		"hits":      s.Hits,
		"misses":    s.Misses,
		"evictions": s.Evictions,
		"size":      s.Size,
		"capacity":  s.Capacity,
		"hit_rate":  s.HitRate(),
	}
	switch s.Policy {
	case PolicyARC:
		fields["ghost_hits"] = s.GhostHits
		fields["p"] = s.Target
		fields["t1_size"] = s.Recent
		fields["t2_size"] = s.Frequent
		fields["b1_size"] = s.RecentGhosts
		fields["b2_size"] = s.FrequentGhosts
	case PolicyLFU:
		fields["min_frequency"] = s.MinFrequency
		for frequency, count := range s.Frequencies {
			fields["frequency_"+strconv.Itoa(frequency)] = count
		}
	}
	return fields
}

// counters are embedded by every policy.
type counters struct {
	hits, misses,
	evictions, ghostHits uint64
}

func (c *counters) record(hit bool) {
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

func (c *counters) reset() { *c = counters{} }

func (c *counters) stats(policy Policy, size, capacity int) Stats {
	return Stats{
		Policy:    policy,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		GhostHits: c.ghostHits,
		Size:      size,
		Capacity:  capacity,
	}
}
