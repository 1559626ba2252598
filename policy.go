package cachepolicy

import (
	"fmt"
	"strings"
)

// Policy identifies an eviction policy.
type Policy uint8

const (
	_ Policy = iota
	// PolicyFIFO evicts the oldest insertion; reads never reorder.
	PolicyFIFO
	// PolicyLRU evicts the least recently used entry.
	PolicyLRU
	// PolicyMRU evicts the most recently used entry.
	PolicyMRU
	// PolicyLFU evicts the least frequently used entry,
	// oldest first among equal frequencies.
	PolicyLFU
	// PolicyARC uses the Adaptive Replacement Cache algorithm.
	PolicyARC
)

// Policies returns every supported [Policy].
func Policies() []Policy {
	return []Policy{
		PolicyFIFO,
		PolicyLRU,
		PolicyMRU,
		PolicyLFU,
		PolicyARC,
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyFIFO:
		return "fifo"
	case PolicyLRU:
		return "lru"
	case PolicyMRU:
		return "mru"
	case PolicyLFU:
		return "lfu"
	case PolicyARC:
		return "arc"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy returns the [Policy] named by name (case insensitive).
func ParsePolicy(name string) (Policy, error) {
	for _, policy := range Policies() {
		if strings.EqualFold(name, policy.String()) {
			return policy, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}
