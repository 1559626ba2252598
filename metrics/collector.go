// Package metrics exports cache statistics to Prometheus.
package metrics

import (
	"maps"
	"slices"
	"strconv"
	"sync"

	cachepolicy "github.com/djdv/go-cachepolicy"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	// Source is anything that can produce a [cachepolicy.Stats] snapshot.
	// Collect may be called from any goroutine, so sources that are
	// used concurrently should be wrapped with [cachepolicy.NewSynchronized].
	Source interface {
		Stats() cachepolicy.Stats
	}
	// Collector is a [prometheus.Collector] over a set of named caches.
	Collector struct {
		sources map[string]Source
		descs   descriptors
		mu      sync.Mutex
	}
	descriptors struct {
		hits, misses, evictions, ghostHits,
		size, capacity, target,
		listSize, minFrequency, frequencyKeys *prometheus.Desc
	}
)

const namespace = "cachepolicy"

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns an empty [Collector].
// Metric names are prefixed with "cachepolicy_".
func NewCollector() *Collector {
	var (
		labels = []string{"cache", "policy"}
		desc   = func(name, help string, extra ...string) *prometheus.Desc {
			return prometheus.NewDesc(
				prometheus.BuildFQName(namespace, "", name),
				help, append(labels, extra...), nil,
			)
		}
	)
	return &Collector{
		sources: make(map[string]Source),
		descs: descriptors{
			hits:          desc("hits_total", "Total number of cache hits."),
			misses:        desc("misses_total", "Total number of cache misses."),
			evictions:     desc("evictions_total", "Total number of evicted entries."),
			ghostHits:     desc("ghost_hits_total", "Total number of ARC ghost list hits."),
			size:          desc("entries", "Number of resident entries."),
			capacity:      desc("capacity", "Maximum number of resident entries."),
			target:        desc("arc_target", "ARC adaptation target for the recency list."),
			listSize:      desc("arc_list_entries", "Number of keys in each ARC list.", "list"),
			minFrequency:  desc("lfu_min_frequency", "Lowest access frequency held by an LFU entry."),
			frequencyKeys: desc("lfu_frequency_entries", "Number of LFU entries at each access frequency.", "frequency"),
		},
	}
}

// Register adds (or replaces) the cache exported under name.
func (c *Collector) Register(name string, source Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = source
}

// Unregister stops exporting the cache under name.
func (c *Collector) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	d := &c.descs
	for _, desc := range []*prometheus.Desc{
		d.hits, d.misses, d.evictions, d.ghostHits,
		d.size, d.capacity, d.target,
		d.listSize, d.minFrequency, d.frequencyKeys,
	} {
		ch <- desc
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range slices.Sorted(maps.Keys(c.sources)) {
		c.collect(ch, name, c.sources[name].Stats())
	}
}

func (c *Collector) collect(ch chan<- prometheus.Metric, name string, stats cachepolicy.Stats) {
	var (
		d      = &c.descs
		policy = stats.Policy.String()
		emit   = func(desc *prometheus.Desc, kind prometheus.ValueType, value float64, extra ...string) {
			ch <- prometheus.MustNewConstMetric(
				desc, kind, value,
				append([]string{name, policy}, extra...)...,
			)
		}
	)
	emit(d.hits, prometheus.CounterValue, float64(stats.Hits))
	emit(d.misses, prometheus.CounterValue, float64(stats.Misses))
	emit(d.evictions, prometheus.CounterValue, float64(stats.Evictions))
	emit(d.size, prometheus.GaugeValue, float64(stats.Size))
	emit(d.capacity, prometheus.GaugeValue, float64(stats.Capacity))
	switch stats.Policy {
	case cachepolicy.PolicyARC:
		emit(d.ghostHits, prometheus.CounterValue, float64(stats.GhostHits))
		emit(d.target, prometheus.GaugeValue, float64(stats.Target))
		for list, size := range map[string]int{
			"t1": stats.Recent, "t2": stats.Frequent,
			"b1": stats.RecentGhosts, "b2": stats.FrequentGhosts,
		} {
			emit(d.listSize, prometheus.GaugeValue, float64(size), list)
		}
	case cachepolicy.PolicyLFU:
		emit(d.minFrequency, prometheus.GaugeValue, float64(stats.MinFrequency))
		for frequency, count := range stats.Frequencies {
			emit(d.frequencyKeys, prometheus.GaugeValue,
				float64(count), strconv.Itoa(frequency))
		}
	}
}
