// Command cachesim replays synthetic access patterns against
// each eviction policy and reports their hit rates.
//
// Usage:
//
//	cachesim [-capacity n] [-patterns list] [-policies list] [-decay n] [-metrics] [-v]
//
// Lists are comma separated. The hashicorp-arc and hashicorp-lru
// policies replay against github.com/hashicorp/golang-lru for reference.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	cachepolicy "github.com/djdv/go-cachepolicy"
	"github.com/djdv/go-cachepolicy/internal/workload"
	"github.com/djdv/go-cachepolicy/metrics"
	"github.com/hashicorp/golang-lru/arc/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/sync/errgroup"
)

type (
	settings struct {
		patterns, policies []string
		capacity, decay    int
		metrics, verbose   bool
	}
	replayer interface {
		Get(int) (int, bool)
		Set(int, int)
	}
	arcReference struct{ *arc.ARCCache[int, int] }
	lruReference struct{ *lru.Cache[int, int] }
	result       struct {
		pattern, policy string
		hits, misses    uint64
		elapsed         time.Duration
		// Only set for this module's policies.
		stats *cachepolicy.Stats
	}
)

const (
	referenceARC = "hashicorp-arc"
	referenceLRU = "hashicorp-lru"
	// Context is checked every this many accesses.
	cancelStride = 1 << 12
)

var errUsage = errors.New("usage")

func (r arcReference) Set(key, value int) { r.Add(key, value) }
func (r lruReference) Set(key, value int) { r.Add(key, value) }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	set, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if set.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	patterns, err := lookupPatterns(set.patterns)
	if err != nil {
		return err
	}
	for _, policy := range set.policies {
		if _, err := newReplayer(policy, set.capacity, set.decay); err != nil {
			return err
		}
	}
	log.Info("replaying",
		"capacity", set.capacity,
		"patterns", len(patterns),
		"policies", len(set.policies),
	)
	results, err := replayAll(ctx, log, set, patterns)
	if err != nil {
		return err
	}
	if err := printResults(stdout, results); err != nil {
		return err
	}
	if set.metrics {
		return printMetrics(stdout, results)
	}
	return nil
}

func parseFlags(args []string, stderr io.Writer) (settings, error) {
	var (
		flags    = flag.NewFlagSet("cachesim", flag.ContinueOnError)
		set      settings
		patterns = flags.String("patterns", "", "comma separated access patterns (default all)")
		policies = flags.String("policies", "", "comma separated policies (default all)")
	)
	flags.SetOutput(stderr)
	flags.IntVar(&set.capacity, "capacity", 512, "cache capacity in entries")
	flags.IntVar(&set.decay, "decay", 0, "LFU frequency decay interval in operations (0 disables)")
	flags.BoolVar(&set.metrics, "metrics", false, "print cache statistics in Prometheus text format")
	flags.BoolVar(&set.verbose, "v", false, "log each replay")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return settings{}, errUsage
		}
		return settings{}, fmt.Errorf("%w: %w", errUsage, err)
	}
	if flags.NArg() != 0 {
		return settings{}, fmt.Errorf("unexpected arguments: %q", flags.Args())
	}
	set.patterns = splitList(*patterns)
	if len(set.patterns) == 0 {
		for _, pattern := range workload.Patterns() {
			set.patterns = append(set.patterns, pattern.Name)
		}
	}
	set.policies = splitList(*policies)
	if len(set.policies) == 0 {
		for _, policy := range cachepolicy.Policies() {
			set.policies = append(set.policies, policy.String())
		}
		set.policies = append(set.policies, referenceARC, referenceLRU)
	}
	return set, nil
}

func splitList(list string) []string {
	var items []string
	for item := range strings.SplitSeq(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func lookupPatterns(names []string) ([]workload.Pattern, error) {
	patterns := make([]workload.Pattern, len(names))
	for i, name := range names {
		pattern, err := workload.Lookup(name)
		if err != nil {
			return nil, err
		}
		patterns[i] = pattern
	}
	return patterns, nil
}

func newReplayer(name string, capacity, decay int) (replayer, error) {
	switch strings.ToLower(name) {
	case referenceARC:
		cache, err := arc.NewARC[int, int](capacity)
		if err != nil {
			return nil, err
		}
		return arcReference{cache}, nil
	case referenceLRU:
		cache, err := lru.New[int, int](capacity)
		if err != nil {
			return nil, err
		}
		return lruReference{cache}, nil
	}
	policy, err := cachepolicy.ParsePolicy(name)
	if err != nil {
		return nil, err
	}
	if policy == cachepolicy.PolicyLFU && decay != 0 {
		cache, err := cachepolicy.NewLFU[int, int](capacity, cachepolicy.WithDecay(decay))
		if err != nil {
			return nil, err
		}
		return cache, nil
	}
	return cachepolicy.New[int, int](policy, capacity)
}

// replayAll replays every pattern against a fresh instance
// of every policy, one goroutine per pair.
func replayAll(ctx context.Context, log *slog.Logger, set settings, patterns []workload.Pattern) ([]result, error) {
	var (
		results     = make([]result, len(patterns)*len(set.policies))
		group, gctx = errgroup.WithContext(ctx)
	)
	for i, pattern := range patterns {
		sequence := pattern.Generate(set.capacity)
		for j, policy := range set.policies {
			slot := &results[i*len(set.policies)+j]
			group.Go(func() error {
				cache, err := newReplayer(policy, set.capacity, set.decay)
				if err != nil {
					return err
				}
				*slot, err = replay(gctx, cache, sequence)
				if err != nil {
					return fmt.Errorf("%s/%s: %w", pattern.Name, policy, err)
				}
				slot.pattern, slot.policy = pattern.Name, policy
				log.Debug("replayed",
					"pattern", pattern.Name,
					"policy", policy,
					"accesses", len(sequence),
					"elapsed", slot.elapsed,
				)
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func replay(ctx context.Context, cache replayer, sequence []int) (result, error) {
	var (
		res   result
		start = time.Now()
	)
	for i, key := range sequence {
		if i%cancelStride == 0 {
			if err := ctx.Err(); err != nil {
				return result{}, err
			}
		}
		if _, ok := cache.Get(key); ok {
			res.hits++
		} else {
			res.misses++
			cache.Set(key, key)
		}
	}
	res.elapsed = time.Since(start)
	if source, ok := cache.(metrics.Source); ok {
		stats := source.Stats()
		res.stats = &stats
	}
	return res, nil
}

func printResults(w io.Writer, results []result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "pattern\tpolicy\thits\tmisses\thit rate\tevictions\telapsed\t")
	for _, res := range results {
		evictions := "-"
		if res.stats != nil {
			evictions = fmt.Sprint(res.stats.Evictions)
		}
		total := res.hits + res.misses
		rate := 0.0
		if total != 0 {
			rate = float64(res.hits) / float64(total) * 100
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f%%\t%s\t%s\t\n",
			res.pattern, res.policy,
			res.hits, res.misses, rate,
			evictions, res.elapsed.Round(time.Microsecond),
		)
	}
	return tw.Flush()
}

func printMetrics(w io.Writer, results []result) error {
	var (
		collector = metrics.NewCollector()
		registry  = prometheus.NewRegistry()
	)
	for _, res := range results {
		if res.stats != nil {
			collector.Register(res.pattern+"/"+res.policy, snapshot(*res.stats))
		}
	}
	if err := registry.Register(collector); err != nil {
		return err
	}
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}

// snapshot is a [metrics.Source] for a replay that has finished.
type snapshot cachepolicy.Stats

func (s snapshot) Stats() cachepolicy.Stats { return cachepolicy.Stats(s) }
