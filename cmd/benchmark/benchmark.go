package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	cache "github.com/krisalay/lru-cache"
	"github.com/krisalay/lru-cache/hashing"
	"github.com/krisalay/lru-cache/internal/config"
	"github.com/krisalay/lru-cache/internal/logger"
)

// ================= BENCHMARK =================

func main() {
	var configPath string

	root := &cobra.Command{
		Use:          "lru-benchmark",
		Short:        "Concurrent load benchmark for the sharded LRU cache.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	log := logger.New(cfg.LogLevel)

	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")

	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Shards       :", cfg.Shards)
	fmt.Println("Capacity     :", cfg.Capacity)
	fmt.Println("Preload Keys :", cfg.Keys)
	fmt.Println("Goroutines   :", cfg.Goroutines)
	fmt.Println("Ops/Goroutine:", cfg.OpsPerGoroutine)
	fmt.Println("---------------------------------")

	c, err := cache.NewShardedCache[string, int](
		cfg.Shards,
		cfg.Capacity,
		hashing.String,
		hashing.Equal[string],
		cache.WithLogger[string, int](log),
	)
	if err != nil {
		return err
	}

	keys := make([]string, max(cfg.Keys, 1))
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	// ---------------- Preload Cache ----------------
	log.Info().Msg("Preloading cache...")
	for i := 0; i < cfg.Keys; i++ {
		c.Put(keys[i], i)
	}
	log.Info().Int("entries", c.Len()).Msg("Preload complete.")

	// ---------------- Warmup ----------------
	log.Info().Msg("Warming up cache...")
	for i := 0; i < 10000; i++ {
		c.Get(keys[i%len(keys)])
	}
	log.Info().Msg("Warmup complete.")

	// ---------------- Load Test ----------------
	log.Info().Msg("Running concurrency benchmark...")

	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(cfg.Goroutines)

	for i := 0; i < cfg.Goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < cfg.OpsPerGoroutine; j++ {
				key := keys[(j+id)%len(keys)]
				// One write per ten operations keeps the shards evicting.
				if j%10 == 0 {
					c.Put(key, j)
					continue
				}
				c.Get(key)
			}
		}(i)
	}

	wg.Wait()

	duration := time.Since(start)
	totalOps := cfg.Goroutines * cfg.OpsPerGoroutine

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Entries          : %d/%d\n", c.Len(), c.Cap())
	fmt.Println("=========================================")
	return nil
}
