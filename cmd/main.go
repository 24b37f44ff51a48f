package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cache "github.com/krisalay/lru-cache"
	"github.com/krisalay/lru-cache/hashing"
	"github.com/krisalay/lru-cache/internal/config"
	"github.com/krisalay/lru-cache/internal/logger"
	"github.com/krisalay/lru-cache/lru"
)

// ================= BACKING STORE =================
type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
	log  zerolog.Logger
}

func NewInMemoryStore(log zerolog.Logger) *InMemoryStore {
	return &InMemoryStore{data: make(map[string]string), log: log}
}

func (s *InMemoryStore) Load(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("key %q not in store", key)
	}
	s.log.Info().Str("key", key).Msg("STORE  → load")
	return v, nil
}

func (s *InMemoryStore) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// ================= METRICS =================
type Metrics struct {
	mu        sync.Mutex
	hits      int
	misses    int
	evictions int
}

func (m *Metrics) Hit()      { m.mu.Lock(); m.hits++; m.mu.Unlock() }
func (m *Metrics) Miss()     { m.mu.Lock(); m.misses++; m.mu.Unlock() }
func (m *Metrics) Eviction() { m.mu.Lock(); m.evictions++; m.mu.Unlock() }

func (m *Metrics) Print() {
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Println("\n==================== METRICS ====================")
	fmt.Printf("HITS      : %d\n", m.hits)
	fmt.Printf("MISSES    : %d\n", m.misses)
	fmt.Printf("EVICTIONS : %d\n", m.evictions)
}

// ================= MAIN =================

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	cfg := config.Default()

	root := &cobra.Command{
		Use:          "lru-demo",
		Short:        "Walk through the LRU cache behaviors.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("capacity") {
				loaded.Capacity = cfg.Capacity
			}
			if flags.Changed("shards") {
				loaded.Shards = cfg.Shards
			}
			if flags.Changed("log-level") {
				loaded.LogLevel = cfg.LogLevel
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			return runDemo(cmd.Context(), loaded, logger.New(loaded.LogLevel))
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.Flags().IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "total capacity of the sharded cache")
	root.Flags().IntVar(&cfg.Shards, "shards", cfg.Shards, "number of shards")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level")
	return root
}

func runDemo(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	fmt.Println("\n==================== 1) EVICT LEAST RECENTLY USED ====================")
	c, err := lru.NewComparable[int, string](2, hashing.Integer[int])
	if err != nil {
		return err
	}
	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c")
	_, ok := c.Get(1)
	fmt.Println("LRU    → GET 1 after PUT 3 found =", ok)
	fmt.Println("LRU    → keys (oldest first) =", c.Keys())

	fmt.Println("\n==================== 2) GET REFRESHES RECENCY ====================")
	c.Purge()
	c.Put(1, "a")
	c.Put(2, "b")
	c.Get(1)
	c.Put(3, "c")
	fmt.Println("LRU    → keys (oldest first) =", c.Keys())

	fmt.Println("\n==================== 3) ZERO CAPACITY ====================")
	empty, err := lru.NewComparable[int, string](0, hashing.Integer[int])
	if err != nil {
		return err
	}
	empty.Put(1, "a")
	fmt.Println("LRU    → len after PUT =", empty.Len())

	fmt.Println("\n==================== 4) SHARDED CACHE ====================")
	fmt.Println("SHARDS          :", cfg.Shards)
	fmt.Println("CAPACITY        :", cfg.Capacity, "keys")

	store := NewInMemoryStore(log)
	store.Put("a", "alpha")
	store.Put("b", "beta")
	metrics := &Metrics{}

	sc, err := cache.NewShardedCache[string, string](
		cfg.Shards,
		cfg.Capacity,
		hashing.String,
		hashing.Equal[string],
		cache.WithLoader[string, string](store),
		cache.WithMetrics[string, string](metrics),
		cache.WithLogger[string, string](log),
	)
	if err != nil {
		return err
	}

	v, err := sc.GetOrLoad(ctx, "a")
	fmt.Println("CACHE  → GET a =", v, err)
	v, err = sc.GetOrLoad(ctx, "a")
	fmt.Println("CACHE  → GET a =", v, err)

	fmt.Println("\n==================== 5) SINGLEFLIGHT ====================")
	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			val, _ := sc.GetOrLoad(ctx, "b")
			fmt.Printf("GOROUTINE-%d → GET b = %v\n", id, val)
		}(i)
	}
	wg.Wait()

	fmt.Println("\n==================== 6) EVICTION ====================")
	for i := 0; i < cfg.Capacity*3; i++ {
		sc.Put(fmt.Sprintf("k%d", i), fmt.Sprint(i))
	}
	fmt.Println("CACHE  → len after filling =", sc.Len(), "of", sc.Cap())

	fmt.Println("\n==================== 7) REMOVE ====================")
	sc.Remove("b")
	_, ok = sc.Get("b")
	fmt.Println("CACHE  → GET b after remove found =", ok)

	metrics.Print()
	return nil
}
