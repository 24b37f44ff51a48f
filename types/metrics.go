package types

// This file defines how the cache reports what it is doing.

//go:generate mockgen -destination=mocks/metrics_mock.go -package=mocks . Metrics

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The cache will call these methods whenever something happens.
*/
type Metrics interface {

	// Hit is called when Get finds the key.
	Hit()

	// Miss is called when Get does NOT find the key.
	Miss()

	// Eviction is called when a key is removed because the cache is over capacity.
	// Explicit removals are not evictions.
	Eviction()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

If someone does not care about metrics,
we still want the cache to work without:
- nil pointer checks everywhere
- if metrics != nil conditions
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Eviction() {}
