package interfaces

// IMetrics receives the domain counters recorded by the use cases.
type IMetrics interface {
	IncrQuoteCreated()
	IncrStatusChange(status string)
	IncrSequenceFailure(strategy string)
	IncrSessionEvent(kind string)
	IncrCacheHit(cache string)
	IncrCacheMiss(cache string)
}
