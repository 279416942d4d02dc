package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxCharts bounds the number of stored charts. The least recently stored
// chart is evicted first.
func WithMaxCharts(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxCharts = n
		}
	}
}
