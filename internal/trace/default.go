package trace

import (
	"log/slog"
	"sync"

	"github.com/timvw/webtrace/internal/config"
)

var defaultAggregator = sync.OnceValue(func() *Aggregator {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("webtrace: using default configuration", "err", err)
		cfg = config.Defaults()
	}
	return NewAggregator(Options{Root: cfg.RegistryRoot()})
})

// Default returns the process-wide aggregator, creating it on first use from
// the loaded configuration. Concurrent first calls all get the same instance.
func Default() *Aggregator {
	return defaultAggregator()
}
