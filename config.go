package channels

import (
	"fmt"

	"github.com/ygrebnov/channels/metrics"
)

// channelConfig holds Channel construction options, built with the same
// struct-of-options + defaultConfig/validateConfig split as config.go/
// defaults.go.
type channelConfig struct {
	metrics metrics.Provider
}

func defaultChannelConfig() channelConfig {
	return channelConfig{metrics: metrics.NewNoopProvider()}
}

// validateCapacity reports whether capacity is a legal Channel buffer size.
// Negative capacities are an argument error that must surface synchronously
// at the call site; NewChannel panics on it the same way WithFixedPool
// panics on n == 0.
func validateCapacity(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("%s: capacity must be >= 0, got %d", Namespace, capacity)
	}
	return nil
}

// selectConfig holds Select's optional behaviors.
type selectConfig struct {
	metrics metrics.Provider
}

func defaultSelectConfig() selectConfig {
	return selectConfig{metrics: metrics.NewNoopProvider()}
}
