package channels

import "github.com/ygrebnov/channels/metrics"

// ChannelOption configures a Channel at construction time.
type ChannelOption func(*channelConfig)

// WithChannelMetrics attaches a metrics.Provider to a Channel. The channel
// records waiter-set gauges and blocked-operation counters against it.
// The default is a metrics.NoopProvider. A nil provider panics at the call.
func WithChannelMetrics(p metrics.Provider) ChannelOption {
	if p == nil {
		panic("channels: nil metrics provider")
	}
	return func(c *channelConfig) {
		c.metrics = p
	}
}

// SelectOption configures a Select call.
type SelectOption func(*selectConfig)

// WithSelectMetrics attaches a metrics.Provider to Select. Select records
// iteration counts, steal-race counts, and per-call wait duration against
// it. The default is a metrics.NoopProvider.
func WithSelectMetrics(p metrics.Provider) SelectOption {
	return func(c *selectConfig) {
		if p == nil {
			panic("channels: nil metrics provider")
		}
		c.metrics = p
	}
}
