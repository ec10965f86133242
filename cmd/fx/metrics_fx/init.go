package metrics_fx

import (
	"go.uber.org/fx"

	"tripwise/pkg/metrics"
)

var Module = fx.Provide(
	metrics.New,
	func(m *metrics.Metrics) metrics.Recorder { return m },
)
