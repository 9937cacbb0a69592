package observability

import (
	"context"
	"time"

	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.uber.org/fx"

	"github.com/benz9527/xcatalog/lib/infra"
)

type ExporterType uint8

const (
	ConsoleExporter ExporterType = iota
	PrometheusExporter
)

type MetricsConfig struct {
	Exporter ExporterType
	// Console exporter collect interval and timeout.
	Interval       time.Duration
	Timeout        time.Duration
	ConsoleOptions []stdoutmetric.Option
	PromOptions    []prometheus.Option
	// Go runtime metrics, e.g. goroutines and GC.
	RuntimeStats bool
}

func (cfg MetricsConfig) install() (func(ctx context.Context) error, error) {
	switch cfg.Exporter {
	case ConsoleExporter:
		interval, timeout := cfg.Interval, cfg.Timeout
		if interval <= 0 {
			interval = time.Minute
		}
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		return NewConsoleMetricsExporter(interval, timeout, cfg.ConsoleOptions...)
	case PrometheusExporter:
		return NewPrometheusMetricsExporter(cfg.PromOptions...)
	default:
	}
	return nil, infra.NewErrorStack("[observability] unknown metrics exporter")
}

// Module installs the global meter provider on invoke and shuts
// it down when the application stops.
func Module(cfg MetricsConfig) fx.Option {
	return fx.Module(
		"observability",
		fx.Invoke(func(lc fx.Lifecycle) error {
			shutdown, err := cfg.install()
			if err != nil {
				return err
			}
			if cfg.RuntimeStats {
				if err = otelruntime.Start(); err != nil {
					return infra.WrapErrorStackWithMessage(err, "[observability] runtime stats")
				}
			}
			lc.Append(fx.Hook{
				OnStop: shutdown,
			})
			return nil
		}),
	)
}
