package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.uber.org/fx/fxtest"
)

func TestConsoleMetricsExporter(t *testing.T) {
	buf := &bytes.Buffer{}
	shutdown, err := NewConsoleMetricsExporter(time.Hour, time.Second, stdoutmetric.WithWriter(buf))
	require.NoError(t, err)

	NewCatalogStats(nil, "console").RecordSave(true)
	require.NoError(t, shutdown(context.Background()))
	require.Contains(t, buf.String(), "xcatalog/console")
	require.Contains(t, buf.String(), "catalog.save.count")
}

func gatherNames(t *testing.T, reg *promclient.Registry) []string {
	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	return names
}

func hasPrefix(names []string, prefix string) bool {
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func TestPrometheusMetricsExporter(t *testing.T) {
	reg := promclient.NewRegistry()
	shutdown, err := NewPrometheusMetricsExporter(prometheus.WithRegisterer(reg))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, shutdown(context.Background()))
	}()

	NewCatalogStats(otel.GetMeterProvider(), "prom").RecordLookup(false)
	require.True(t, hasPrefix(gatherNames(t, reg), "catalog_lookup_count"))
}

func TestObservabilityModule(t *testing.T) {
	buf := &bytes.Buffer{}
	app := fxtest.New(t, Module(MetricsConfig{
		Exporter:       ConsoleExporter,
		Interval:       time.Hour,
		ConsoleOptions: []stdoutmetric.Option{stdoutmetric.WithWriter(buf)},
	}))
	app.RequireStart()
	NewCatalogStats(nil, "module").RecordRemove(true)
	app.RequireStop()
	require.Contains(t, buf.String(), "xcatalog/module")

	reg := promclient.NewRegistry()
	app = fxtest.New(t, Module(MetricsConfig{
		Exporter:     PrometheusExporter,
		PromOptions:  []prometheus.Option{prometheus.WithRegisterer(reg)},
		RuntimeStats: true,
	}))
	app.RequireStart()
	names := gatherNames(t, reg)
	require.True(t, hasPrefix(names, "process_runtime_go") || hasPrefix(names, "go_"))
	app.RequireStop()
}

func TestObservabilityModule_UnknownExporter(t *testing.T) {
	_, err := MetricsConfig{Exporter: ExporterType(100)}.install()
	require.Error(t, err)
}
