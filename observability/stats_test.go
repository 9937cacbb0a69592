package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// sums collects the int64 sums by metric name and result attribute.
func sums(t *testing.T, reader sdkmetric.Reader) (string, map[string]map[string]int64) {
	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	res := make(map[string]map[string]int64)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok, m.Name)
		values := make(map[string]int64)
		for _, dp := range sum.DataPoints {
			v, _ := dp.Attributes.Value(resultKey)
			values[v.AsString()] += dp.Value
		}
		res[m.Name] = values
	}
	return rm.ScopeMetrics[0].Scope.Name, res
}

func TestCatalogStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		_ = mp.Shutdown(context.Background())
	}()

	stats := NewCatalogStats(mp, "books")
	stats.RecordSave(true)
	stats.RecordSave(true)
	stats.RecordSave(false)
	stats.RecordRemove(true)
	stats.RecordRemove(false)
	stats.RecordRemove(false)
	stats.RecordLookup(true)
	stats.RecordLookup(false)

	scope, res := sums(t, reader)
	require.Equal(t, "xcatalog/books", scope)
	require.Equal(t, map[string]int64{"insert": 2, "update": 1}, res["catalog.save.count"])
	require.Equal(t, map[string]int64{"hit": 1, "miss": 2}, res["catalog.remove.count"])
	require.Equal(t, map[string]int64{"hit": 1, "miss": 1}, res["catalog.lookup.count"])
	require.Equal(t, map[string]int64{"": 1}, res["catalog.entries"])

	stats.RecordRelease(1)
	stats.RecordRelease(0)
	_, res = sums(t, reader)
	require.Equal(t, map[string]int64{"": 0}, res["catalog.entries"])
}

func TestCatalogStats_DefaultName(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		_ = mp.Shutdown(context.Background())
	}()

	NewCatalogStats(mp, "  ").RecordLookup(true)
	scope, _ := sums(t, reader)
	require.Equal(t, "xcatalog/default", scope)
}

func TestCatalogStats_Nil(t *testing.T) {
	var stats *CatalogStats
	require.NotPanics(t, func() {
		stats.RecordSave(true)
		stats.RecordRemove(true)
		stats.RecordLookup(true)
		stats.RecordRelease(3)
	})
}
