package observability

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	CatalogStatsName = "xcatalog"

	resultKey = attribute.Key("result")
)

var (
	saveInsertAttrs = metric.WithAttributeSet(attribute.NewSet(resultKey.String("insert")))
	saveUpdateAttrs = metric.WithAttributeSet(attribute.NewSet(resultKey.String("update")))
	hitAttrs        = metric.WithAttributeSet(attribute.NewSet(resultKey.String("hit")))
	missAttrs       = metric.WithAttributeSet(attribute.NewSet(resultKey.String("miss")))
)

// CatalogStats counts the catalog operations.
// A nil *CatalogStats is valid and records nothing.
type CatalogStats struct {
	saveCount   metric.Int64Counter
	removeCount metric.Int64Counter
	lookupCount metric.Int64Counter
	entries     metric.Int64UpDownCounter
}

func (stats *CatalogStats) RecordSave(inserted bool) {
	if stats == nil {
		return
	}
	if inserted {
		stats.saveCount.Add(context.Background(), 1, saveInsertAttrs)
		stats.entries.Add(context.Background(), 1)
		return
	}
	stats.saveCount.Add(context.Background(), 1, saveUpdateAttrs)
}

func (stats *CatalogStats) RecordRemove(removed bool) {
	if stats == nil {
		return
	}
	if removed {
		stats.removeCount.Add(context.Background(), 1, hitAttrs)
		stats.entries.Add(context.Background(), -1)
		return
	}
	stats.removeCount.Add(context.Background(), 1, missAttrs)
}

// RecordRelease drops n entries at once.
func (stats *CatalogStats) RecordRelease(n int64) {
	if stats == nil || n <= 0 {
		return
	}
	stats.entries.Add(context.Background(), -n)
}

func (stats *CatalogStats) RecordLookup(found bool) {
	if stats == nil {
		return
	}
	if found {
		stats.lookupCount.Add(context.Background(), 1, hitAttrs)
		return
	}
	stats.lookupCount.Add(context.Background(), 1, missAttrs)
}

// NewCatalogStats creates the instruments from the mp, or from the
// global meter provider if mp is nil.
// The meter is named as "xcatalog/<name>".
func NewCatalogStats(mp metric.MeterProvider, name string) *CatalogStats {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	builder := &strings.Builder{}
	builder.WriteString(CatalogStatsName)
	builder.WriteString("/")
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(name)
	} else {
		builder.WriteString("default")
	}
	meter := mp.Meter(builder.String())
	return &CatalogStats{
		saveCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"catalog.save.count",
			metric.WithDescription("The number of saved books, by insert or update."),
		)),
		removeCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"catalog.remove.count",
			metric.WithDescription("The number of remove requests, by hit or miss."),
		)),
		lookupCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"catalog.lookup.count",
			metric.WithDescription("The number of lookups, by hit or miss."),
		)),
		entries: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"catalog.entries",
			metric.WithDescription("The number of books in the catalog."),
		)),
	}
}
