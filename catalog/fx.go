package catalog

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"

	"github.com/benz9527/xcatalog/xlog"
)

type Params struct {
	fx.In

	Lifecycle     fx.Lifecycle
	Logger        xlog.XLogger         `optional:"true"`
	MeterProvider metric.MeterProvider `optional:"true"`
	Options       []CatalogOption      `group:"catalogOptions"`
}

func newFxCatalog(p Params) (*Catalog, error) {
	opts := make([]CatalogOption, 0, len(p.Options)+2)
	if p.Logger != nil {
		opts = append(opts, WithCatalogLogger(p.Logger))
	}
	if p.MeterProvider != nil {
		opts = append(opts, WithCatalogStats(p.MeterProvider))
	}
	opts = append(opts, p.Options...)
	c, err := NewCatalog(opts...)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			c.Release()
			_ = c.logger.Sync()
			return nil
		},
	})
	return c, nil
}

// Module provides the *Catalog. The logger, the meter provider
// and the options tagged by `group:"catalogOptions"` are taken
// from the container if present.
var Module = fx.Module(
	"catalog",
	fx.Provide(newFxCatalog),
)

// ModuleWithXLogger installs the logger into the app with the
// catalog module. The fx events are printed by the logger too.
func ModuleWithXLogger(logger xlog.XLogger) fx.Option {
	return fx.Options(
		xlog.FxModule(logger),
		Module,
	)
}

// AsCatalogOption annotates the option to join the catalog options group.
func AsCatalogOption(opt CatalogOption) fx.Option {
	return fx.Provide(fx.Annotate(
		func() CatalogOption { return opt },
		fx.ResultTags(`group:"catalogOptions"`),
	))
}
