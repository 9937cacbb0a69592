package xlog

import (
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ zapcore.Core = (teeCore)(nil)

// teeCore fans out the entries to every writer.
type teeCore []*writerCore

func (tc teeCore) Enabled(lvl zapcore.Level) bool {
	return lo.SomeBy(tc, func(wc *writerCore) bool {
		return wc.Enabled(lvl)
	})
}

func (tc teeCore) With(fields []zap.Field) zapcore.Core {
	return zapcore.NewTee(lo.Map(tc, func(wc *writerCore, _ int) zapcore.Core {
		return wc.With(fields)
	})...)
}

func (tc teeCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	for _, wc := range tc {
		ce = wc.Check(ent, ce)
	}
	return ce
}

func (tc teeCore) Write(ent zapcore.Entry, fields []zap.Field) error {
	return multierr.Combine(lo.Map(tc, func(wc *writerCore, _ int) error {
		return wc.Write(ent, fields)
	})...)
}

func (tc teeCore) Sync() error {
	return multierr.Combine(lo.Map(tc, func(wc *writerCore, _ int) error {
		return wc.Sync()
	})...)
}

func (tc teeCore) withEncoder(cfg zapcore.EncoderConfig) teeCore {
	return lo.Map(tc, func(wc *writerCore, _ int) *writerCore {
		return wc.withEncoder(cfg)
	})
}
