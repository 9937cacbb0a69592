package xlog

import (
	"io"

	"go.uber.org/zap/zapcore"
)

// writerCore is a zapcore.Core bound to one writer. It keeps the
// pieces it was built from, so a component logger is able to
// re-encode into the same writer.
type writerCore struct {
	zapcore.Core
	lvlEnabler zapcore.LevelEnabler
	lvlEnc     zapcore.LevelEncoder
	tsEnc      zapcore.TimeEncoder
	ws         zapcore.WriteSyncer
	enc        func(cfg zapcore.EncoderConfig) zapcore.Encoder
}

func newWriterCore(
	ws zapcore.WriteSyncer,
	lvlEnabler zapcore.LevelEnabler,
	enc func(cfg zapcore.EncoderConfig) zapcore.Encoder,
	lvlEnc zapcore.LevelEncoder,
	tsEnc zapcore.TimeEncoder,
	cfg zapcore.EncoderConfig,
) *writerCore {
	cfg.EncodeLevel = lvlEnc
	cfg.EncodeTime = tsEnc
	return &writerCore{
		Core:       zapcore.NewCore(enc(cfg), ws, lvlEnabler),
		lvlEnabler: lvlEnabler,
		lvlEnc:     lvlEnc,
		tsEnc:      tsEnc,
		ws:         ws,
		enc:        enc,
	}
}

// withEncoder keeps the writer, level and encoders but lays out
// the entries by cfg.
func (wc *writerCore) withEncoder(cfg zapcore.EncoderConfig) *writerCore {
	return newWriterCore(wc.ws, wc.lvlEnabler, wc.enc, wc.lvlEnc, wc.tsEnc, cfg)
}

type writerCoreBuilder func(
	zapcore.LevelEnabler,
	logEncoderType,
	zapcore.LevelEncoder,
	zapcore.TimeEncoder,
) *writerCore

// writerCoreTo writes to the w or to the stdout if w is nil.
func writerCoreTo(w io.Writer) writerCoreBuilder {
	return func(
		lvlEnabler zapcore.LevelEnabler,
		encoder logEncoderType,
		lvlEnc zapcore.LevelEncoder,
		tsEnc zapcore.TimeEncoder,
	) *writerCore {
		return newWriterCore(getOutWriter(w), lvlEnabler, getEncoderByType(encoder), lvlEnc, tsEnc, rootCoreEncoderCfg)
	}
}

var rootCoreEncoderCfg = zapcore.EncoderConfig{
	MessageKey:    "msg",
	LevelKey:      "lvl",
	TimeKey:       "ts",
	CallerKey:     "callAt",
	EncodeCaller:  zapcore.ShortCallerEncoder,
	FunctionKey:   "fn",
	NameKey:       "component",
	EncodeName:    zapcore.FullNameEncoder,
	StacktraceKey: coreKeyIgnored,
}

// Components (fx, catalogs) are named and without caller.
var componentCoreEncoderCfg = zapcore.EncoderConfig{
	MessageKey:    "msg",
	LevelKey:      "lvl",
	TimeKey:       "ts",
	CallerKey:     coreKeyIgnored,
	FunctionKey:   coreKeyIgnored,
	NameKey:       "component",
	EncodeName:    zapcore.FullNameEncoder,
	StacktraceKey: coreKeyIgnored,
}
