package xlog

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type errSyncer struct {
	bytes.Buffer
}

func (w *errSyncer) Sync() error {
	return errors.New("sync failed")
}

func TestTeeCore(t *testing.T) {
	debugLvl := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	errorLvl := zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	buf1, buf2 := &bytes.Buffer{}, &errSyncer{}
	tee := teeCore{
		writerCoreTo(buf1)(&debugLvl, JSON, zapcore.CapitalLevelEncoder, zapcore.ISO8601TimeEncoder),
		writerCoreTo(buf2)(&errorLvl, JSON, zapcore.CapitalLevelEncoder, zapcore.ISO8601TimeEncoder),
	}
	require.True(t, tee.Enabled(zapcore.DebugLevel))

	ce := tee.Check(zapcore.Entry{Level: zapcore.InfoLevel, Message: "info"}, nil)
	require.NotNil(t, ce)
	ce.Write(zap.Int("n", 1))
	require.Contains(t, buf1.String(), `"msg":"info"`)
	require.Equal(t, 0, buf2.Len())

	ce = tee.Check(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "error"}, nil)
	ce.Write()
	require.Contains(t, buf1.String(), `"msg":"error"`)
	require.Contains(t, buf2.String(), `"msg":"error"`)

	// Write skips the level check.
	require.NoError(t, tee.Write(zapcore.Entry{Level: zapcore.DebugLevel, Message: "forced"}, nil))
	require.Contains(t, buf2.String(), `"msg":"forced"`)

	err := tee.Sync()
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 1)

	buf1.Reset()
	with := tee.With([]zap.Field{zap.String("k", "v")})
	require.NoError(t, with.Write(zapcore.Entry{Level: zapcore.InfoLevel, Message: "with"}, nil))
	require.Contains(t, buf1.String(), `"k":"v"`)

	component := tee.withEncoder(componentCoreEncoderCfg)
	require.Len(t, component, 2)
	buf1.Reset()
	require.NoError(t, component.Write(zapcore.Entry{Level: zapcore.InfoLevel, LoggerName: "tee"}, nil))
	require.Contains(t, buf1.String(), `"component":"tee"`)

	debugLvl.SetLevel(zapcore.ErrorLevel)
	require.False(t, tee.Enabled(zapcore.WarnLevel))
	require.False(t, component.Enabled(zapcore.WarnLevel))
	require.False(t, teeCore{}.Enabled(zapcore.ErrorLevel))
}
