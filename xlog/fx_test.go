package xlog

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/fx/fxtest"
)

func TestFxXLogger_LogEvent(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewFxXLogger(NewXLogger(
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerWriter(buf),
	))

	testcases := []struct {
		name  string
		event fxevent.Event
		lvl   string
		msg   string
	}{
		{"start hook", &fxevent.OnStartExecuted{FunctionName: "start", CallerName: "caller", Runtime: time.Millisecond}, "DEBUG", "hook executed"},
		{"stop hook", &fxevent.OnStopExecuted{FunctionName: "stop", CallerName: "caller", Err: errors.New("stop failed")}, "ERROR", "hook failed"},
		{"supply", &fxevent.Supplied{TypeName: "*catalog.Catalog"}, "DEBUG", "supply"},
		{"provide", &fxevent.Provided{OutputTypeNames: []string{"xlog.XLogger"}, ConstructorName: "NewXLogger"}, "DEBUG", "provide"},
		{"invoke", &fxevent.Invoked{FunctionName: "invoke", Err: errors.New("invoke failed")}, "ERROR", "invoke failed"},
		{"stopping", &fxevent.Stopping{Signal: os.Interrupt}, "INFO", "stopping"},
		{"rolling back", &fxevent.RollingBack{StartErr: errors.New("start failed")}, "ERROR", "start failed, rolling back"},
		{"rolled back", &fxevent.RolledBack{}, "DEBUG", "roll back"},
		{"started", &fxevent.Started{}, "DEBUG", "start"},
		{"stopped", &fxevent.Stopped{Err: errors.New("stop failed")}, "ERROR", "stop failed"},
		{"logger", &fxevent.LoggerInitialized{ConstructorName: "NewFxXLogger"}, "DEBUG", "init logger"},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			buf.Reset()
			logger.LogEvent(tc.event)
			lines := decodeLines(tt, buf)
			require.Len(tt, lines, 1)
			require.Equal(tt, tc.lvl, lines[0]["lvl"])
			require.Equal(tt, tc.msg, lines[0]["msg"])
			require.Equal(tt, "Fx", lines[0]["component"])
		})
	}

	// Not printed.
	buf.Reset()
	logger.LogEvent(&fxevent.Invoking{FunctionName: "invoke"})
	logger.LogEvent(&fxevent.OnStartExecuting{FunctionName: "start"})
	require.Equal(t, 0, buf.Len())

	var nilLogger *FxXLogger
	require.NotPanics(t, func() {
		nilLogger.LogEvent(&fxevent.Started{})
	})
}

func TestFxModule(t *testing.T) {
	buf := &bytes.Buffer{}
	app := fxtest.New(t,
		FxModule(NewXLogger(WithXLoggerLevel(LogLevelDebug), WithXLoggerWriter(buf))),
		fx.Invoke(func(logger XLogger) {
			logger.Info("invoked")
		}),
	)
	app.RequireStart()
	app.RequireStop()
	out := buf.String()
	require.Contains(t, out, `"msg":"invoked"`)
	require.Contains(t, out, `"component":"Fx"`)
	require.Contains(t, out, `"msg":"provide"`)
	require.Contains(t, out, `"msg":"start"`)
	require.Contains(t, out, `"msg":"stop"`)
}
