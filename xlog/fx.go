package xlog

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var _ fxevent.Logger = (*FxXLogger)(nil)

// FxXLogger prints the fx lifecycle events by XLogger.
// Successful steps are logged at debug level and failed ones
// at error level.
type FxXLogger struct {
	logger XLogger
}

func (l *FxXLogger) LogEvent(event fxevent.Event) {
	if l == nil || l.logger == nil {
		return
	}

	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		l.hook("OnStart", e.FunctionName, e.CallerName, e.Runtime, e.Err)
	case *fxevent.OnStopExecuted:
		l.hook("OnStop", e.FunctionName, e.CallerName, e.Runtime, e.Err)
	case *fxevent.Supplied:
		l.result(e.Err, "supply",
			zap.String("type", e.TypeName),
			zap.String("module", e.ModuleName),
		)
	case *fxevent.Provided:
		l.result(e.Err, "provide",
			zap.Strings("types", e.OutputTypeNames),
			zap.String("constructor", e.ConstructorName),
			zap.String("module", e.ModuleName),
		)
	case *fxevent.Invoked:
		l.result(e.Err, "invoke",
			zap.String("function", e.FunctionName),
			zap.String("module", e.ModuleName),
			zap.String("trace", e.Trace),
		)
	case *fxevent.Started:
		l.result(e.Err, "start")
	case *fxevent.Stopping:
		l.logger.Info("stopping", zap.Stringer("signal", e.Signal))
	case *fxevent.Stopped:
		l.result(e.Err, "stop")
	case *fxevent.RollingBack:
		l.logger.Error(e.StartErr, "start failed, rolling back")
	case *fxevent.RolledBack:
		l.result(e.Err, "roll back")
	case *fxevent.LoggerInitialized:
		l.result(e.Err, "init logger", zap.String("constructor", e.ConstructorName))
	}
}

func (l *FxXLogger) hook(kind, fn, caller string, runtime time.Duration, err error) {
	fields := []zap.Field{
		zap.String("hook", kind),
		zap.String("function", fn),
		zap.String("caller", caller),
		zap.Duration("runtime", runtime),
	}
	if err != nil {
		l.logger.Error(err, "hook failed", fields...)
		return
	}
	l.logger.Debug("hook executed", fields...)
}

func (l *FxXLogger) result(err error, step string, fields ...zap.Field) {
	if err != nil {
		l.logger.Error(err, step+" failed", fields...)
		return
	}
	l.logger.Debug(step, fields...)
}

func NewFxXLogger(logger XLogger) *FxXLogger {
	return &FxXLogger{logger: NewComponentXLogger(logger, "Fx")}
}

// FxModule provides the logger to the app and prints the fx events
// by its "Fx" component.
func FxModule(logger XLogger) fx.Option {
	return fx.Options(
		fx.Provide(func() XLogger { return logger }),
		fx.WithLogger(func() fxevent.Logger {
			return NewFxXLogger(logger)
		}),
	)
}
