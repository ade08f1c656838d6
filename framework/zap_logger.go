package framework

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger builds the process-wide console logger. Debug output is only emitted when
// debug is true. If no writers are given, output goes to stdout.
func NewZapLogger(debug bool, writers ...io.Writer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}
	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(syncers...),
		level,
	)
	return zap.New(core)
}

// ZapAdapter exposes a zap logger through the Logger interface.
type ZapAdapter struct {
	sugar *zap.SugaredLogger
	debug bool
}

// InfoLogger returns a Logger that writes at info level.
func InfoLogger(l *zap.Logger) ZapAdapter {
	return ZapAdapter{sugar: l.Sugar()}
}

// DebugLogger returns a Logger that writes at debug level, so its output is dropped unless
// the zap logger was built with debug enabled.
func DebugLogger(l *zap.Logger) ZapAdapter {
	return ZapAdapter{sugar: l.Sugar(), debug: true}
}

func (z ZapAdapter) Printf(message string, args ...interface{}) {
	if z.debug {
		z.sugar.Debugf(message, args...)
		return
	}
	z.sugar.Infof(message, args...)
}
