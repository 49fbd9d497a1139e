package observability

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger это обёртка над zap.SugaredLogger с вызовами вида Info(msg, "key", value, ...)
type Logger struct {
	sugar  *zap.SugaredLogger
	closer io.Closer
}

// NewLogger пишет JSON-логи в файл с ротацией (lumberjack).
// Пустой logPath: пишем в stderr.
func NewLogger(logPath, logLevel string) *Logger {
	level := parseLevel(logLevel)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	var (
		writer zapcore.WriteSyncer
		closer io.Closer
	)
	if logPath == "" {
		writer = zapcore.Lock(zapcore.AddSync(os.Stderr))
	} else {
		rotator := &lumberjack.Logger{
			Filename:  logPath,
			MaxSize:   50,
			MaxAge:    30,
			LocalTime: true,
			Compress:  true,
		}
		writer = zapcore.AddSync(rotator)
		closer = rotator
	}

	core := zapcore.NewCore(encoder, writer, level)
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &Logger{sugar: logger.Sugar(), closer: closer}
}

// NewNopLogger для тестов
func NewNopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.sugar.Debugw(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.sugar.Infow(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.sugar.Warnw(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.sugar.Errorw(msg, fields...)
}

// Close сбрасывает буфер и закрывает файл лога.
// lumberjack не реализует Sync, поэтому файл закрываем отдельно.
func (l *Logger) Close() error {
	_ = l.sugar.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
