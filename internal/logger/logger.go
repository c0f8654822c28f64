package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	log     *slog.Logger
	logOnce sync.Once
)

// Init настраивает глобальный логгер процесса.
// development: текст с уровнем debug, иначе JSON с уровнем info.
// LOG_LEVEL (debug, info, warn, error) переопределяет уровень.
func Init(env string) {
	setup(env, os.Stdout)
}

func setup(env string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: levelFor(env, os.Getenv("LOG_LEVEL"))}

	var handler slog.Handler
	if env == "development" {
		opts.AddSource = true
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	log = slog.New(handler).With("service", "docflow")
	slog.SetDefault(log)
}

func levelFor(env, override string) slog.Level {
	var level slog.Level
	if override != "" {
		if err := level.UnmarshalText([]byte(strings.TrimSpace(override))); err == nil {
			return level
		}
	}
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// GetLogger возвращает глобальный логгер; без Init - development-логгер
func GetLogger() *slog.Logger {
	logOnce.Do(func() {
		if log == nil {
			setup("development", os.Stdout)
		}
	})
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal логирует ошибку и завершает процесс
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// WorkerLog - итог операции фонового воркера (бэкап, отправка оповещения)
func WorkerLog(worker, operation string, err error) {
	if err != nil {
		GetLogger().Error("Worker operation failed", "worker", worker, "operation", operation, "error", err.Error())
		return
	}
	GetLogger().Info("Worker operation completed", "worker", worker, "operation", operation)
}
