package logger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Channel - журнал аудита, который админ может читать через API
type Channel string

const (
	ActionsChannel Channel = "actions"
	ErrorsChannel  Channel = "errors"
)

// AuditConfig - параметры файлов аудита
type AuditConfig struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
}

type auditLog struct {
	dir     string
	actions *slog.Logger
	errors  *slog.Logger
	closers []io.Closer
}

var (
	auditMu sync.RWMutex
	audit   *auditLog
)

// InitAudit открывает журналы actions.log и errors.log с ротацией по размеру.
// Вызывается один раз при старте процесса.
func InitAudit(cfg AuditConfig) error {
	if cfg.Dir == "" {
		cfg.Dir = "logs"
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 1
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	newWriter := func(ch Channel) *lumberjack.Logger {
		return &lumberjack.Logger{
			Filename:   channelPath(cfg.Dir, ch),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
	}

	actionsWriter := newWriter(ActionsChannel)
	errorsWriter := newWriter(ErrorsChannel)

	next := &auditLog{
		dir:     cfg.Dir,
		actions: slog.New(slog.NewTextHandler(actionsWriter, &slog.HandlerOptions{Level: slog.LevelInfo})).With("logger", string(ActionsChannel)),
		errors:  slog.New(slog.NewTextHandler(errorsWriter, &slog.HandlerOptions{Level: slog.LevelWarn})).With("logger", string(ErrorsChannel)),
		closers: []io.Closer{actionsWriter, errorsWriter},
	}

	auditMu.Lock()
	prev := audit
	audit = next
	auditMu.Unlock()

	if prev != nil {
		prev.close()
	}
	return nil
}

// CloseAudit закрывает файлы журналов
func CloseAudit() {
	auditMu.Lock()
	prev := audit
	audit = nil
	auditMu.Unlock()

	if prev != nil {
		prev.close()
	}
}

func (a *auditLog) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}

// Action пишет успешное действие пользователя в actions.log.
// Ошибки записи игнорируются: журнал не должен ломать запрос.
func Action(ctx context.Context, msg string, args ...any) {
	fields := append(contextFields(ctx), args...)
	FromContext(ctx).Info(msg, args...)

	auditMu.RLock()
	defer auditMu.RUnlock()
	if audit != nil {
		audit.actions.Info(msg, fields...)
	}
}

// Failure пишет отказ (ошибка входа, not found на изменяющих запросах, сбой бэкапа) в errors.log
func Failure(ctx context.Context, msg string, args ...any) {
	fields := append(contextFields(ctx), args...)
	FromContext(ctx).Warn(msg, args...)

	auditMu.RLock()
	defer auditMu.RUnlock()
	if audit != nil {
		audit.errors.Warn(msg, fields...)
	}
}

// Tail возвращает последние n строк журнала. Отсутствующий файл - пустой результат.
func Tail(ch Channel, n int) ([]string, error) {
	if ch != ActionsChannel && ch != ErrorsChannel {
		return nil, fmt.Errorf("unknown log channel: %s", ch)
	}

	auditMu.RLock()
	dir := ""
	if audit != nil {
		dir = audit.dir
	}
	auditMu.RUnlock()

	if dir == "" {
		return []string{}, nil
	}
	return tailFile(channelPath(dir, ch), n)
}

func channelPath(dir string, ch Channel) string {
	return filepath.Join(dir, string(ch)+".log")
}

func tailFile(path string, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	defer f.Close()

	// кольцевой буфер на n строк
	ring := make([]string, n)
	count := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		ring[count%n] = scanner.Text()
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if count <= n {
		return append([]string{}, ring[:count]...), nil
	}

	start := count % n
	lines := make([]string, 0, n)
	lines = append(lines, ring[start:]...)
	lines = append(lines, ring[:start]...)
	return lines, nil
}
