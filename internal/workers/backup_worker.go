package workers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"docflow_backend/internal/email"
	"docflow_backend/internal/logger"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

const backupPrefix = "backup_"

// BackupConfig - параметры ежедневного резервного копирования
type BackupConfig struct {
	Driver   string // postgres, mysql, sqlite
	DSN      string
	Dir      string
	At       time.Duration // смещение от полуночи, локальное время
	KeepDays int
	AlertTo  []string
}

// commandRunner запускает внешнюю утилиту дампа
type commandRunner func(ctx context.Context, name string, args []string, env []string) error

type BackupWorker struct {
	cfg    BackupConfig
	mailer email.Provider
	run    commandRunner
	now    func() time.Time
}

// NewBackupWorker создает воркер. mailer может быть nil - тогда письма не отправляются.
func NewBackupWorker(cfg BackupConfig, mailer email.Provider) *BackupWorker {
	if cfg.Dir == "" {
		cfg.Dir = "./backups"
	}
	if cfg.KeepDays <= 0 {
		cfg.KeepDays = 7
	}
	return &BackupWorker{
		cfg:    cfg,
		mailer: mailer,
		run:    execCommand,
		now:    time.Now,
	}
}

// Start запускает ежедневный бэкап в фоне
func (w *BackupWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *BackupWorker) loop(ctx context.Context) {
	for {
		next := NextRun(w.now(), w.cfg.At)
		logger.Info("Next database backup scheduled", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("Backup worker stopped")
			return
		case <-timer.C:
			// ошибка уже записана в журнал и отправлена письмом
			_, _ = w.RunOnce(ctx)
		}
	}
}

// NextRun - ближайший момент времени at (от полуночи) строго после now
func NextRun(now time.Time, at time.Duration) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	next := midnight.Add(at)
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location()).Add(at)
	}
	return next
}

// RunOnce делает один дамп и удаляет старые копии. Возвращает путь к файлу.
func (w *BackupWorker) RunOnce(ctx context.Context) (string, error) {
	path, err := w.dump(ctx)
	if err != nil {
		logger.WorkerLog("backup", "dump", err)
		logger.Failure(ctx, "Backup failed", "driver", w.cfg.Driver, "error", err.Error())
		w.alert(err)
		return "", err
	}
	logger.Action(ctx, "Backup created", "path", path)

	removed, err := w.Cleanup()
	if err != nil {
		logger.Failure(ctx, "Backup cleanup failed", "error", err.Error())
	}
	for _, old := range removed {
		logger.Action(ctx, "Old backup deleted", "path", old)
	}
	return path, nil
}

func (w *BackupWorker) dump(ctx context.Context) (string, error) {
	if err := os.MkdirAll(w.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	stamp := w.now().Format("20060102_150405")

	switch w.cfg.Driver {
	case "postgres":
		pgCfg, err := pgconn.ParseConfig(w.cfg.DSN)
		if err != nil {
			return "", fmt.Errorf("invalid postgres dsn: %w", err)
		}
		path := w.fileName(pgCfg.Database, stamp, ".sql")
		args := []string{"-F", "c", "-b", "-f", path,
			"-h", pgCfg.Host, "-p", strconv.Itoa(int(pgCfg.Port)), "-d", pgCfg.Database}
		if pgCfg.User != "" {
			args = append(args, "-U", pgCfg.User)
		}
		// пароль не попадает в аргументы процесса
		var env []string
		if pgCfg.Password != "" {
			env = append(env, "PGPASSWORD="+pgCfg.Password)
		}
		if pgCfg.TLSConfig == nil {
			env = append(env, "PGSSLMODE=disable")
		}
		if err := w.run(ctx, "pg_dump", args, env); err != nil {
			removePartial(path)
			return "", err
		}
		return path, nil

	case "mysql":
		myCfg, err := mysql.ParseDSN(w.cfg.DSN)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		path := w.fileName(myCfg.DBName, stamp, ".sql")
		args := []string{"--single-transaction", "--result-file=" + path}
		if myCfg.User != "" {
			args = append(args, "-u", myCfg.User)
		}
		if host, port, err := net.SplitHostPort(myCfg.Addr); err == nil {
			args = append(args, "-h", host, "-P", port)
		}
		args = append(args, myCfg.DBName)
		var env []string
		if myCfg.Passwd != "" {
			env = []string{"MYSQL_PWD=" + myCfg.Passwd}
		}
		if err := w.run(ctx, "mysqldump", args, env); err != nil {
			removePartial(path)
			return "", err
		}
		return path, nil

	case "sqlite":
		src := sqliteFile(w.cfg.DSN)
		name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		path := w.fileName(name, stamp, ".db")
		if err := copyFile(src, path); err != nil {
			removePartial(path)
			return "", err
		}
		return path, nil

	default:
		return "", fmt.Errorf("unsupported database driver: %s", w.cfg.Driver)
	}
}

func (w *BackupWorker) fileName(database, stamp, ext string) string {
	if database == "" {
		database = "db"
	}
	return filepath.Join(w.cfg.Dir, backupPrefix+database+"_"+stamp+ext)
}

// Cleanup удаляет копии старше KeepDays
func (w *BackupWorker) Cleanup() ([]string, error) {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return nil, err
	}

	cutoff := w.now().AddDate(0, 0, -w.cfg.KeepDays)
	var removed []string
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), backupPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(w.cfg.Dir, entry.Name())
		if err := os.Remove(path); err != nil {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, path)
	}
	return removed, errors.Join(errs...)
}

func (w *BackupWorker) alert(cause error) {
	if w.mailer == nil || len(w.cfg.AlertTo) == 0 {
		return
	}
	err := w.mailer.SendTemplate(w.cfg.AlertTo, "Docflow: резервное копирование не выполнено", email.TemplateBackupFailed, email.TemplateData{
		"Time":     w.now().Format("2006-01-02 15:04:05"),
		"Database": w.cfg.Driver,
		"Error":    cause.Error(),
	})
	if err != nil {
		logger.WorkerLog("backup", "alert", err)
	}
}

// removePartial удаляет недописанный файл дампа
func removePartial(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.WorkerLog("backup", "remove partial dump", err)
	}
}

func execCommand(ctx context.Context, name string, args []string, env []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(output.String()))
	}
	return nil
}

// sqliteFile убирает префикс file: и параметры из DSN
func sqliteFile(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open database file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy database file: %w", err)
	}
	return out.Close()
}
