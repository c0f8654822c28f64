package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host            string   `yaml:"host"`
		Port            int      `yaml:"port"`
		Env             string   `yaml:"env"`
		AllowOrigins    []string `yaml:"allow_origins"`
		ShutdownTimeout int      `yaml:"shutdown_timeout"` // секунды
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver"` // postgres, mysql, sqlite
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		AutoMigrate  bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		Secret       string `yaml:"secret"`
		TTL          int    `yaml:"ttl"` // минуты
		CookieName   string `yaml:"cookie_name"`
		CookieSecure bool   `yaml:"cookie_secure"`
	} `yaml:"jwt"`

	Redis struct {
		URL string `yaml:"url"` // пусто - отзыв токенов хранится в памяти
	} `yaml:"redis"`

	RateLimit struct {
		SignIn string `yaml:"signin"` // формат ulule/limiter, например "10-M"
	} `yaml:"rate_limit"`

	Storage struct {
		Type      string `yaml:"type"`      // local, s3, cloudflare_r2
		BasePath  string `yaml:"base_path"` // для local
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize int64 `yaml:"max_size"` // байты
	} `yaml:"upload"`

	Logs struct {
		Dir        string `yaml:"dir"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		TailLines  int    `yaml:"tail_lines"`
	} `yaml:"logs"`

	Backup struct {
		Enabled  bool   `yaml:"enabled"`
		Dir      string `yaml:"dir"`
		At       string `yaml:"at"` // HH:MM, локальное время
		KeepDays int    `yaml:"keep_days"`
		AlertTo  string `yaml:"alert_to"`
	} `yaml:"backup"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	FirstAdmin struct {
		Username   string `yaml:"username"`
		Password   string `yaml:"password"`
		Name       string `yaml:"name"`
		Department string `yaml:"department"`
	} `yaml:"first_admin"`
}

var AppConfig *Config

// LoadConfig читает .env, затем YAML (если есть), затем переменные окружения.
// Завершает процесс, если конфигурация невалидна.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load - та же загрузка, но с возвратом ошибки (для CLI и тестов)
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Env, "SERVER_ENV")
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		cfg.Server.AllowOrigins = splitList(v)
	}

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")

	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setInt(&cfg.JWT.TTL, "JWT_TTL")

	setString(&cfg.Redis.URL, "REDIS_URL")

	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.BasePath, "UPLOAD_DIR")

	setString(&cfg.Logs.Dir, "LOGS_DIR")
	setString(&cfg.Backup.Dir, "BACKUP_DIR")
	setString(&cfg.Backup.At, "BACKUP_AT")

	setString(&cfg.FirstAdmin.Username, "FIRST_ADMIN_USERNAME")
	setString(&cfg.FirstAdmin.Password, "FIRST_ADMIN_PASSWORD")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 24 * 60
	}
	if cfg.JWT.CookieName == "" {
		cfg.JWT.CookieName = "token"
	}
	if cfg.RateLimit.SignIn == "" {
		cfg.RateLimit.SignIn = "10-M"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 50 * 1024 * 1024
	}
	if cfg.Logs.Dir == "" {
		cfg.Logs.Dir = "logs"
	}
	if cfg.Logs.MaxSizeMB == 0 {
		cfg.Logs.MaxSizeMB = 1
	}
	if cfg.Logs.MaxBackups == 0 {
		cfg.Logs.MaxBackups = 3
	}
	if cfg.Logs.TailLines == 0 {
		cfg.Logs.TailLines = 300
	}
	if cfg.Backup.Dir == "" {
		cfg.Backup.Dir = "./backups"
	}
	if cfg.Backup.At == "" {
		cfg.Backup.At = "03:00"
	}
	if cfg.Backup.KeepDays == 0 {
		cfg.Backup.KeepDays = 7
	}
	if cfg.FirstAdmin.Name == "" {
		cfg.FirstAdmin.Name = "Administrator"
	}
	if cfg.FirstAdmin.Department == "" {
		cfg.FirstAdmin.Department = "Администрация"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (DATABASE_URL)")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if len(strings.TrimSpace(c.JWT.Secret)) < 32 {
		return errors.New("jwt secret must be at least 32 characters (JWT_SECRET)")
	}
	if _, err := c.BackupTime(); err != nil {
		return err
	}
	return nil
}

// TokenTTL возвращает время жизни токена
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

// BackupTime разбирает backup.at в смещение от полуночи
func (c *Config) BackupTime() (time.Duration, error) {
	t, err := time.Parse("15:04", c.Backup.At)
	if err != nil {
		return 0, fmt.Errorf("invalid backup time %q, expected HH:MM", c.Backup.At)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
