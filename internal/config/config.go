package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigPath = "config/config.yaml"
	DefaultSecretKey  = "a-very-long-random-secret-key"
)

type Config struct {
	Server struct {
		Host          string        `yaml:"host" env:"SERVER_HOST"`
		Port          int           `yaml:"port" env:"SERVER_PORT"`
		Env           string        `yaml:"env" env:"SERVER_ENV"`                  // development, production, test
		PublicBaseURL string        `yaml:"public_base_url" env:"PUBLIC_BASE_URL"` // используется в QR-кодах
		ReadTimeout   time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout  time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		CORSOrigins   []string      `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver" env:"DATABASE_DRIVER"` // postgres, mysql, sqlite
		DSN          string `yaml:"url" env:"DATABASE_URL"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	} `yaml:"database"`

	Security struct {
		SecretKey  string `yaml:"secret_key" env:"SECRET_KEY"`
		BcryptCost int    `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
	} `yaml:"security"`

	Session struct {
		Store        string        `yaml:"store" env:"SESSION_STORE"` // database, redis
		TTL          time.Duration `yaml:"ttl" env:"SESSION_TTL"`
		CookieName   string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		CookieSecure bool          `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE"`
	} `yaml:"session"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	Storage struct {
		Type       string `yaml:"type" env:"STORAGE_TYPE"`           // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path" env:"STORAGE_BASE_PATH"` // For local storage
		BaseURL    string `yaml:"base_url" env:"STORAGE_BASE_URL"`   // Public URL base
		Bucket     string `yaml:"bucket" env:"STORAGE_BUCKET"`
		Region     string `yaml:"region" env:"STORAGE_REGION"`
		AccessKey  string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"`
		SecretKey  string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"`
		Endpoint   string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`
		PublicRead bool   `yaml:"public_read" env:"STORAGE_PUBLIC_READ"`
	} `yaml:"storage"`

	Ticket struct {
		Price    int    `yaml:"price" env:"TICKET_PRICE"`
		Currency string `yaml:"currency" env:"TICKET_CURRENCY"`
		Contact  string `yaml:"contact" env:"TICKET_CONTACT"` // telegram для подтверждения оплаты
		MinAge   int    `yaml:"min_age" env:"TICKET_MIN_AGE"`
		MaxAge   int    `yaml:"max_age" env:"TICKET_MAX_AGE"`
		QRSize   int    `yaml:"qr_size" env:"TICKET_QR_SIZE"`
	} `yaml:"ticket"`

	Admin struct {
		Username string `yaml:"username" env:"FIRST_ADMIN_USERNAME"`
		Password string `yaml:"password" env:"FIRST_ADMIN_PASSWORD"`
	} `yaml:"admin"`
}

// Default возвращает конфигурацию по умолчанию (локальная sqlite, локальное хранилище)
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Env = "production"
	cfg.Server.PublicBaseURL = "https://sueta-taiq.onrender.com"
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second

	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "database.db"
	cfg.Database.MaxOpenConns = 10
	cfg.Database.MaxIdleConns = 5

	cfg.Security.SecretKey = DefaultSecretKey
	cfg.Security.BcryptCost = 10

	cfg.Session.Store = "database"
	cfg.Session.TTL = 7 * 24 * time.Hour
	cfg.Session.CookieName = "session"

	cfg.Redis.Addr = "localhost:6379"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./static"
	cfg.Storage.BaseURL = "/static"

	cfg.Ticket.Price = 25
	cfg.Ticket.Currency = "AZN"
	cfg.Ticket.Contact = "@Alyaskablya"
	cfg.Ticket.MinAge = 18
	cfg.Ticket.MaxAge = 30
	cfg.Ticket.QRSize = 256

	return &cfg
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл (если есть),
// затем .env и переменные окружения.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath
	}

	if err := loadFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

// Validate проверяет значения, без которых сервер не может стартовать
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database url is required")
	}
	switch c.Session.Store {
	case "database", "redis":
	default:
		return fmt.Errorf("unsupported session store: %q", c.Session.Store)
	}
	if c.Security.SecretKey == "" {
		return errors.New("security.secret_key is required")
	}
	if c.Ticket.MinAge > c.Ticket.MaxAge {
		return fmt.Errorf("ticket.min_age (%d) is greater than ticket.max_age (%d)", c.Ticket.MinAge, c.Ticket.MaxAge)
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
