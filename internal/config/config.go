package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host     string `yaml:"host" env:"SERVER_HOST"`
		Port     int    `yaml:"port" env:"SERVER_PORT"`
		Env      string `yaml:"env" env:"SERVER_ENV"`
		LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url" env:"DATABASE_URL"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret" env:"JWT_SECRET"`
	} `yaml:"jwt"`

	Admission struct {
		// 0 - ждать вход в домен кастинга, пока жив контекст запроса
		LockTimeout     time.Duration `yaml:"lock_timeout" env:"ADMISSION_LOCK_TIMEOUT"`
		DispatchBuffer  int           `yaml:"dispatch_buffer" env:"ADMISSION_DISPATCH_BUFFER"`
		DispatchWorkers int           `yaml:"dispatch_workers" env:"ADMISSION_DISPATCH_WORKERS"`
		WorkerInterval  time.Duration `yaml:"worker_interval" env:"ADMISSION_WORKER_INTERVAL"`
	} `yaml:"admission"`

	Notifications struct {
		Kafka struct {
			Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" envSeparator:","`
			Topic   string   `yaml:"topic" env:"KAFKA_TOPIC"`
		} `yaml:"kafka"`

		Email struct {
			SMTPHost     string `yaml:"smtp_host" env:"SMTP_HOST"`
			SMTPPort     int    `yaml:"smtp_port" env:"SMTP_PORT"`
			SMTPUsername string `yaml:"smtp_user" env:"SMTP_USER"`
			SMTPPassword string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
			FromEmail    string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
			FromName     string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		} `yaml:"email"`
	} `yaml:"notifications"`
}

// Load собирает конфиг: config.yaml (если есть) -> .env -> переменные окружения.
// Переменные окружения всегда побеждают файл.
func Load() (*Config, error) {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if err := loadFile(configPath, &cfg); err != nil {
		return nil, err
	}

	if os.Getenv("SERVER_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: .env file couldn't be loaded: %v", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Config file %s not found, using environment only", path)
			return nil
		}
		return fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Admission.DispatchBuffer == 0 {
		c.Admission.DispatchBuffer = 256
	}
	if c.Admission.DispatchWorkers == 0 {
		c.Admission.DispatchWorkers = 2
	}
	if c.Admission.WorkerInterval == 0 {
		c.Admission.WorkerInterval = time.Hour
	}
	if c.Notifications.Kafka.Topic == "" {
		c.Notifications.Kafka.Topic = "casting.assignments"
	}
	if c.Notifications.Email.SMTPPort == 0 {
		c.Notifications.Email.SMTPPort = 587
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var missing []string
	if c.Database.DSN == "" {
		missing = append(missing, "database.url (DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		missing = append(missing, "jwt.secret (JWT_SECRET)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required fields: %s", strings.Join(missing, ", "))
	}
	if c.Admission.LockTimeout < 0 {
		return fmt.Errorf("config: admission.lock_timeout must not be negative")
	}
	if c.Admission.DispatchWorkers < 1 || c.Admission.DispatchBuffer < 1 {
		return fmt.Errorf("config: admission dispatch workers and buffer must be positive")
	}
	return nil
}

// Addr - адрес для http.Server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// KafkaEnabled - брокеры заданы
func (c *Config) KafkaEnabled() bool {
	return len(c.Notifications.Kafka.Brokers) > 0
}

// EmailEnabled - SMTP настроен
func (c *Config) EmailEnabled() bool {
	return c.Notifications.Email.SMTPHost != ""
}
