package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	Timezone   string     `yaml:"timezone" env:"TIMEZONE" env-default:"Europe/Moscow"`
	Storage    Storage    `yaml:"storage"`
	HTTPServer HTTPServer `yaml:"http_server"`
	AutoCopy   AutoCopy   `yaml:"auto_copy"`
	Metrics    Metrics    `yaml:"metrics"`
}

type Storage struct {
	Driver     string   `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	SQLitePath string   `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"./storage/calendar.db"`
	Postgres   Database `yaml:"postgres"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"activity_calendar"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// AutoCopy schedules copying the current week into the next one.
type AutoCopy struct {
	Enabled bool   `yaml:"enabled" env:"AUTO_COPY_ENABLED" env-default:"false"`
	Spec    string `yaml:"spec" env:"AUTO_COPY_SPEC" env-default:"0 18 * * 5"`
}

type Metrics struct {
	Namespace string `yaml:"namespace" env:"METRICS_NAMESPACE" env-default:"activity_calendar"`
}

// MustLoad reads the config file pointed to by the -config flag or CONFIG_PATH.
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		log.Fatal("config path is empty")
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	switch cfg.Storage.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location resolves Timezone; all calendar-day arithmetic happens in it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	return loc, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
